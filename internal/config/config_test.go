package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("BOT_TOKEN", "test_bot_token")
	os.Setenv("DB_PASSWORD", "test_password")
	t.Cleanup(func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("DB_PASSWORD")
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.WinMethod != WinMethodPoints {
		t.Errorf("WinMethod = %q, want %q", cfg.WinMethod, WinMethodPoints)
	}
	if cfg.PointsToWin != 10 {
		t.Errorf("PointsToWin = %d, want 10", cfg.PointsToWin)
	}
	if cfg.ScoreToWin != 7000 {
		t.Errorf("ScoreToWin = %d, want 7000", cfg.ScoreToWin)
	}
	if cfg.AnswerTimeoutSeconds != 30 {
		t.Errorf("AnswerTimeoutSeconds = %d, want 30", cfg.AnswerTimeoutSeconds)
	}
	if cfg.QuestionPauseSeconds != 5 {
		t.Errorf("QuestionPauseSeconds = %d, want 5", cfg.QuestionPauseSeconds)
	}
	if len(cfg.TrackedStarters) != 0 {
		t.Errorf("TrackedStarters = %v, want empty", cfg.TrackedStarters)
	}
}

func TestLoadConfigTrackedStarters(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("TRACKED_STARTERS", "alice, bob ,,carol")
	defer os.Unsetenv("TRACKED_STARTERS")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := []string{"alice", "bob", "carol"}
	if len(cfg.TrackedStarters) != len(want) {
		t.Fatalf("TrackedStarters = %v, want %v", cfg.TrackedStarters, want)
	}
	for i := range want {
		if cfg.TrackedStarters[i] != want[i] {
			t.Errorf("TrackedStarters[%d] = %q, want %q", i, cfg.TrackedStarters[i], want[i])
		}
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing BOT_TOKEN",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"BOT_TOKEN": "token",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			if _, err := LoadConfig(); err == nil {
				t.Error("LoadConfig() expected error for missing required field, got nil")
			}
		})
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "Unknown win method",
			mutate: func(c *Config) { c.WinMethod = "fastest" },
		},
		{
			name:   "Non-positive points threshold",
			mutate: func(c *Config) { c.PointsToWin = 0 },
		},
		{
			name:   "Non-positive score threshold",
			mutate: func(c *Config) { c.ScoreToWin = -1 },
		},
		{
			name:   "Non-positive answer timeout",
			mutate: func(c *Config) { c.AnswerTimeoutSeconds = 0 },
		},
		{
			name:   "Negative question pause",
			mutate: func(c *Config) { c.QuestionPauseSeconds = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				BotToken:             "token",
				DBPassword:           "password",
				WinMethod:            WinMethodPoints,
				PointsToWin:          10,
				ScoreToWin:           7000,
				AnswerTimeoutSeconds: 30,
				QuestionPauseSeconds: 5,
			}
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestWinThreshold(t *testing.T) {
	cfg := &Config{
		WinMethod:   WinMethodPoints,
		PointsToWin: 10,
		ScoreToWin:  7000,
	}

	if got := cfg.WinThreshold(); got != 10 {
		t.Errorf("WinThreshold() in points mode = %d, want 10", got)
	}

	cfg.WinMethod = WinMethodScore
	if got := cfg.WinThreshold(); got != 7000 {
		t.Errorf("WinThreshold() in score mode = %d, want 7000", got)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{
		AnswerTimeoutSeconds: 30,
		QuestionPauseSeconds: 5,
	}

	if got := cfg.GetAnswerTimeout(); got != 30*time.Second {
		t.Errorf("GetAnswerTimeout() = %v, want 30s", got)
	}
	if got := cfg.GetQuestionPause(); got != 5*time.Second {
		t.Errorf("GetQuestionPause() = %v, want 5s", got)
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn := cfg.GetDSN(); dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name:      "Development mode - no validation",
			cfg:       &Config{AppEnv: "development", DBSSLMode: "disable"},
			shouldErr: false,
		},
		{
			name:      "Production with SSL",
			cfg:       &Config{AppEnv: "production", DBSSLMode: "require"},
			shouldErr: false,
		},
		{
			name:      "Production without SSL",
			cfg:       &Config{AppEnv: "production", DBSSLMode: "disable"},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}
