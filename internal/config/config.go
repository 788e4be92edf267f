package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Win methods
const (
	WinMethodPoints = "points"
	WinMethodScore  = "score"
)

type Config struct {
	// Telegram
	BotToken string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Quiz rules
	WinMethod       string
	PointsToWin     int
	ScoreToWin      int
	TrackedStarters []string

	// Quiz pacing
	AnswerTimeoutSeconds int
	QuestionPauseSeconds int

	// Question provider
	TriviaAPIURL string

	// Application
	AppEnv   string
	LogLevel string

	// Rate Limiting
	RateLimitPerUser int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken:   getEnv("BOT_TOKEN", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "quizbot"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "quizbot_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		WinMethod:   getEnv("WIN_METHOD", WinMethodPoints),
		PointsToWin: getEnvInt("POINTS_TO_WIN", 10),
		ScoreToWin:  getEnvInt("SCORE_TO_WIN", 7000),

		AnswerTimeoutSeconds: getEnvInt("ANSWER_TIMEOUT_SECONDS", 30),
		QuestionPauseSeconds: getEnvInt("QUESTION_PAUSE_SECONDS", 5),

		TriviaAPIURL: getEnv("TRIVIA_API_URL", "https://jservice.io"),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 20),
	}

	// Empty list means any starter's win gets recorded
	if starters := getEnv("TRACKED_STARTERS", ""); starters != "" {
		for _, s := range strings.Split(starters, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.TrackedStarters = append(cfg.TrackedStarters, s)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.WinMethod != WinMethodPoints && c.WinMethod != WinMethodScore {
		return fmt.Errorf("WIN_METHOD must be %q or %q", WinMethodPoints, WinMethodScore)
	}
	if c.PointsToWin <= 0 {
		return fmt.Errorf("POINTS_TO_WIN must be positive")
	}
	if c.ScoreToWin <= 0 {
		return fmt.Errorf("SCORE_TO_WIN must be positive")
	}
	if c.AnswerTimeoutSeconds <= 0 {
		return fmt.Errorf("ANSWER_TIMEOUT_SECONDS must be positive")
	}
	if c.QuestionPauseSeconds < 0 {
		return fmt.Errorf("QUESTION_PAUSE_SECONDS must not be negative")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	return nil
}

// WinThreshold returns the score a participant must reach for the
// configured win method.
func (c *Config) WinThreshold() int {
	if c.WinMethod == WinMethodScore {
		return c.ScoreToWin
	}
	return c.PointsToWin
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetAnswerTimeout() time.Duration {
	return time.Duration(c.AnswerTimeoutSeconds) * time.Second
}

func (c *Config) GetQuestionPause() time.Duration {
	return time.Duration(c.QuestionPauseSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
