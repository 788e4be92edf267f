package handlers

import (
	"sync"

	"github.com/rfoley/quizbot/internal/config"
	"github.com/rfoley/quizbot/internal/models"
	"github.com/rfoley/quizbot/internal/quiz"
)

// Bot interface to avoid circular dependency
type BotInterface interface {
	SendMessage(chatID int64, text string)
}

// WinStore is the slice of persistence the quiz commands need.
type WinStore interface {
	RecordWin(nick string) (int, error)
	WinCount(nick string) (int, error)
	AllWins() ([]models.QuizWin, error)
}

// HandlerManager owns at most one quiz session per chat scope and
// routes commands and free-text messages to it.
type HandlerManager struct {
	Config   *config.Config
	Provider quiz.Provider
	WinStore WinStore

	mu       sync.Mutex
	sessions map[int64]*quiz.Session
}

func NewHandlerManager(cfg *config.Config, provider quiz.Provider, winStore WinStore) *HandlerManager {
	return &HandlerManager{
		Config:   cfg,
		Provider: provider,
		WinStore: winStore,
		sessions: make(map[int64]*quiz.Session),
	}
}

// StopAll quietly shuts down every live session so no timer fires into
// a torn-down process. Called on shutdown.
func (h *HandlerManager) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for chatID, session := range h.sessions {
		session.Shutdown()
		delete(h.sessions, chatID)
	}
}
