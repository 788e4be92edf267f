package handlers

import (
	"fmt"
	"strings"

	"github.com/rfoley/quizbot/internal/quiz"
	"github.com/rfoley/quizbot/internal/security"
	"github.com/rfoley/quizbot/pkg/logger"
)

// chatAnnouncer binds a session's output to one chat.
type chatAnnouncer struct {
	bot    BotInterface
	chatID int64
}

func (a *chatAnnouncer) Say(text string) {
	a.bot.SendMessage(a.chatID, text)
}

// sessionFor returns the chat's live session, pruning one that
// finished on its own (win, provider halt).
func (h *HandlerManager) sessionFor(chatID int64) *quiz.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	session := h.sessions[chatID]
	if session != nil && session.State() == quiz.StateFinished {
		delete(h.sessions, chatID)
		return nil
	}
	return session
}

// HandleQuizCommand starts a quiz in the chat.
func (h *HandlerManager) HandleQuizCommand(chatID int64, nick string, bot BotInterface) {
	h.mu.Lock()
	if existing := h.sessions[chatID]; existing != nil && existing.State() != quiz.StateFinished {
		h.mu.Unlock()
		bot.SendMessage(chatID, "Quiz is already running")
		return
	}

	session := quiz.NewSession(quiz.Settings{
		WinMethod:       h.Config.WinMethod,
		Threshold:       h.Config.WinThreshold(),
		AnswerTimeout:   h.Config.GetAnswerTimeout(),
		QuestionPause:   h.Config.GetQuestionPause(),
		TrackedStarters: h.Config.TrackedStarters,
	}, h.Provider, h.WinStore, &chatAnnouncer{bot: bot, chatID: chatID})
	h.sessions[chatID] = session
	h.mu.Unlock()

	if err := session.Start(nick); err != nil {
		logger.Error("Failed to start quiz", "chat_id", chatID, "error", err)
		bot.SendMessage(chatID, "Couldn't fetch a question, try again later!")

		h.mu.Lock()
		delete(h.sessions, chatID)
		h.mu.Unlock()
	}
}

// HandleStopCommand stops the chat's quiz.
func (h *HandlerManager) HandleStopCommand(chatID int64, nick string, bot BotInterface) {
	session := h.sessionFor(chatID)
	if session == nil || session.Stop(nick) != nil {
		bot.SendMessage(chatID, "No quiz running!")
		return
	}

	h.mu.Lock()
	delete(h.sessions, chatID)
	h.mu.Unlock()
}

// HandleSkipCommand reveals the current answer and moves on.
func (h *HandlerManager) HandleSkipCommand(chatID int64, bot BotInterface) {
	session := h.sessionFor(chatID)
	if session == nil || session.Skip() != nil {
		bot.SendMessage(chatID, "No quiz running!")
	}
}

// HandleScoresCommand echoes the current scoreboard.
func (h *HandlerManager) HandleScoresCommand(chatID int64, bot BotInterface) {
	session := h.sessionFor(chatID)
	if session == nil || session.AnnounceScores() != nil {
		bot.SendMessage(chatID, "No quiz running!")
	}
}

// HandleWinsCommand lists overall win counts, or one participant's
// count when a nick is given.
func (h *HandlerManager) HandleWinsCommand(chatID int64, arg string, bot BotInterface) {
	if nick := strings.TrimSpace(arg); nick != "" {
		count, err := h.WinStore.WinCount(nick)
		if err != nil {
			logger.Error("Failed to query win count", "nick", nick, "error", err)
			bot.SendMessage(chatID, "Couldn't look that up right now")
			return
		}
		bot.SendMessage(chatID, fmt.Sprintf("%s has won %d time%s", nick, count, pluralSuffix(count)))
		return
	}

	wins, err := h.WinStore.AllWins()
	if err != nil {
		logger.Error("Failed to list wins", "error", err)
		bot.SendMessage(chatID, "Couldn't look that up right now")
		return
	}
	if len(wins) == 0 {
		bot.SendMessage(chatID, "No one has won yet!")
		return
	}

	bot.SendMessage(chatID, "Overall quiz win counts")
	for _, win := range wins {
		bot.SendMessage(chatID, fmt.Sprintf("%s: %d", win.Nick, win.Count))
	}
}

// HandleMessage routes free chat text to the live session as an
// answer attempt. Chats without a quiz ignore everything.
func (h *HandlerManager) HandleMessage(chatID int64, nick, text string, bot BotInterface) {
	session := h.sessionFor(chatID)
	if session == nil {
		return
	}

	// Attempt errors just mean the session went away between lookup
	// and delivery; free text is never answered with a rejection.
	_ = session.Attempt(nick, security.SanitizeAttempt(text))

	if session.State() == quiz.StateFinished {
		h.mu.Lock()
		delete(h.sessions, chatID)
		h.mu.Unlock()
	}
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
