package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rfoley/quizbot/internal/config"
	"github.com/rfoley/quizbot/internal/handlers"
	"github.com/rfoley/quizbot/internal/middleware"
	"github.com/rfoley/quizbot/internal/repositories"
	"github.com/rfoley/quizbot/internal/trivia"
	"github.com/rfoley/quizbot/pkg/logger"
	"gorm.io/gorm"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	handlers *handlers.HandlerManager
	limiter  *middleware.RateLimiter
	done     chan struct{}
}

func InitBot(cfg *config.Config, db *gorm.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	winRepo := repositories.NewWinRepository(db)
	provider := trivia.NewClient(cfg.TriviaAPIURL, nil)
	handlerMgr := handlers.NewHandlerManager(cfg, provider, winRepo)

	bot := &Bot{
		api:      api,
		config:   cfg,
		handlers: handlerMgr,
		limiter:  middleware.NewRateLimiter(cfg.RateLimitPerUser, time.Minute),
		done:     make(chan struct{}),
	}

	go bot.startUpdateListener()

	return bot, nil
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-b.done:
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Text == "" {
		return
	}

	chatID := message.Chat.ID
	nick := senderName(message)

	if message.IsCommand() {
		if message.From != nil && !b.limiter.Allow(message.From.ID) {
			logger.Warn("Rate limit hit", "user", nick)
			return
		}
		b.handleCommand(message, chatID, nick)
		return
	}

	b.handlers.HandleMessage(chatID, nick, message.Text, b)
}

func (b *Bot) handleCommand(message *tgbotapi.Message, chatID int64, nick string) {
	switch message.Command() {
	case "quiz":
		b.handlers.HandleQuizCommand(chatID, nick, b)
	case "qstop":
		b.handlers.HandleStopCommand(chatID, nick, b)
	case "qskip":
		b.handlers.HandleSkipCommand(chatID, b)
	case "qscores":
		b.handlers.HandleScoresCommand(chatID, b)
	case "qwins":
		b.handlers.HandleWinsCommand(chatID, message.CommandArguments(), b)
	}
}

func senderName(message *tgbotapi.Message) string {
	if message.From == nil {
		return "someone"
	}
	if message.From.UserName != "" {
		return message.From.UserName
	}
	return message.From.FirstName
}

// SendMessage implements handlers.BotInterface.
func (b *Bot) SendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

// Stop shuts the bot down: no more updates, and every live session's
// timer is canceled so nothing fires into a torn-down process.
func (b *Bot) Stop() {
	close(b.done)
	b.api.StopReceivingUpdates()
	b.handlers.StopAll()
}
