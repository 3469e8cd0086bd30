package telegram

import (
	"context"
	"fmt"

	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/telegram/bot"
	"github.com/futig/app-builder/internal/telegram/handlers"
	"github.com/futig/app-builder/internal/telegram/keyboard"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot authorizes against the Bot API and wires the chat front-end over the UI sessions
func NewBot(
	cfg *config.TelegramConfig,
	sessions handlers.SessionStore,
	renderer handlers.TextRenderer,
	appUC handlers.AppUsecase,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	sender := handlers.NewMessageSender(api, logger)
	handler := handlers.NewHandler(sessions, renderer, appUC, keyboard.NewBuilder(), sender)

	return bot.New(api, cfg, handler, sender, logger), nil
}
