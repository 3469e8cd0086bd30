package handlers

import (
	"context"

	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the part of the Bot API the handlers use.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type SessionStore interface {
	GetOrCreate(id string) *ui.Session
}

type TextRenderer interface {
	RenderText(snap ui.Snapshot) string
}

type AppUsecase interface {
	LoadApps(ctx context.Context) ([]*entity.SavedRecord, error)
	ExportApp(ctx context.Context, id string, format entity.ExportFormat) (*entity.ExportedFile, error)
}
