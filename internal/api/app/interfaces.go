package app

import (
	"context"

	"github.com/futig/app-builder/internal/entity"
)

type AppUsecase interface {
	ParseRequirements(ctx context.Context, description string) (*entity.AppDescription, error)
	CustomizeUI(ctx context.Context, instruction string, current entity.StyleOverrideSet) (entity.StyleOverrideSet, error)
	SaveApp(ctx context.Context, app *entity.AppDescription) (string, error)
	LoadApps(ctx context.Context) ([]*entity.SavedRecord, error)
	GetApp(ctx context.Context, id string) (*entity.SavedRecord, error)
	ExportApp(ctx context.Context, id string, format entity.ExportFormat) (*entity.ExportedFile, error)
	Backend() entity.Backend
}
