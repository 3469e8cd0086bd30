package app

import (
	"context"

	"github.com/futig/app-builder/internal/entity"
)

type ModelGateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Backend() entity.Backend
	ResponseFormat() entity.ResponseFormat
}

type AppRepository interface {
	Save(ctx context.Context, app entity.AppDescription) (string, error)
	LoadAll(ctx context.Context) ([]*entity.SavedRecord, error)
	Get(ctx context.Context, id string) (*entity.SavedRecord, error)
}
