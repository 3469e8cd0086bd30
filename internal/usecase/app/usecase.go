package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/pkg/extractor"
	"github.com/futig/app-builder/internal/pkg/formatter"
	"github.com/futig/app-builder/internal/pkg/prompt"
	"github.com/futig/app-builder/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AppUsecase runs the requirement extraction and style customization pipelines
type AppUsecase struct {
	appRepo    AppRepository
	gateway    ModelGateway
	prompts    *prompt.Builder
	validator  *validator.Validator
	formatters *formatter.Factory
	logger     *zap.Logger
}

// NewUsecase creates a new app use case
func NewUsecase(
	appRepo AppRepository,
	gateway ModelGateway,
	prompts *prompt.Builder,
	validator *validator.Validator,
	formatters *formatter.Factory,
	logger *zap.Logger,
) *AppUsecase {
	return &AppUsecase{
		appRepo:    appRepo,
		gateway:    gateway,
		prompts:    prompts,
		validator:  validator,
		formatters: formatters,
		logger:     logger,
	}
}

// Backend reports which completion backend the pipeline runs on.
func (uc *AppUsecase) Backend() entity.Backend {
	return uc.gateway.Backend()
}

// ParseRequirements turns a free-text description into a validated AppDescription.
// The returned description field is the input verbatim.
func (uc *AppUsecase) ParseRequirements(ctx context.Context, description string) (*entity.AppDescription, error) {
	if err := uc.validator.ValidateDescription(description); err != nil {
		return nil, err
	}

	raw, err := uc.gateway.Complete(ctx, uc.prompts.ExtractRequirements(description))
	if err != nil {
		return nil, fmt.Errorf("extract requirements: %w", err)
	}

	app, err := extractor.ParseAppDescription(raw, uc.gateway.ResponseFormat())
	if err != nil {
		ctxzap.Warn(ctx, "model returned unusable requirements",
			zap.String("backend", string(uc.gateway.Backend())),
			zap.Int("response_length", len(raw)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("extract requirements: %w", err)
	}
	app.Description = description

	ctxzap.Info(ctx, "requirements extracted",
		zap.String("app_name", app.AppName),
		zap.Strings("entities", app.Entities),
		zap.Strings("roles", app.Roles),
		zap.Strings("features", app.Features),
	)

	return app, nil
}

// CustomizeUI asks the model for style overrides and returns the filtered partial set.
// Merging into the current style is the caller's job.
func (uc *AppUsecase) CustomizeUI(
	ctx context.Context,
	instruction string,
	current entity.StyleOverrideSet,
) (entity.StyleOverrideSet, error) {
	if err := uc.validator.ValidateInstruction(instruction); err != nil {
		return nil, err
	}

	p, err := uc.prompts.CustomizeUI(instruction, current)
	if err != nil {
		return nil, fmt.Errorf("build style prompt: %w", err)
	}

	raw, err := uc.gateway.Complete(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("customize ui: %w", err)
	}

	overrides, err := extractor.ParseStyleOverrides(raw, uc.gateway.ResponseFormat())
	if err != nil {
		ctxzap.Warn(ctx, "model returned unusable style overrides",
			zap.String("backend", string(uc.gateway.Backend())),
			zap.Int("response_length", len(raw)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("customize ui: %w", err)
	}

	ctxzap.Info(ctx, "style overrides extracted", zap.Int("override_count", len(overrides)))

	return overrides, nil
}

// SaveApp validates app and stores it as a new record.
func (uc *AppUsecase) SaveApp(ctx context.Context, app *entity.AppDescription) (string, error) {
	if err := uc.validator.ValidateApp(app); err != nil {
		return "", err
	}

	id, err := uc.appRepo.Save(ctx, *app)
	if err != nil {
		return "", fmt.Errorf("save app: %w", err)
	}

	ctxzap.Info(ctx, "app saved",
		zap.String("app_id", id),
		zap.String("app_name", app.AppName),
	)

	return id, nil
}

func (uc *AppUsecase) LoadApps(ctx context.Context) ([]*entity.SavedRecord, error) {
	records, err := uc.appRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load apps: %w", err)
	}

	ctxzap.Debug(ctx, "apps loaded", zap.Int("count", len(records)))

	return records, nil
}

func (uc *AppUsecase) GetApp(ctx context.Context, id string) (*entity.SavedRecord, error) {
	record, err := uc.appRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get app: %w", err)
	}
	return record, nil
}

// ExportApp renders a saved app as a document in the requested format.
func (uc *AppUsecase) ExportApp(ctx context.Context, id string, format entity.ExportFormat) (*entity.ExportedFile, error) {
	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	record, err := uc.GetApp(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(record)
	if err != nil {
		return nil, fmt.Errorf("format app %s as %s: %w", id, format, err)
	}

	ctxzap.Info(ctx, "app exported",
		zap.String("app_id", id),
		zap.String("format", string(format)),
		zap.Int("size", len(data)),
	)

	return &entity.ExportedFile{
		Filename:    fileBaseName(record.AppName) + f.FileExtension(),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func fileBaseName(appName string) string {
	name := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.ToLower(appName), "-"), "-")
	if name == "" {
		return "app"
	}
	return name
}
