package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/app-builder/internal/api"
	appapi "github.com/futig/app-builder/internal/api/app"
	webapi "github.com/futig/app-builder/internal/api/web"
	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/integration/llm"
	"github.com/futig/app-builder/internal/pkg/formatter"
	"github.com/futig/app-builder/internal/pkg/prompt"
	"github.com/futig/app-builder/internal/pkg/validator"
	"github.com/futig/app-builder/internal/repository"
	"github.com/futig/app-builder/internal/telegram"
	"github.com/futig/app-builder/internal/ui"
	"github.com/futig/app-builder/internal/usecase/app"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Write timeout outlives the router timeout so that slow model calls still get a response.
const (
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 160 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

// pipeline holds the components shared by the HTTP server and the Telegram bot
type pipeline struct {
	db       *pgxpool.Pool
	appUC    *app.AppUsecase
	sessions *ui.SessionStore
	renderer *ui.Renderer
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.Addr()),
		zap.String("llm_backend", string(cfg.LLMCfg.Backend)),
	)

	p, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	appHandler := appapi.NewHandler(p.appUC)
	webHandler := webapi.NewHandler(p.sessions, p.renderer, cfg.UICfg.SessionTTL)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(appHandler, webHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     p.db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates the Telegram front-end over the same pipeline.
// The returned cleanup closes the database pool.
func BuildTelegramBot() (telegram.Bot, *zap.Logger, func(), error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required to run the telegram bot")
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
		zap.String("llm_backend", string(cfg.LLMCfg.Backend)),
	)

	p, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, p.sessions, p.renderer, p.appUC, logger)
	if err != nil {
		p.db.Close()
		return nil, nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, p.db.Close, nil
}

func buildPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pipeline, error) {
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	appRepo := repository.NewAppPostgres(db)

	gateway, err := llm.NewGateway(ctx, cfg.LLMCfg, cfg.EnableMocks, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup model gateway: %w", err)
	}

	appUC := app.NewUsecase(
		appRepo,
		gateway,
		prompt.NewBuilder(),
		validator.NewValidator(),
		formatter.NewFactory(),
		logger,
	)
	logger.Info("Use cases initialized")

	catalog := ui.FieldCatalogFromConfig(cfg.UICfg.FieldCatalog)
	renderer, err := ui.NewRenderer(catalog)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup ui renderer: %w", err)
	}
	sessions := ui.NewSessionStore(appUC, cfg.UICfg.SessionTTL)
	logger.Info("UI initialized", zap.Int("field_rules", len(catalog.Rules)))

	return &pipeline{
		db:       db,
		appUC:    appUC,
		sessions: sessions,
		renderer: renderer,
	}, nil
}
