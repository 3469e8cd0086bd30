package llm

import (
	"context"
	"fmt"

	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/entity"
	"go.uber.org/zap"
)

// Gateway sends a prompt to one completion backend and returns the raw text of the first choice.
// Every failure is returned as *entity.GatewayError; calls are never retried.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Backend() entity.Backend
	ResponseFormat() entity.ResponseFormat
}

var (
	_ Gateway = (*LocalGateway)(nil)
	_ Gateway = (*CloudGateway)(nil)
	_ Gateway = (*MockGateway)(nil)
)

// NewGateway builds the gateway selected by cfg.Backend.
func NewGateway(ctx context.Context, cfg config.LLMConfig, enableMocks bool, logger *zap.Logger) (Gateway, error) {
	if enableMocks {
		logger.Info("Using mock model gateway", zap.String("backend", string(cfg.Backend)))
		return NewMockGateway(cfg.Backend, entity.FormatRaw), nil
	}

	switch cfg.Backend {
	case entity.BackendLocal:
		logger.Info("Using local model gateway",
			zap.String("url", cfg.Local.Url),
			zap.String("model", cfg.Local.Model),
			zap.String("response_format", string(cfg.Local.ResponseFormat)),
		)
		return NewLocalGateway(cfg.Local), nil
	case entity.BackendCloud:
		logger.Info("Using cloud model gateway",
			zap.String("model", cfg.Cloud.Model),
			zap.String("response_format", string(cfg.Cloud.ResponseFormat)),
		)
		return NewCloudGateway(ctx, cfg.Cloud)
	default:
		return nil, fmt.Errorf("unsupported LLM backend: %q", string(cfg.Backend))
	}
}

func gatewayError(backend entity.Backend, format string, args ...any) error {
	return &entity.GatewayError{Backend: backend, Err: fmt.Errorf(format, args...)}
}
