package llm

import (
	"context"
	"time"

	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

// LocalGateway talks to a locally hosted OpenAI-compatible chat-completion endpoint.
type LocalGateway struct {
	client      openai.Client
	model       string
	temperature float64
	format      entity.ResponseFormat
}

func NewLocalGateway(cfg config.LocalBackendConfig) *LocalGateway {
	httpClient := common.NewHTTPClient(cfg.HTTPClientConfig, cfg.Token)

	return &LocalGateway{
		client: openai.NewClient(
			option.WithBaseURL(cfg.Url),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		format:      cfg.ResponseFormat,
	}
}

func (g *LocalGateway) Backend() entity.Backend {
	return entity.BackendLocal
}

func (g *LocalGateway) ResponseFormat() entity.ResponseFormat {
	return g.format
}

func (g *LocalGateway) Complete(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "requesting completion",
		zap.String("backend", string(entity.BackendLocal)),
		zap.String("model", g.model),
		zap.Int("prompt_length", len(prompt)),
	)

	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(g.temperature),
	}
	if g.format == entity.FormatStrictJSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", gatewayError(entity.BackendLocal, "chat completion: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", gatewayError(entity.BackendLocal, "malformed response: no choices")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", gatewayError(entity.BackendLocal, "malformed response: first choice has no content")
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("backend", string(entity.BackendLocal)),
		zap.Int("content_length", len(content)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return content, nil
}
