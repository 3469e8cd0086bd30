package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

// CloudGateway talks to the Gemini generative-content endpoint.
type CloudGateway struct {
	client *genai.Client
	model  string
	format entity.ResponseFormat
}

func NewCloudGateway(ctx context.Context, cfg config.CloudBackendConfig) (*CloudGateway, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: common.NewHTTPClient(cfg.HTTPClientConfig, ""),
	}
	if cfg.Url != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Url}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &CloudGateway{
		client: client,
		model:  cfg.Model,
		format: cfg.ResponseFormat,
	}, nil
}

func (g *CloudGateway) Backend() entity.Backend {
	return entity.BackendCloud
}

func (g *CloudGateway) ResponseFormat() entity.ResponseFormat {
	return g.format
}

func (g *CloudGateway) Complete(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "requesting completion",
		zap.String("backend", string(entity.BackendCloud)),
		zap.String("model", g.model),
		zap.Int("prompt_length", len(prompt)),
	)

	var genCfg *genai.GenerateContentConfig
	if g.format == entity.FormatStrictJSON {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: jsonMIMEType}
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", gatewayError(entity.BackendCloud, "generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", gatewayError(entity.BackendCloud, "malformed response: no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", gatewayError(entity.BackendCloud, "malformed response: first candidate has no content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	content := sb.String()
	if content == "" {
		return "", gatewayError(entity.BackendCloud, "malformed response: first candidate has no text")
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("backend", string(entity.BackendCloud)),
		zap.Int("content_length", len(content)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return content, nil
}
