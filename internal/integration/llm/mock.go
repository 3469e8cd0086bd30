package llm

import (
	"context"
	"strings"

	"github.com/futig/app-builder/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// styleMarker appears in every style customization prompt and never in a requirements prompt.
const styleMarker = "formBackground"

const mockRequirements = `Sure! Here is the structured summary of your app:
{
  "appName": "Course Manager",
  "entities": ["Student", "Course", "Grade"],
  "roles": ["Teacher", "Student", "Admin"],
  "features": ["Add course", "Enroll students", "View reports"]
}
Let me know if you need anything else.`

// MockGateway returns canned completions without network access.
type MockGateway struct {
	backend entity.Backend
	format  entity.ResponseFormat
}

func NewMockGateway(backend entity.Backend, format entity.ResponseFormat) *MockGateway {
	if backend == "" {
		backend = entity.BackendLocal
	}
	if format == "" {
		format = entity.FormatRaw
	}
	return &MockGateway{backend: backend, format: format}
}

func (m *MockGateway) Backend() entity.Backend {
	return m.backend
}

func (m *MockGateway) ResponseFormat() entity.ResponseFormat {
	return m.format
}

func (m *MockGateway) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &entity.GatewayError{Backend: m.backend, Err: err}
	}

	if strings.Contains(prompt, styleMarker) {
		ctxzap.Info(ctx, "[MOCK] customizing UI via model gateway")
		return mockStyle(prompt), nil
	}

	ctxzap.Info(ctx, "[MOCK] extracting requirements via model gateway",
		zap.Int("prompt_length", len(prompt)),
	)
	return mockRequirements, nil
}

// mockStyle answers with overrides picked by keywords of the instruction.
func mockStyle(prompt string) string {
	lower := strings.ToLower(instructionOf(prompt))

	var pairs []string
	switch {
	case strings.Contains(lower, "dark"):
		pairs = append(pairs, `"formBackground": "#111111"`)
	case strings.Contains(lower, "light"):
		pairs = append(pairs, `"formBackground": "#f5f5f5"`)
	}
	switch {
	case strings.Contains(lower, "green"):
		pairs = append(pairs, `"buttonColor": "#2ecc71"`)
	case strings.Contains(lower, "red"):
		pairs = append(pairs, `"buttonColor": "#e74c3c"`)
	case strings.Contains(lower, "blue"):
		pairs = append(pairs, `"buttonColor": "#4facfe"`)
	}
	switch {
	case strings.Contains(lower, "bigger"), strings.Contains(lower, "larger"):
		pairs = append(pairs, `"fontSize": "20px"`)
	case strings.Contains(lower, "smaller"):
		pairs = append(pairs, `"fontSize": "13px"`)
	}
	switch {
	case strings.Contains(lower, "round"):
		pairs = append(pairs, `"borderRadius": "24px"`)
	case strings.Contains(lower, "square"), strings.Contains(lower, "sharp"):
		pairs = append(pairs, `"borderRadius": "0px"`)
	}

	return "{" + strings.Join(pairs, ", ") + "}"
}

// instructionOf cuts the user's instruction out of a style prompt so that the
// key names listed after it do not trigger keywords.
func instructionOf(prompt string) string {
	const (
		start = "as follows:"
		end   = "Return only"
	)
	if i := strings.Index(prompt, start); i != -1 {
		prompt = prompt[i+len(start):]
	}
	if i := strings.Index(prompt, end); i != -1 {
		prompt = prompt[:i]
	}
	return prompt
}
