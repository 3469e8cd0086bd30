// Package prompt builds the natural-language instructions sent to the model gateway.
//
// User text is embedded verbatim. Nothing here defends against prompt injection;
// the extractor's schema validation is the only guard on what comes back.
package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/futig/app-builder/internal/entity"
)

type Task string

const (
	TaskExtractRequirements Task = "extract_requirements"
	TaskCustomizeUI         Task = "customize_ui"
)

const extractRequirementsTemplate = `You are a software requirements analyst. Read the app description below and extract its structure.

Return exactly one JSON object and nothing else, with these keys:
- "appName": a short name for the app (string)
- "entities": the main data entities the app manages (array of at most %[1]d strings)
- "roles": the user roles of the app (array of at most %[1]d strings)
- "features": the key features of the app (array of at most %[1]d strings)

Use singular nouns for entities. Always include all four keys; use an empty array when nothing applies.

App description:
%[2]s`

const customizeUITemplate = `You are a UI styling assistant for a generated form-based app.

The current style settings are:
%[1]s

The user wants to change the style as follows:
%[2]s

Return only a JSON object whose keys are a subset of: %[3]s.
Every value must be a CSS value string (for example "#1e293b", "18px", "8px").
Include only the keys the instruction changes. If the instruction cannot be applied, return {}.`

// Builder renders prompts for both pipeline tasks.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the prompt for task. current is only used by TaskCustomizeUI and may be nil.
func (b *Builder) Build(task Task, input string, current entity.StyleOverrideSet) (string, error) {
	switch task {
	case TaskExtractRequirements:
		return b.ExtractRequirements(input), nil
	case TaskCustomizeUI:
		return b.CustomizeUI(input, current)
	default:
		return "", fmt.Errorf("unknown prompt task: %q", string(task))
	}
}

// ExtractRequirements renders the requirement-extraction prompt for a free-text description.
func (b *Builder) ExtractRequirements(description string) string {
	return fmt.Sprintf(extractRequirementsTemplate, entity.MaxListItems, description)
}

// CustomizeUI renders the style-customization prompt.
func (b *Builder) CustomizeUI(instruction string, current entity.StyleOverrideSet) (string, error) {
	if current == nil {
		current = entity.StyleOverrideSet{}
	}

	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal current style: %w", err)
	}

	keysJSON, err := json.Marshal(entity.StyleKeys)
	if err != nil {
		return "", fmt.Errorf("marshal style keys: %w", err)
	}

	return fmt.Sprintf(customizeUITemplate, currentJSON, instruction, keysJSON), nil
}
