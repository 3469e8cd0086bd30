package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/futig/app-builder/internal/entity"
)

const (
	MaxDescriptionLength = 5000
	MaxInstructionLength = 1000
)

// Validator validates client input for the app pipeline
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDescription validates the free-text app description
func (v *Validator) ValidateDescription(description string) error {
	return validateText("description", description, MaxDescriptionLength)
}

// ValidateInstruction validates a free-text style instruction
func (v *Validator) ValidateInstruction(instruction string) error {
	return validateText("instruction", instruction, MaxInstructionLength)
}

// ValidateApp checks that every required AppDescription field is present
func (v *Validator) ValidateApp(app *entity.AppDescription) error {
	if app == nil {
		return &entity.ValidationError{Field: "body", Reason: "must be an app description object"}
	}
	if strings.TrimSpace(app.AppName) == "" {
		return &entity.ValidationError{Field: "appName", Reason: "must be a non-empty string"}
	}
	if strings.TrimSpace(app.Description) == "" {
		return &entity.ValidationError{Field: "description", Reason: "must be a non-empty string"}
	}
	lists := []struct {
		field string
		items []string
	}{
		{"entities", app.Entities},
		{"roles", app.Roles},
		{"features", app.Features},
	}
	for _, l := range lists {
		if l.items == nil {
			return &entity.ValidationError{Field: l.field, Reason: "must be an array"}
		}
		if len(l.items) > entity.MaxListItems {
			return &entity.ValidationError{Field: l.field, Reason: "must contain at most 5 items"}
		}
	}
	return nil
}

func validateText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &entity.ValidationError{Field: field, Reason: "must be a non-empty string"}
	}
	if utf8.RuneCountInString(value) > maxLen {
		return &entity.ValidationError{Field: field, Reason: "is too long"}
	}
	return nil
}
