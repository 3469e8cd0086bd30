package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions
const (
	ActionReset  = "reset"
	ActionExport = "export"
)

// CallbackData is the parsed payload of an inline button
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses "action:value" callback data
func ParseCallback(data string) (*CallbackData, error) {
	action, value, ok := strings.Cut(data, ":")
	if !ok || action == "" {
		return nil, fmt.Errorf("invalid callback format: %q", data)
	}

	return &CallbackData{Action: action, Value: value}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return action + ":" + value
}
