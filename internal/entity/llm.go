package entity

import "fmt"

// Backend identifies the completion provider behind the model gateway.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendCloud Backend = "cloud"
)

func (b Backend) Validate() error {
	switch b {
	case BackendLocal, BackendCloud:
		return nil
	default:
		return fmt.Errorf("unknown LLM backend: %q", string(b))
	}
}

// ResponseFormat describes what the gateway's backend puts in the completion text.
type ResponseFormat string

const (
	// FormatRaw: JSON may be surrounded by commentary.
	FormatRaw ResponseFormat = "raw"
	// FormatStrictJSON: the backend is configured to return only JSON.
	FormatStrictJSON ResponseFormat = "json"
)

func (f ResponseFormat) Validate() error {
	switch f {
	case FormatRaw, FormatStrictJSON:
		return nil
	default:
		return fmt.Errorf("unknown response format: %q", string(f))
	}
}
