package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Client input errors
	ErrValidation       = errors.New("validation failed")
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Model errors
	ErrModelGateway     = errors.New("model gateway failure")
	ErrParse            = errors.New("model response is not valid JSON")
	ErrIncompleteResult = errors.New("model response is incomplete")

	// Store errors
	ErrPersistence = errors.New("persistence failure")
	ErrAppNotFound = errors.New("app not found")

	// UI session errors
	ErrInvalidState = errors.New("action not allowed in current state")
	ErrBusy         = errors.New("a request is already in flight")
)

// ValidationError reports malformed or missing client input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// GatewayError wraps any failure of a model gateway call together with the backend used.
type GatewayError struct {
	Backend Backend
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("model gateway (%s): %v", e.Backend, e.Err)
}

func (e *GatewayError) Unwrap() []error {
	return []error{ErrModelGateway, e.Err}
}
