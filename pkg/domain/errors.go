package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResult signals that an upstream collaborator produced no value
// where the caller may have expected one. Producers normally model "no
// value" as an empty completion; collaborators that only speak in errors
// can return this sentinel and the dispatcher treats it as empty.
var ErrEmptyResult = errors.New("empty result")

// ErrProtocolViolation signals a broken dispatch invariant: a second
// response action applied to an exchange that is already complete, or a
// late apply after cancellation. It indicates a programming defect and is
// never converted into a client-facing response.
var ErrProtocolViolation = errors.New("protocol violation: exchange already completed")

// FieldError is a single structured validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a recognized upstream failure carrying structured
// field errors. The dispatcher converts it into a RespondErrors action
// instead of a generic failure response. Detect it with errors.As.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields ...FieldError) *ValidationError {
	copied := make([]FieldError, len(fields))
	copy(copied, fields)
	return &ValidationError{Fields: copied}
}
