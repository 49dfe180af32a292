package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request-level validation failures.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError names the offending field. It unwraps to ErrInvalidInput
// so callers can classify it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required returns a "required" ValidationError for field.
func Required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}
