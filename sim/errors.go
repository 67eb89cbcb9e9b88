package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is the root of every configuration rejection.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrEmptyInput is returned when no configuration was supplied at all.
	ErrEmptyInput = errors.New("empty or missing input")
)

// ValidationError describes one rejected configuration field.
// It unwraps to ErrInvalidConfiguration.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
