package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every structural input error
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field of a rejected case
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInputError builds an InputError with a formatted reason
func NewInputError(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
