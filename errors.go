package ics

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.  Callers fix the
	// input and call again; nothing is retried internally.
	ErrValidation = errors.New("ics validation failed")
)

// ValidationError names the input field that made a build fail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
