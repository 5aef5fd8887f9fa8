// Package common defines shared constants and sentinel errors used across
// the server and client layers of todokeeper. Callers should use errors.Is
// and errors.As to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors. Expired, forged and malformed tokens all map to this one.
	ErrInvalidToken = errors.New("invalid token")

	// List outcomes.
	ErrNoResults         = errors.New("no todos found")
	ErrOffsetOutOfBounds = errors.New("offset out of bounds")
)

// ValidationError reports a rejected input field. It matches ErrorValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// OutOfBoundsError is returned when a list offset points past the filtered
// set. Total is the size of that set.
type OutOfBoundsError struct {
	Total int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("offset out of bounds (total %d)", e.Total)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOffsetOutOfBounds
}
