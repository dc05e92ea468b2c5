// Package apperr holds the error taxonomy shared by services and handlers:
// validation failures, missing records, and everything else.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrNotFound covers both a genuinely absent record and a record
	// owned by someone else, so existence is never leaked.
	ErrNotFound = errors.New("record not found")

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError represents a bad input value. Operations fail with it
// before any balance or record mutation happens.
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

// Validation builds a field-scoped validation error.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
