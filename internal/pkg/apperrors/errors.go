package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrStudentNotFound = errors.New("student not found")
	ErrPassNotFound    = errors.New("pass request not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Lifecycle errors
	ErrRequestNotPending = errors.New("pass request is not pending")
	ErrPassNotApproved   = errors.New("pass request is not approved")
)

// ValidationError carries the violated constraint back to the caller.
// It unwraps to ErrValidationFailed so callers can classify without
// matching on message text.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError for a single field constraint
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
