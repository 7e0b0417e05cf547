package types

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")

// ErrInvalidCredentials covers both an unknown identifier and a wrong
// password so the response does not leak which one was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrAuthRequired = errors.New("authentication required")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrNoChanges = errors.New("no fields to update")
var ErrStorage = errors.New("object storage failure")
var ErrInternal = errors.New("internal error")

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
