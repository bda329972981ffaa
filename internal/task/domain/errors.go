package domain

import "errors"

// ErrTaskNotFound covers both a missing id and an id owned by another user;
// callers cannot distinguish the two cases.
var ErrTaskNotFound = errors.New("task not found")

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
