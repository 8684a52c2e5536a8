package domain

import "strings"

// ValidationError carries one or more field-level validation messages.
// Handlers render it as a 400 with the individual messages listed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Fields: messages}
}
