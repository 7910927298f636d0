package models

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError is raised before any network call when a draft cannot be
// turned into a valid submission. It blocks the request and surfaces at the
// field level; it is never sent to the server.
type ValidationError struct {
	FieldErrors map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.FieldErrors))
	for field := range e.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.FieldErrors[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{FieldErrors: map[string][]string{field: {message}}}
}
