package forms

import (
	"sort"
	"strings"
)

// FieldErrors maps a form field name to its human readable error messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether field has at least one error.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// Get returns the messages for field. Safe on a nil map, which keeps templates simple.
func (fe FieldErrors) Get(field string) []string {
	if fe == nil {
		return nil
	}
	return fe[field]
}

// ValidationError is returned when a candidate book is rejected.
// It optionally wraps the store error that caused it (e.g. a duplicate ISBN).
type ValidationError struct {
	Fields FieldErrors
	cause  error
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// WrapValidationError builds a ValidationError for a single field that unwraps to cause.
func WrapValidationError(cause error, field, message string) *ValidationError {
	fields := FieldErrors{}
	fields.Add(field, message)
	return &ValidationError{Fields: fields, cause: cause}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}
