package domain

import (
	"errors"
	"strings"
)

// Error classes shared by every layer. Package-level sentinels wrap one of
// these so callers can branch with errors.Is on either level.
var (
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)

// FieldViolation describes one invalid input field
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError collects every violated field of an input, not just the first
type ValidationError struct {
	Violations []FieldViolation
}

// NewValidationError creates an error with a single violation
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}

// Add appends a violation
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations reports whether anything was added
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// OrNil returns nil when there are no violations, so callers can write
// `return verr.OrNil()` without leaking a typed nil into an error interface.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasViolations() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AsValidationError extracts field violations from err, if any
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// IsClassified reports whether err already belongs to one of the error classes
func IsClassified(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPersistence)
}
