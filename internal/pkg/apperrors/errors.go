package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of
// these, so callers can classify with errors.Is without knowing the entity.
var (
	// ErrValidation means the caller supplied bad or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means a referenced id does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict means the operation would violate a relational invariant.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState means the operation is not legal in the entity's
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state")
)

// Teacher errors
var (
	ErrTeacherNotFound    = fmt.Errorf("%w: teacher not found", ErrNotFound)
	ErrTeacherHasStudents = fmt.Errorf("%w: teacher has assigned students and cannot be deleted", ErrConflict)
)

// Student errors
var (
	ErrStudentNotFound   = fmt.Errorf("%w: student not found", ErrNotFound)
	ErrStudentHasPunches = fmt.Errorf("%w: student has recorded punches and cannot be deleted", ErrConflict)
)

// Task errors
var (
	ErrTaskNotFound   = fmt.Errorf("%w: task not found", ErrNotFound)
	ErrTaskHasPunches = fmt.Errorf("%w: task has recorded punches and cannot be deleted", ErrConflict)
)

// Punch errors
var (
	ErrPunchNotFound      = fmt.Errorf("%w: punch not found", ErrNotFound)
	ErrPunchAlreadyClosed = fmt.Errorf("%w: punch is already closed", ErrInvalidState)
)

// FieldError describes a single failing field so the caller can highlight
// exactly what to correct.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field failures for one write attempt.
// It wraps ErrValidation so errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msg := e.Fields[0].Field + ": " + e.Fields[0].Message
	if len(e.Fields) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Fields)-1)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates an empty validation error ready to collect
// field failures.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add records a failing field and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error when fields were recorded, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
