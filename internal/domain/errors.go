// Package domain contains the doctrine model and its errors.
// Domain errors describe loading and lookup failures, NOT HTTP or CLI errors.
// They are infrastructure-agnostic and are mapped to exit messages or HTTP
// responses by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates caller input failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required dependency (e.g. the doctrine file) is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrInvalidDocument indicates the doctrine document is malformed.
	// Every ParseError unwraps to it.
	ErrInvalidDocument = errors.New("invalid doctrine document")
)

// Parse failure kinds. A ParseError unwraps to exactly one of these.
var (
	// ErrNotASequence indicates a list node was expected.
	ErrNotASequence = errors.New("expected a sequence")

	// ErrNotAMapping indicates a map node was expected.
	ErrNotAMapping = errors.New("expected a mapping")

	// ErrMissingField indicates a required key is absent from a mapping.
	ErrMissingField = errors.New("missing field")

	// ErrWrongType indicates a key is present but its value has the wrong type.
	ErrWrongType = errors.New("wrong type")
)

// ParseError reports where and how a doctrine document deviates from the
// expected shape.
type ParseError struct {
	// Kind is one of ErrNotASequence, ErrNotAMapping, ErrMissingField, ErrWrongType.
	Kind error

	// Path locates the offending node, e.g. "doctrines[1].categories[0]".
	Path string

	// Line is the 1-based source line, 0 when unknown.
	Line int

	// Field names the key involved for ErrMissingField and ErrWrongType.
	Field string

	// Expected describes the wanted type for ErrWrongType.
	Expected string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "document"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s (line %d)", loc, e.Line)
	}

	switch {
	case errors.Is(e.Kind, ErrMissingField):
		return fmt.Sprintf("%s: missing field %q", loc, e.Field)
	case errors.Is(e.Kind, ErrWrongType):
		return fmt.Sprintf("%s: field %q has wrong type, expected %s", loc, e.Field, e.Expected)
	default:
		return fmt.Sprintf("%s: %v", loc, e.Kind)
	}
}

// Unwrap exposes both the failure kind and ErrInvalidDocument to errors.Is().
func (e *ParseError) Unwrap() []error {
	return []error{e.Kind, ErrInvalidDocument}
}

// NewNotASequenceError creates a parse error for a node that should be a list.
func NewNotASequenceError(path string, line int) error {
	return &ParseError{Kind: ErrNotASequence, Path: path, Line: line}
}

// NewNotAMappingError creates a parse error for a node that should be a map.
func NewNotAMappingError(path string, line int) error {
	return &ParseError{Kind: ErrNotAMapping, Path: path, Line: line}
}

// NewMissingFieldError creates a parse error for an absent required key.
func NewMissingFieldError(path string, line int, field string) error {
	return &ParseError{Kind: ErrMissingField, Path: path, Line: line, Field: field}
}

// NewWrongTypeError creates a parse error for a key whose value has the wrong type.
func NewWrongTypeError(path string, line int, field, expected string) error {
	return &ParseError{Kind: ErrWrongType, Path: path, Line: line, Field: field, Expected: expected}
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
	Err     error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s unavailable: %s", e.Service, e.Reason)
	}

	return e.Service + " unavailable"
}

// Unwrap returns the sentinel error and the underlying cause.
func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}

	return []error{ErrUnavailable, e.Err}
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service string, err error) error {
	reason := ""
	if err != nil {
		reason = err.Error()
	}

	return &UnavailableError{Service: service, Reason: reason, Err: err}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsInvalidDocument checks if an error stems from a malformed doctrine document.
func IsInvalidDocument(err error) bool {
	return errors.Is(err, ErrInvalidDocument)
}
