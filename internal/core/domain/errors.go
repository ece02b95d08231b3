package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from transport errors, which carry HTTP status codes.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingBinary indicates the item has no binary under the requested name.
	ErrMissingBinary = errors.New("missing binary data")

	// ErrUnsupportedAction indicates a resource/operation pair outside the
	// validity matrix.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrUnexpectedResponse indicates a response body did not have the
	// expected shape.
	ErrUnexpectedResponse = errors.New("unexpected response format")

	// ErrNotConfigured indicates the Paperless-ngx connection is not set up.
	ErrNotConfigured = errors.New("paperless-ngx connection not configured")

	// ErrUploadTooLarge indicates a document exceeds the configured upload limit.
	ErrUploadTooLarge = errors.New("upload exceeds maximum size")
)

// ValidationError names the parameter that failed validation.
// It matches both ErrInvalidInput and the underlying cause with errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

// NewValidationError creates a ValidationError for a parameter.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %v", e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap returns both the sentinel and the cause.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

// ItemError annotates a failure with the index of the input item that
// caused it.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
