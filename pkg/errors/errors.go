package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPStatuser is implemented by errors that map to a specific HTTP status.
type HTTPStatuser interface {
	HTTPStatus() int
}

// ValidationError represents malformed or missing client input.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns 400 Bad Request.
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns 404 Not Found.
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// StoreUnavailableError represents a storage connection or query failure.
// The wrapped cause is kept for logs but never exposed to clients.
type StoreUnavailableError struct {
	Op  string
	Err error
}

// NewStoreUnavailableError creates a new store unavailable error.
func NewStoreUnavailableError(op string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{
		Op:  op,
		Err: err,
	}
}

// Error implements the error interface.
func (e *StoreUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store unavailable: %s", e.Op)
}

// Unwrap returns the wrapped error.
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns 500 Internal Server Error.
func (e *StoreUnavailableError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatus resolves the HTTP status for an error chain.
// Unclassified errors map to 500.
func HTTPStatus(err error) int {
	var st HTTPStatuser
	if errors.As(err, &st) {
		return st.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// ClientMessage returns the message safe to expose to API clients.
// Server-fault errors are collapsed to a generic string so internal
// detail never leaks through the response body.
func ClientMessage(err error) string {
	var su *StoreUnavailableError
	if errors.As(err, &su) {
		return "store unavailable"
	}
	var st HTTPStatuser
	if errors.As(err, &st) {
		return err.Error()
	}
	return "internal server error"
}
