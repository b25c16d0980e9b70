package repositories

import (
	"errors"
)

const internalErrorMessage = "Internal Server Error"

// ErrInternal is the opaque error every backend failure collapses into
var ErrInternal = errors.New(internalErrorMessage)

// BackendError records a failed store call. Its message is always the opaque
// ErrInternal text; the backend detail is reachable only through Detail.
type BackendError struct {
	Op  string // Operation that failed
	ID  string // User ID (if applicable)
	err error
}

// Error implements the error interface
func (e *BackendError) Error() string {
	return internalErrorMessage
}

// Unwrap exposes ErrInternal, never the backend error
func (e *BackendError) Unwrap() error {
	return ErrInternal
}

// Detail returns the underlying backend error for operator logs
func (e *BackendError) Detail() error {
	return e.err
}

// NewBackendError creates a new backend error
func NewBackendError(op, id string, err error) *BackendError {
	return &BackendError{Op: op, ID: id, err: err}
}

// IsInternal checks if an error is an opaque backend failure
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
