package store

import (
	"errors"
	"fmt"
)

// Common gateway error types
var (
	ErrInvalidKey        = errors.New("invalid item key")
	ErrMissingTable      = errors.New("table name is required")
	ErrInvalidExpression = errors.New("invalid update expression")
	ErrUnavailable       = errors.New("store unavailable")
	ErrUnsupported       = errors.New("unsupported store type")
)

// GatewayError represents a failed gateway call with its context
type GatewayError struct {
	Op    Operation // Operation that failed
	Table string    // Table the call addressed
	Key   string    // Partition key value, if known
	Err   error     // Underlying backend error
}

func (e *GatewayError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s on table %s failed for key '%s': %v", e.Op, e.Table, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s on table %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a new GatewayError
func NewGatewayError(op Operation, table, key string, err error) *GatewayError {
	return &GatewayError{
		Op:    op,
		Table: table,
		Key:   key,
		Err:   err,
	}
}
