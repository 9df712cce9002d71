// File: internal/services/vectordb/errors.go
package vectordb

import (
	"fmt"
	"strings"
)

type ErrorType string

const (
	ErrTypeConnection    ErrorType = "CONNECTION_ERROR"
	ErrTypeAuth          ErrorType = "AUTH_ERROR"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
	ErrTypeQdrant        ErrorType = "QDRANT_ERROR"
	ErrTypeUnknown       ErrorType = "UNKNOWN_ERROR"
	ErrTypeInvalidConfig ErrorType = "INVALID_CONFIG"
)

// StoreError wraps every backend failure with a classified kind. The
// original message is always preserved in the cause chain.
type StoreError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("qdrant %s error in %s: %s: %v", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("qdrant %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func NewInvalidConfigError(message string) *StoreError {
	return &StoreError{Type: ErrTypeInvalidConfig, Operation: "config", Message: message}
}

// classify assigns an error kind by matching message substrings. The qdrant
// client surfaces gRPC status text rather than structured codes for most
// failures, so this stays string-based and lives in exactly one place.
func classify(operation string, err error) *StoreError {
	if err == nil {
		return &StoreError{Type: ErrTypeUnknown, Operation: operation, Message: "unknown failure"}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "connection refused"),
		strings.Contains(lower, "unavailable"),
		strings.Contains(lower, "failed to negotiate"),
		strings.Contains(lower, "no connection"):
		return &StoreError{Type: ErrTypeConnection, Operation: operation, Message: "vector store unreachable", Cause: err}
	case strings.Contains(lower, "unauthorized"),
		strings.Contains(lower, "unauthenticated"),
		strings.Contains(lower, "permission denied"),
		strings.Contains(msg, "401"),
		strings.Contains(msg, "403"):
		return &StoreError{Type: ErrTypeAuth, Operation: operation, Message: "authentication failed", Cause: err}
	case strings.Contains(lower, "not found"),
		strings.Contains(lower, "doesn't exist"),
		strings.Contains(msg, "404"):
		return &StoreError{Type: ErrTypeNotFound, Operation: operation, Message: "collection or point not found", Cause: err}
	default:
		return &StoreError{Type: ErrTypeQdrant, Operation: operation, Message: msg, Cause: err}
	}
}
