// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// ErrNodeNotFound indicates no node is registered under the requested type ID (404 Not Found).
	ErrNodeNotFound = errors.New("node type not found")

	// ErrInvalidProperties indicates property values rejected by the node's JSON Schema (400 Bad Request).
	ErrInvalidProperties = errors.New("invalid properties")

	// ErrInvalidRequest indicates a malformed request (400 Bad Request).
	ErrInvalidRequest = errors.New("invalid request")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string   // Operation name
	Code    string   // Error code for API responses
	Message string   // Human-readable message
	Details []string // Individual validation failures, if any
	Err     error    // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidProperties) ||
		errors.Is(err, ErrInvalidRequest)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, details []string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Details: details,
		Err:     err,
	}
}

func newNodeNotFoundError(op, nodeTypeID string) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    "node_not_found",
		Message: fmt.Sprintf("node type '%s' not found", nodeTypeID),
		Err:     ErrNodeNotFound,
	}
}
