package protocol

import (
	"errors"
)

// Error kinds a node may record on a failed run.
var (
	// ErrValue indicates an input that cannot be parsed as the required type.
	ErrValue = errors.New("invalid value")

	// ErrUnexpected indicates any other failure raised while computing a result.
	ErrUnexpected = errors.New("unexpected error")
)

// ExecutionError wraps a computation failure with the message reported to the host.
type ExecutionError struct {
	Kind    error  // ErrValue or ErrUnexpected
	Message string // Message recorded on the run context
	Err     error  // Underlying error, if any
}

func (e *ExecutionError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Kind.Error()
}

func (e *ExecutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// NewValueError creates a value error reported with the given message.
func NewValueError(message string, err error) *ExecutionError {
	return &ExecutionError{Kind: ErrValue, Message: message, Err: err}
}

// NewUnexpectedError wraps err as an unexpected execution error.
func NewUnexpectedError(err error) *ExecutionError {
	return &ExecutionError{Kind: ErrUnexpected, Err: err}
}

// IsValueError checks if an error is a value error.
func IsValueError(err error) bool {
	return errors.Is(err, ErrValue)
}

// IsUnexpectedError checks if an error is an unexpected execution error.
func IsUnexpectedError(err error) bool {
	return errors.Is(err, ErrUnexpected)
}
