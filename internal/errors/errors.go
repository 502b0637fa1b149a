package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between engines.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorRange    = 5   // Indicates a capacity or resource limit was hit.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel errors for the two failure kinds of limb arithmetic.
var (
	// ErrOutOfMemory reports that growing a limb chain would exceed the
	// configured resource limit.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrIndexOutOfRange reports a bit index at or beyond the capacity of a
	// fixed-capacity value.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvaluationError encapsulates an evaluation failure while preserving the
// original cause and the engine that produced it.
type EvaluationError struct {
	// Engine is the name of the evaluator that failed.
	Engine string
	// Cause is the underlying error that triggered this evaluation error.
	Cause error
}

// Error returns the engine name followed by the cause message.
func (e EvaluationError) Error() string {
	if e.Engine == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Engine, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents a growth request refused by a resource limit. It
// captures the requested, available, and limit memory values in bytes.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes currently held.
	Available uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// Is reports whether target is ErrOutOfMemory.
func (e MemoryError) Is(target error) bool { return target == ErrOutOfMemory }

// IndexError reports a bit index outside the fixed capacity of a value.
type IndexError struct {
	// Operation is the name of the operation that addressed the bit.
	Operation string
	// Index is the offending bit index.
	Index uint64
	// Capacity is the number of addressable bits.
	Capacity uint64
}

// Error returns a formatted message describing the range violation.
func (e IndexError) Error() string {
	return fmt.Sprintf("%s: bit index %d out of range (capacity %d bits)", e.Operation, e.Index, e.Capacity)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
