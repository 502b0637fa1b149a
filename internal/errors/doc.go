// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// evaluation, resource limits, index range) and for carrying the underlying
// cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types implement Unwrap() or Is() so that errors.Is() and errors.As()
// see through them. The two arithmetic error kinds, ErrOutOfMemory and
// ErrIndexOutOfRange, are sentinels matched by MemoryError and IndexError.
package apperrors
