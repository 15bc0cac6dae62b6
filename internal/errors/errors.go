// Package errors provides the shared error definitions for groundcrew.
//
// It defines the sentinel errors that the event aggregator and the logging
// service surface to callers, a semantic [InvalidArgumentError] type, and
// small wrapping helpers.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewInvalidArgumentError("unknown logging preset").
//	    WithField("preset").
//	    WithValue(name).
//	    WithCause(errors.ErrUnknownPreset)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrInvalidArgument) { ... }
//	if errors.Is(err, errors.ErrUnknownPreset) { ... }
//
//	var argErr *errors.InvalidArgumentError
//	if errors.As(err, &argErr) {
//	    fmt.Println(argErr.Field)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidArgument indicates that a caller passed an argument that can
	// never be valid. Every InvalidArgumentError matches it.
	ErrInvalidArgument = New("invalid argument")
	// ErrNilCallback indicates that a subscription was requested without a callback.
	ErrNilCallback = New("callback is nil")
	// ErrUnknownPreset indicates that no logging preset has the requested name.
	ErrUnknownPreset = New("unknown logging preset")
	// ErrUnknownCategory indicates that a log category name is not recognized.
	ErrUnknownCategory = New("unknown log category")
	// ErrUnknownLevel indicates that a log level name is not recognized.
	ErrUnknownLevel = New("unknown log level")
)

// -----------------------------------------------------------------------------
// InvalidArgumentError
// -----------------------------------------------------------------------------

// InvalidArgumentError represents an argument rejected before any state was
// changed.
//
// Example:
//
//	err := errors.NewInvalidArgumentError("callback must not be nil").WithField("fn")
//	fmt.Println(err) // "invalid argument [field=fn]: callback must not be nil"
type InvalidArgumentError struct {
	message string
	cause   error
	Field   string
	Value   any
}

// NewInvalidArgumentError creates a new InvalidArgumentError.
func NewInvalidArgumentError(message string) *InvalidArgumentError {
	return &InvalidArgumentError{message: message}
}

// WithField adds the offending argument name to the error context.
func (e *InvalidArgumentError) WithField(field string) *InvalidArgumentError {
	e.Field = field
	return e
}

// WithValue adds the rejected value to the error context.
func (e *InvalidArgumentError) WithValue(value any) *InvalidArgumentError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *InvalidArgumentError) WithCause(cause error) *InvalidArgumentError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *InvalidArgumentError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "invalid argument"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("invalid argument [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying cause.
func (e *InvalidArgumentError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *InvalidArgumentError) Is(target error) bool {
	if _, ok := target.(*InvalidArgumentError); ok {
		return true
	}
	return target == ErrInvalidArgument
}

// IsInvalidArgument reports whether err was caused by a rejected argument.
func IsInvalidArgument(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to apply logging config")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to apply preset %s", name)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
