// Package clierr provides the structured error type surfaced by the csl
// driver to the user, distinguishing the error kinds of the design
// (configuration, input, collective/transport, and internal for any
// other wrapped error). The numeric-overflow warning is not an error
// kind: the driver logs it and continues.
package clierr

import "fmt"

// Kind classifies a CLIError so the driver can decide whether it is fatal.
type Kind string

const (
	KindConfiguration Kind = "CONFIGURATION"
	KindInput         Kind = "INPUT"
	KindCollective    Kind = "COLLECTIVE"
	KindInternal      Kind = "INTERNAL"
)

// CLIError is a structured, wrapped error carrying a Kind for dispatch.
type CLIError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a CLIError with no wrapped cause.
func New(kind Kind, message string) *CLIError {
	return &CLIError{Kind: kind, Message: message}
}

// Wrap attaches additional context to an existing error, preserving its
// Kind when the cause is itself a CLIError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CLIError); ok {
		return &CLIError{Kind: ce.Kind, Message: message, Cause: ce}
	}
	return &CLIError{Kind: KindInternal, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Configuration builds a KindConfiguration error (unknown algorithm,
// unknown counter, unknown target, n exceeds supported capacity).
func Configuration(format string, args ...interface{}) *CLIError {
	return New(KindConfiguration, fmt.Sprintf(format, args...))
}

// Input builds a KindInput error (malformed row, cell out of range,
// mismatched n/m).
func Input(format string, args ...interface{}) *CLIError {
	return New(KindInput, fmt.Sprintf(format, args...))
}

// Collective builds a KindCollective error for a failed rank communicator
// operation; every rank must observe the same error.
func Collective(format string, args ...interface{}) *CLIError {
	return New(KindCollective, fmt.Sprintf(format, args...))
}

// KindOf returns the Kind of err if it is a CLIError, otherwise KindInternal.
func KindOf(err error) Kind {
	if ce, ok := err.(*CLIError); ok {
		return ce.Kind
	}
	return KindInternal
}
