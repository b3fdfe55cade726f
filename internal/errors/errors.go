// Package errors provides the error taxonomy for hui.
//
// This package defines base error types for the failure kinds that can reach
// the process boundary, wrapped error types that add contextual information,
// helper functions for error wrapping and type checking, and the mapping from
// failure kind to process exit status.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrSourceUnavailable - a history file could not be opened or read
//   - ErrSinkUnavailable - the output sink rejected the selected command
//   - ErrCanceled - the user canceled the picker
//   - ErrInvalid - validation failed (bad flag or config value)
//   - ErrNotFound - resource not found
//   - ErrIO - file I/O error
//
// Wrapped error types (add context):
//   - SourceError{Path, Err} - history source errors, matches ErrSourceUnavailable
//   - SinkError{Sink, Text, Err} - output sink errors, matches ErrSinkUnavailable
//   - ConfigError{Path, Err} - configuration errors
//
// Malformed history records never surface here: the parser absorbs them and
// degrades the record to plain text.
//
// # Usage
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "load history")
//
//	// Use structured error types
//	return &errors.SourceError{Path: path, Err: err}
//
//	// Check error types
//	if errors.IsSourceUnavailable(err) {
//	    // handle unreadable history
//	}
//
//	// Map to a process exit status
//	os.Exit(errors.ExitCode(err))
package errors

import (
	"errors"
	"fmt"

	cerrors "github.com/cockroachdb/errors"
)

// Base error types (sentinel errors).
var (
	// ErrSourceUnavailable indicates a history file could not be opened or read.
	ErrSourceUnavailable = baseError("history source unavailable")

	// ErrSinkUnavailable indicates the output sink rejected the selection.
	ErrSinkUnavailable = baseError("output sink unavailable")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")
)

// Process exit statuses. Every failure kind maps to its own status.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitUsage             = 2
	ExitSourceUnavailable = 3
	ExitSinkUnavailable   = 4
	ExitConfig            = 5
	ExitCanceled          = 130
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// SourceError represents a history source that could not be read.
type SourceError struct {
	// Path is the history file path or source name (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *SourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %q: %s", ErrSourceUnavailable, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrSourceUnavailable, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }

// SinkError represents an output sink that rejected the selected command.
// Text carries the selection so callers can still surface it.
type SinkError struct {
	// Sink is the sink name (e.g., "clipboard", "stdout").
	Sink string
	// Text is the command that could not be delivered.
	Text string
	// Err is the underlying error.
	Err error
}

func (e *SinkError) Error() string {
	if e.Sink != "" {
		return fmt.Sprintf("%s (%s): %s", ErrSinkUnavailable, e.Sink, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrSinkUnavailable, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSinkUnavailable.
func (e *SinkError) Is(target error) bool { return target == ErrSinkUnavailable }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The result keeps the cause reachable for errors.Is and errors.As.
// Wrap returns nil when err is nil.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return cerrors.Wrap(err, op)
}

// Invalidf returns an ErrInvalid error with a formatted detail message.
func Invalidf(format string, args ...any) error {
	return cerrors.Wrapf(ErrInvalid, format, args...)
}

// IsSourceUnavailable reports whether err is or wraps ErrSourceUnavailable.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsSinkUnavailable reports whether err is or wraps ErrSinkUnavailable.
func IsSinkUnavailable(err error) bool {
	return errors.Is(err, ErrSinkUnavailable)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// AsSourceError reports whether err can be typed as a *SourceError.
func AsSourceError(err error) (*SourceError, bool) {
	var se *SourceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsSinkError reports whether err can be typed as a *SinkError.
func AsSinkError(err error) (*SinkError, bool) {
	var se *SinkError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ExitCode maps an error to the process exit status for its failure kind.
// Source and sink failures are checked before config so that a failure is
// never reported under a broader kind than the one that caused it.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsCanceled(err):
		return ExitCanceled
	case IsSourceUnavailable(err):
		return ExitSourceUnavailable
	case IsSinkUnavailable(err):
		return ExitSinkUnavailable
	}
	if _, ok := AsConfigError(err); ok {
		return ExitConfig
	}
	if IsInvalid(err) {
		return ExitUsage
	}
	return ExitFailure
}
