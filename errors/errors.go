// Package errors provides the structured error type used across kaleido.
//
// Every error carries a machine-readable Code so callers can tell a bad
// configuration apart from an empty recording or a busy camera without
// matching on strings:
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "radius %v must exceed 1", r)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // refuse to start
//	}
//
// Failures inside the frame loop are reported through these errors and
// logged; none of them is allowed to stop rendering.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Configuration and input errors
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidMode    Code = "INVALID_MODE"
	ErrCodeUnknownVariant Code = "UNKNOWN_VARIANT"
	ErrCodeTextureLoad    Code = "TEXTURE_LOAD"

	// Camera capture errors
	ErrCodeCaptureUnavailable Code = "CAPTURE_UNAVAILABLE"
	ErrCodeCaptureBusy        Code = "CAPTURE_BUSY"
	ErrCodeCaptureStopped     Code = "CAPTURE_STOPPED"

	// Recording errors
	ErrCodeRecordingEmpty Code = "RECORDING_EMPTY"
	ErrCodeRecordingState Code = "RECORDING_STATE"
	ErrCodeRecordingWrite Code = "RECORDING_WRITE"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Configuration reports an unusable configuration value, such as
// degenerate cell geometry.
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeInvalidConfig, format, args...)
}

// RecordingEmpty reports a recording that was stopped before any frame
// reached it.
func RecordingEmpty() *Error {
	return New(ErrCodeRecordingEmpty, "no frames were captured")
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error
// values, and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
