package toolbridge

import (
	"errors"
	"fmt"
)

// Code identifies a failure kind with a stable symbolic name.
type Code string

const (
	CodeInvalidDescriptor Code = "invalid_descriptor"
	CodeAlreadyRegistered Code = "already_registered"
	CodeNotFound          Code = "not_found"
	CodeInvalidInput      Code = "invalid_input"
	CodeMissingField      Code = "missing_field"
	CodeTypeMismatch      Code = "type_mismatch"
	CodeAborted           Code = "aborted"
	CodeInactiveContext   Code = "inactive_context"
)

// Error is a failure from the registry, validator, or bridge.
type Error struct {
	Code     Code
	Field    string // offending field for missing_field / type_mismatch
	Expected string // expected type for type_mismatch
	message  string
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, message: fmt.Sprintf(format, args...)}
}

func (e *Error) withCause(cause error) *Error {
	e.cause = cause
	return e
}

// CodeOf returns the symbolic code carried by err, or "" for errors that
// did not originate in this package (including tool invocation failures,
// which pass through ExecuteTool unmodified).
func CodeOf(err error) Code {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
