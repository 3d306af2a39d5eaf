package domainerrors

import (
	"errors"
	"fmt"
)

// Code represents a local failure category raised above the transport layer.
// Transport failures are reported by apierrors; these codes describe what the
// service layer rejected after a response arrived, or before a request left.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeInvalidDTO         Code = "invalid_dto"
	CodeRequestFailed      Code = "request_failed"
	CodeMissingData        Code = "missing_data"
	CodeUnexpectedShape    Code = "unexpected_shape"
	CodeStorage            Code = "storage_error"
	CodeInvariantViolation Code = "invariant_violation"
)

// Error wraps local failures with a stable code.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf is New with a format string.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
