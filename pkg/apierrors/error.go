package apierrors

import (
	"encoding/json"
	"time"
)

// Status values that do not come from a server response.
const (
	StatusNetwork   = 0
	StatusCancelled = 499
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// now is swapped in tests.
var now = time.Now

// Error is the normalized failure shape. It is immutable once built.
type Error struct {
	message   string
	status    int
	code      Code
	details   any
	timestamp time.Time
	cause     error
}

// New builds a normalized error stamped with the current time.
func New(message string, status int, code Code, details any, cause error) *Error {
	return &Error{
		message:   message,
		status:    status,
		code:      code,
		details:   details,
		timestamp: now().UTC(),
		cause:     cause,
	}
}

func (e *Error) Error() string { return e.message }

// Unwrap exposes the original error for diagnostics.
func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Message() string      { return e.message }
func (e *Error) Status() int          { return e.status }
func (e *Error) Code() Code           { return e.code }
func (e *Error) Details() any         { return e.details }
func (e *Error) Timestamp() time.Time { return e.timestamp }

// TimestampISO formats the timestamp as ISO-8601 UTC with milliseconds.
func (e *Error) TimestampISO() string {
	return e.timestamp.UTC().Format(timestampLayout)
}

// Is enables errors.Is() to match normalized errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

type errorJSON struct {
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Code      Code   `json:"code"`
	Details   any    `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
}

// MarshalJSON emits the wire shape without the cause.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := errorJSON{
		Message:   e.message,
		Status:    e.status,
		Code:      e.code,
		Details:   e.details,
		Timestamp: e.TimestampISO(),
	}
	b, err := json.Marshal(out)
	if err != nil {
		// details may hold values json cannot encode
		out.Details = nil
		return json.Marshal(out)
	}
	return b, nil
}
