// Package envelope unwraps the {success, data, message, error} wrapper the
// tender API puts around most JSON responses.
package envelope

import (
	"bytes"
	"encoding/json"
	"strings"

	dErrors "tenderai/pkg/domain-errors"
)

const (
	msgRequestFailed = "Request failed"
	msgMissingData   = "Response missing data field"
)

// Flag is true only when the JSON literal is exactly true. Truthy values such
// as 1 or "true" do not count as success.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag(bytes.Equal(bytes.TrimSpace(data), []byte("true")))
	return nil
}

// Text tolerates a non-string message or error; anything that is not a JSON
// string decodes to the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*t = ""
		return nil
	}
	*t = Text(str)
	return nil
}

// Envelope is the wire wrapper. Data stays nil when the field is absent or null.
type Envelope[T any] struct {
	Success Flag `json:"success"`
	Data    *T   `json:"data"`
	Message Text `json:"message"`
	Error   Text `json:"error"`
}

// Unwrap returns the payload of a successful envelope.
//
// A response whose success flag is not true fails with CodeRequestFailed and
// the first non-empty of error, message or "Request failed". A successful
// response without data fails with CodeMissingData.
func Unwrap[T any](env Envelope[T]) (T, error) {
	var zero T
	if !env.Success {
		return zero, dErrors.New(dErrors.CodeRequestFailed, failureMessage(env.Error, env.Message))
	}
	if env.Data == nil {
		return zero, dErrors.New(dErrors.CodeMissingData, msgMissingData)
	}
	return *env.Data, nil
}

func failureMessage(candidates ...Text) string {
	for _, c := range candidates {
		if strings.TrimSpace(string(c)) != "" {
			return string(c)
		}
	}
	return msgRequestFailed
}
