package apierrors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Parse normalizes any value into an *Error. It never panics and never
// returns nil. Already-normalized errors are returned unchanged.
func Parse(v any) (result *Error) {
	defer func() {
		if r := recover(); r != nil {
			result = unexpected()
		}
	}()

	switch x := v.(type) {
	case nil:
		return unexpected()
	case *Error:
		if x == nil {
			return unexpected()
		}
		return x
	case *http.Response:
		if x == nil {
			return unexpected()
		}
		return fromHTTPResponse(x)
	case error:
		return fromError(x)
	case json.RawMessage:
		return fromBytes(x)
	case []byte:
		return fromBytes(x)
	case string:
		return fromPayload(x)
	case map[string]any:
		return fromPayload(x)
	default:
		generic, err := toGeneric(x)
		if err != nil {
			return unexpected()
		}
		return fromPayload(generic)
	}
}

// FromResponse builds the error for a non-2xx response. The status always
// comes from the response; the code comes from the payload when it declares
// one, otherwise from CodeFromStatus.
func FromResponse(status int, reason string, body []byte) *Error {
	var payload any
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			payload = string(body)
		}
	}
	f := extractFields(payload, 0)

	code := f.code
	if code == "" {
		code = CodeFromStatus(status)
	}
	msg := f.message
	if msg == "" {
		if reason == "" {
			reason = http.StatusText(status)
		}
		msg = fmt.Sprintf("HTTP %d: %s", status, reason)
	}
	return New(msg, status, code, f.details, nil)
}

func unexpected() *Error {
	return New(msgUnexpected, http.StatusInternalServerError, CodeInternalError, nil, nil)
}

func fromError(err error) *Error {
	var normalized *Error
	if errors.As(err, &normalized) && normalized != nil {
		return normalized
	}
	if isAbort(err) {
		return New(msgCancelled, StatusCancelled, CodeTimeout, nil, err)
	}
	msg := err.Error()
	if strings.TrimSpace(msg) == "" {
		msg = "Network error"
	}
	code := CodeOperationFailed
	if IsNetworkFailure(err) {
		code = CodeNetworkError
	}
	return New(msg, StatusNetwork, code, nil, err)
}

func fromHTTPResponse(resp *http.Response) *Error {
	msg := ReasonPhrase(resp)
	if msg == "" {
		msg = "Request failed"
	}
	return New(msg, resp.StatusCode, CodeFromStatus(resp.StatusCode), nil, nil)
}

// ReasonPhrase returns the status text of resp without the numeric prefix.
func ReasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

func fromBytes(b []byte) *Error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return unexpected()
	}
	var payload any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return fromPayload(string(b))
	}
	return fromPayload(payload)
}

func fromPayload(payload any) *Error {
	f := extractFields(payload, 0)
	status := f.status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	code := f.code
	if code == "" {
		code = CodeFromStatus(status)
	}
	msg := f.message
	if msg == "" {
		msg = msgUnexpected
	}
	return New(msg, status, code, f.details, nil)
}

// toGeneric converts typed payloads into the map/slice form the matchers read.
func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
