package apiclient

import (
	"net/http"
	"time"
)

// ResponseType selects how a 2xx body is decoded.
type ResponseType int

const (
	// ResponseJSON decodes into out with encoding/json. An empty body leaves out untouched.
	ResponseJSON ResponseType = iota
	// ResponseText stores the raw body into a *string.
	ResponseText
	// ResponseBlob stores the raw body into a *Blob or *[]byte.
	ResponseBlob
)

func (t ResponseType) String() string {
	switch t {
	case ResponseText:
		return "text"
	case ResponseBlob:
		return "blob"
	default:
		return "json"
	}
}

// RequestConfig is the per-call configuration. The zero value (or nil) uses
// client defaults. Cancellation comes from the context passed to each call.
type RequestConfig struct {
	Params      Params
	ArrayFormat ArrayFormat

	ResponseType ResponseType
	Headers      http.Header

	// SkipAuth sends the request without an Authorization header and
	// disables the refresh-and-retry path.
	SkipAuth bool

	// Timeout overrides the client default. Negative means no timeout.
	Timeout time.Duration

	// RequestID is sent as X-Request-Id when it is a safe token; otherwise
	// one is generated.
	RequestID string

	// DisableAuthRetry turns off refresh-and-retry on 401.
	DisableAuthRetry bool
}

// Blob is an opaque binary response.
type Blob struct {
	Data        []byte
	ContentType string
	Header      http.Header
}

func (c *Client) resolveConfig(cfg *RequestConfig) RequestConfig {
	if cfg == nil {
		return RequestConfig{}
	}
	return *cfg
}

func (c *Client) effectiveTimeout(override time.Duration) time.Duration {
	switch {
	case override < 0:
		return 0
	case override > 0:
		return override
	}
	return max(c.Timeout(), 0)
}
