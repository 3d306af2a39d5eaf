// Package tracer lets the API client and services open spans without
// importing OpenTelemetry. Tests run against NewNoop; tenderctl wires NewOTel.
package tracer

import (
	"context"
	"time"
)

// Span is one traced operation. End is called once, usually deferred.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer opens spans. The returned context carries the span so nested calls
// become its children. Safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration is recorded in whole milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

const (
	SpanRequest     = "apiclient.request"
	SpanAuthRefresh = "apiclient.auth_refresh"

	EventAuthRetry = "auth.retry"
)

// HTTP keys follow the OpenTelemetry semantic conventions; the rest are ours.
const (
	AttrMethod    = "http.request.method"
	AttrStatus    = "http.response.status_code"
	AttrEndpoint  = "apiclient.endpoint"
	AttrErrorCode = "apiclient.error_code"
	AttrRequestID = "apiclient.request_id"
	AttrTimeout   = "apiclient.timeout_ms"
	AttrRetried   = "apiclient.retried"
)
