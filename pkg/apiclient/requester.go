package apiclient

import "context"

// Requester is the request surface the services depend on.
type Requester interface {
	Get(ctx context.Context, endpoint string, out any, cfg *RequestConfig) error
	Post(ctx context.Context, endpoint string, body, out any, cfg *RequestConfig) error
	Put(ctx context.Context, endpoint string, body, out any, cfg *RequestConfig) error
	Patch(ctx context.Context, endpoint string, body, out any, cfg *RequestConfig) error
	Delete(ctx context.Context, endpoint string, out any, cfg *RequestConfig) error
	UploadFile(ctx context.Context, endpoint string, file File, fields Params, out any, cfg *RequestConfig) error
}

var _ Requester = (*Client)(nil)
