package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"tenderai/internal/platform/tracer"
	"tenderai/pkg/apierrors"
)

// validRequestID matches alphanumeric characters, dashes, underscores, and periods.
var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,128}$`)

// requestBody is an encoded body kept in memory so a retry can resend it.
type requestBody struct {
	data        []byte
	contentType string
}

func (c *Client) Get(ctx context.Context, endpoint string, out any, cfg *RequestConfig) error {
	return c.request(ctx, http.MethodGet, endpoint, nil, out, cfg)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any, cfg *RequestConfig) error {
	return c.request(ctx, http.MethodPost, endpoint, body, out, cfg)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any, cfg *RequestConfig) error {
	return c.request(ctx, http.MethodPut, endpoint, body, out, cfg)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body, out any, cfg *RequestConfig) error {
	return c.request(ctx, http.MethodPatch, endpoint, body, out, cfg)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any, cfg *RequestConfig) error {
	return c.request(ctx, http.MethodDelete, endpoint, nil, out, cfg)
}

func (c *Client) request(ctx context.Context, method, endpoint string, body, out any, cfg *RequestConfig) error {
	encoded, err := encodeJSONBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, method, endpoint, encoded, out, c.resolveConfig(cfg))
}

// send runs one logical call: the request, and on 401 at most one refresh
// followed by at most one retry.
func (c *Client) send(ctx context.Context, method, endpoint string, body *requestBody, out any, rc RequestConfig) error {
	err := c.execute(ctx, method, endpoint, body, out, rc, "")
	if err == nil || !c.shouldRefresh(err, rc) {
		return err
	}
	token, ok := c.refreshToken(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return transportError(ctx, ctxErr)
	}
	if !ok {
		return err
	}
	return c.execute(ctx, method, endpoint, body, out, rc, token)
}

func encodeJSONBody(body any) (*requestBody, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, apierrors.New("Failed to encode request body", apierrors.StatusNetwork, apierrors.CodeInvalidInput, nil, err)
	}
	return &requestBody{data: data, contentType: "application/json"}, nil
}

// execute performs a single HTTP exchange. A non-empty token overrides
// whatever Authorization header would otherwise be sent.
func (c *Client) execute(ctx context.Context, method, endpoint string, body *requestBody, out any, rc RequestConfig, token string) (err error) {
	start := time.Now()
	requestID := c.requestID(rc.RequestID)
	timeout := c.effectiveTimeout(rc.Timeout)
	status := 0

	ctx, span := c.tracer.Start(ctx, tracer.SpanRequest,
		tracer.String(tracer.AttrMethod, method),
		tracer.String(tracer.AttrEndpoint, endpoint),
		tracer.String(tracer.AttrRequestID, requestID),
		tracer.Duration(tracer.AttrTimeout, timeout),
		tracer.Bool(tracer.AttrRetried, token != ""),
	)
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(apierrors.Parse(err).Code())
			span.SetAttributes(tracer.String(tracer.AttrErrorCode, outcome))
		}
		span.SetAttributes(tracer.Int(tracer.AttrStatus, status))
		span.End(err)
		elapsed := time.Since(start)
		c.metrics.ObserveRequest(method, outcome, elapsed.Seconds())
		c.logger.DebugContext(ctx, "api request",
			"method", method,
			"endpoint", endpoint,
			"status", status,
			"outcome", outcome,
			"request_id", requestID,
			"duration_ms", elapsed.Milliseconds(),
		)
	}()

	target, err := c.buildURL(endpoint, rc.Params, rc.ArrayFormat)
	if err != nil {
		return apierrors.New("Invalid request URL", apierrors.StatusNetwork, apierrors.CodeInvalidInput, nil, err)
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return apierrors.New("Invalid request", apierrors.StatusNetwork, apierrors.CodeInvalidInput, nil, err)
	}
	req.Header = c.buildHeaders(reqCtx, rc, body, requestID, token)
	tracer.InjectHeaders(ctx, req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(reqCtx, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return transportError(reqCtx, err)
	}
	if len(data) > maxResponseBytes {
		return apierrors.New("Response body too large", status, apierrors.CodeInternalError, nil, nil)
	}

	if status < 200 || status > 299 {
		return apierrors.FromResponse(status, apierrors.ReasonPhrase(resp), data)
	}
	return decodeSuccess(resp, data, out, rc.ResponseType)
}

// transportError makes sure an aborted request is reported as a cancellation
// even when the transport surfaces a different error first.
func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return apierrors.Parse(err)
}

func (c *Client) requestID(given string) string {
	if validRequestID.MatchString(given) {
		return given
	}
	return c.newRequestID()
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return endpoint
}

// buildURL joins the base URL path with the endpoint and appends params
// after any query the endpoint already carries.
func (c *Client) buildURL(endpoint string, params Params, format ArrayFormat) (string, error) {
	ref, err := url.Parse(normalizeEndpoint(endpoint))
	if err != nil {
		return "", err
	}
	if ref.Scheme != "" || ref.Host != "" {
		return "", fmt.Errorf("endpoint %q must be a path", endpoint)
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + ref.Path
	u.RawPath = c.baseURL.EscapedPath() + ref.EscapedPath()
	u.RawQuery = appendQuery(ref.RawQuery, params, format)
	return u.String(), nil
}

func (c *Client) buildHeaders(ctx context.Context, rc RequestConfig, body *requestBody, requestID, token string) http.Header {
	h := make(http.Header)
	if body != nil && body.contentType != "" {
		h.Set(HeaderContentType, body.contentType)
	}
	h.Set(HeaderRequestID, requestID)
	mergeHeaders(h, c.defaultHeaders)
	mergeHeaders(h, rc.Headers)

	switch {
	case token != "":
		h.Set(HeaderAuthorization, "Bearer "+token)
	case rc.SkipAuth || h.Get(HeaderAuthorization) != "":
	default:
		if provider := c.TokenProvider(); provider != nil {
			if current := provider.Token(ctx); current != "" {
				h.Set(HeaderAuthorization, "Bearer "+current)
			}
		}
	}
	return h
}

func mergeHeaders(dst, src http.Header) {
	for key, values := range src {
		dst[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}
}

func decodeSuccess(resp *http.Response, data []byte, out any, rt ResponseType) error {
	status := resp.StatusCode
	switch rt {
	case ResponseText:
		switch dst := out.(type) {
		case nil:
		case *string:
			*dst = string(data)
		case *[]byte:
			*dst = data
		default:
			return apierrors.New(fmt.Sprintf("text response cannot be stored in %T", out), status, apierrors.CodeInvalidInput, nil, nil)
		}
		return nil
	case ResponseBlob:
		switch dst := out.(type) {
		case nil:
		case *Blob:
			*dst = Blob{Data: data, ContentType: resp.Header.Get(HeaderContentType), Header: resp.Header.Clone()}
		case *[]byte:
			*dst = data
		default:
			return apierrors.New(fmt.Sprintf("blob response cannot be stored in %T", out), status, apierrors.CodeInvalidInput, nil, nil)
		}
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !json.Valid(data) {
		return apierrors.New("Invalid JSON response from server", status, apierrors.CodeInternalError, nil, nil)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierrors.New("Unexpected response format from server", status, apierrors.CodeInternalError, err.Error(), err)
	}
	return nil
}
