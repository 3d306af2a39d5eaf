// Package apiclient is the typed HTTP client for the tender platform API.
//
// Every failure returned by the client is an *apierrors.Error. Requests
// compose the caller's context with a per-request timeout, attach the
// current bearer token, and refresh the credential once on 401.
package apiclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"tenderai/internal/platform/metrics"
	"tenderai/internal/platform/tracer"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	HeaderRequestID     = "X-Request-Id"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	maxResponseBytes = 32 << 20
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client executes requests against one API base URL. It is safe for
// concurrent use; the token provider, refresher and timeout may be replaced
// while requests are in flight.
type Client struct {
	baseURL         *url.URL
	httpClient      HTTPDoer
	defaultHeaders  http.Header
	logger          *slog.Logger
	metrics         *metrics.Metrics
	tracer          tracer.Tracer
	newRequestID    func() string
	coalesceRefresh bool
	refreshGroup    singleflight.Group

	mu        sync.RWMutex
	tokens    TokenProvider
	refresher AuthRefresher
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. Timeouts are applied through the
// request context, so the doer should not set its own.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

func WithTokenProvider(p TokenProvider) Option {
	return func(c *Client) { c.tokens = p }
}

func WithAuthRefresher(r AuthRefresher) Option {
	return func(c *Client) { c.refresher = r }
}

// WithTimeout sets the default per-request timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithDefaultHeaders adds headers sent on every request. Per-request headers win.
func WithDefaultHeaders(h http.Header) Option {
	return func(c *Client) { c.defaultHeaders = h.Clone() }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithRequestIDGenerator overrides how X-Request-Id values are generated.
func WithRequestIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newRequestID = fn
		}
	}
}

// WithoutRefreshCoalescing lets every concurrent 401 run its own refresh.
func WithoutRefreshCoalescing() Option {
	return func(c *Client) { c.coalesceRefresh = false }
}

// New creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:         base,
		httpClient:      &http.Client{},
		logger:          slog.Default(),
		tracer:          tracer.NewNoop(),
		newRequestID:    uuid.NewString,
		coalesceRefresh: true,
		timeout:         DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http(s) URL", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) SetTokenProvider(p TokenProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = p
}

func (c *Client) TokenProvider() TokenProvider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

func (c *Client) SetAuthRefresher(r AuthRefresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

func (c *Client) AuthRefresher() AuthRefresher {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refresher
}

func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

func (c *Client) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}
