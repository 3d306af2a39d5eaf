package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tenderai/internal/platform/tracer"
	"tenderai/pkg/apierrors"
)

// TokenProvider supplies the current access token, or "" when there is none.
type TokenProvider interface {
	Token(ctx context.Context) string
}

// AuthRefresher obtains a fresh access token. An empty token with a nil
// error means no credential could be obtained.
type AuthRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// TokenStore is implemented by token providers that persist refreshed tokens.
type TokenStore interface {
	SetToken(ctx context.Context, token string) error
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func(ctx context.Context) string

func (f TokenProviderFunc) Token(ctx context.Context) string { return f(ctx) }

// AuthRefresherFunc adapts a function to AuthRefresher.
type AuthRefresherFunc func(ctx context.Context) (string, error)

func (f AuthRefresherFunc) Refresh(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken returns a provider that always yields token.
func StaticToken(token string) TokenProvider {
	return TokenProviderFunc(func(context.Context) string { return token })
}

const refreshKey = "refresh"

func (c *Client) shouldRefresh(err error, rc RequestConfig) bool {
	if rc.DisableAuthRetry || rc.SkipAuth {
		return false
	}
	var apiErr *apierrors.Error
	if !errors.As(err, &apiErr) || apiErr.Status() != http.StatusUnauthorized {
		return false
	}
	return c.AuthRefresher() != nil
}

// refreshToken obtains a new token. Concurrent callers share one refresh
// unless coalescing is disabled. The shared refresh is detached from any
// single caller's cancellation and bounded by the client timeout; each caller
// still stops waiting when its own context ends.
func (c *Client) refreshToken(ctx context.Context) (string, bool) {
	refresher := c.AuthRefresher()
	if refresher == nil {
		return "", false
	}
	if !c.coalesceRefresh {
		token, err := c.safeRefresh(ctx, refresher)
		return token, err == nil && token != ""
	}

	ch := c.refreshGroup.DoChan(refreshKey, func() (any, error) {
		shared := context.WithoutCancel(ctx)
		if d := c.effectiveTimeout(0); d > 0 {
			var cancel context.CancelFunc
			shared, cancel = context.WithTimeout(shared, d)
			defer cancel()
		}
		return c.safeRefresh(shared, refresher)
	})

	select {
	case <-ctx.Done():
		return "", false
	case res := <-ch:
		if res.Err != nil {
			return "", false
		}
		token, _ := res.Val.(string)
		return token, token != ""
	}
}

// safeRefresh turns a panicking refresher or token store into an error.
// DoChan would otherwise re-panic on a goroutine nobody can recover.
func (c *Client) safeRefresh(ctx context.Context, refresher AuthRefresher) (token string, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.metrics.IncrementAuthRefresh("error")
			c.logger.ErrorContext(ctx, "credential refresh panicked", "panic", r)
			token, err = "", fmt.Errorf("credential refresh panicked: %v", r)
		}
	}()
	return c.performRefresh(ctx, refresher)
}

func (c *Client) performRefresh(ctx context.Context, refresher AuthRefresher) (token string, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanAuthRefresh)
	defer func() { span.End(err) }()

	token, err = refresher.Refresh(ctx)
	switch {
	case err != nil:
		c.metrics.IncrementAuthRefresh("error")
		c.logger.WarnContext(ctx, "credential refresh failed", "error", err)
		return "", err
	case token == "":
		c.metrics.IncrementAuthRefresh("empty")
		c.logger.InfoContext(ctx, "credential refresh returned no token")
		return "", nil
	}

	c.metrics.IncrementAuthRefresh("refreshed")
	if store, ok := c.TokenProvider().(TokenStore); ok {
		if err := store.SetToken(ctx, token); err != nil {
			c.logger.WarnContext(ctx, "failed to persist refreshed token", "error", err)
		}
	}
	span.AddEvent(tracer.EventAuthRetry)
	return token, nil
}
