package credentials

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tenderai/pkg/apiclient"
)

// DefaultLeeway is subtracted from a token's expiry before it is considered stale.
const DefaultLeeway = 10 * time.Second

var (
	_ apiclient.TokenProvider = (*StorageTokenProvider)(nil)
	_ apiclient.TokenStore    = (*StorageTokenProvider)(nil)
)

// StorageTokenProvider serves tokens out of a Storage and persists refreshed ones.
type StorageTokenProvider struct {
	storage Storage
	logger  *slog.Logger
	leeway  time.Duration
	now     func() time.Time
}

type ProviderOption func(*StorageTokenProvider)

func WithLogger(logger *slog.Logger) ProviderOption {
	return func(p *StorageTokenProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithLeeway(d time.Duration) ProviderOption {
	return func(p *StorageTokenProvider) { p.leeway = max(d, 0) }
}

func WithClock(now func() time.Time) ProviderOption {
	return func(p *StorageTokenProvider) {
		if now != nil {
			p.now = now
		}
	}
}

func NewStorageTokenProvider(storage Storage, opts ...ProviderOption) *StorageTokenProvider {
	p := &StorageTokenProvider{
		storage: storage,
		logger:  slog.Default(),
		leeway:  DefaultLeeway,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns the stored access token, or "" when none is stored, the
// storage fails, or the token is a JWT whose exp has passed. Opaque tokens
// are returned as is.
func (p *StorageTokenProvider) Token(ctx context.Context) string {
	token := p.read(ctx, KeyAccessToken)
	if token == "" || p.expired(token) {
		return ""
	}
	return token
}

// SetToken persists a refreshed access token. Without storage it is a no-op.
func (p *StorageTokenProvider) SetToken(ctx context.Context, token string) error {
	return p.write(ctx, KeyAccessToken, token)
}

// RefreshToken returns the stored refresh token, or "".
func (p *StorageTokenProvider) RefreshToken(ctx context.Context) string {
	return p.read(ctx, KeyRefreshToken)
}

func (p *StorageTokenProvider) SetRefreshToken(ctx context.Context, token string) error {
	return p.write(ctx, KeyRefreshToken, token)
}

// Clear removes both tokens.
func (p *StorageTokenProvider) Clear(ctx context.Context) error {
	if p.storage == nil {
		return nil
	}
	if err := p.storage.Delete(ctx, KeyAccessToken); err != nil {
		return err
	}
	return p.storage.Delete(ctx, KeyRefreshToken)
}

func (p *StorageTokenProvider) write(ctx context.Context, key, value string) error {
	if p.storage == nil {
		return nil
	}
	return p.storage.Set(ctx, key, value)
}

func (p *StorageTokenProvider) read(ctx context.Context, key string) string {
	if p.storage == nil {
		return ""
	}
	value, err := p.storage.Get(ctx, key)
	if err != nil {
		p.logger.WarnContext(ctx, "credentials storage unavailable", "key", key, "error", err)
		return ""
	}
	return value
}

func (p *StorageTokenProvider) expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !p.now().Before(claims.ExpiresAt.Add(-p.leeway))
}
