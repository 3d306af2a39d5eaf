package apiclient_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tenderai/pkg/apiclient"
	"tenderai/pkg/apiclient/mocks"
	"tenderai/pkg/apierrors"
)

// storingProvider is a token provider that also persists refreshed tokens.
type storingProvider struct {
	*mocks.MockTokenProvider
	*mocks.MockTokenStore
}

// AuthRetrySuite covers the refresh-and-retry path on 401 responses.
type AuthRetrySuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	refresher *mocks.MockAuthRefresher
	server    *httptest.Server

	validToken string
	seenAuth   []string
	mu         sync.Mutex
}

func TestAuthRetrySuite(t *testing.T) {
	suite.Run(t, new(AuthRetrySuite))
}

func (s *AuthRetrySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.refresher = mocks.NewMockAuthRefresher(s.ctrl)
	s.validToken = "fresh-token"
	s.seenAuth = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.seenAuth = append(s.seenAuth, r.Header.Get("Authorization"))
		valid := s.validToken
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer "+valid {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"success":false,"error":"Token expired","code":"TOKEN_EXPIRED"}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{"ok":true}}`)
	}))
}

func (s *AuthRetrySuite) TearDownTest() {
	s.server.Close()
}

func (s *AuthRetrySuite) newClient(opts ...apiclient.Option) *apiclient.Client {
	c, err := apiclient.New(s.server.URL, opts...)
	s.Require().NoError(err)
	return c
}

func (s *AuthRetrySuite) TestRetriesOnceWithNewToken() {
	c := s.newClient(
		apiclient.WithTokenProvider(apiclient.StaticToken("stale-token")),
		apiclient.WithAuthRefresher(s.refresher),
	)
	s.refresher.EXPECT().Refresh(gomock.Any()).Return("fresh-token", nil).Times(1)

	var out struct {
		Data struct {
			OK bool `json:"ok"`
		} `json:"data"`
	}
	s.Require().NoError(c.Get(context.Background(), "/api/v1/dashboard/metrics", &out, nil))
	s.True(out.Data.OK)
	s.Equal([]string{"Bearer stale-token", "Bearer fresh-token"}, s.seenAuth)
}

func (s *AuthRetrySuite) TestPersistsRefreshedToken() {
	provider := storingProvider{
		MockTokenProvider: mocks.NewMockTokenProvider(s.ctrl),
		MockTokenStore:    mocks.NewMockTokenStore(s.ctrl),
	}
	provider.MockTokenProvider.EXPECT().Token(gomock.Any()).Return("stale-token").Times(1)
	provider.MockTokenStore.EXPECT().SetToken(gomock.Any(), "fresh-token").Return(nil).Times(1)
	s.refresher.EXPECT().Refresh(gomock.Any()).Return("fresh-token", nil).Times(1)

	c := s.newClient(apiclient.WithTokenProvider(provider), apiclient.WithAuthRefresher(s.refresher))
	s.Require().NoError(c.Get(context.Background(), "/x", nil, nil))
}

func (s *AuthRetrySuite) TestEmptyRefreshPropagatesOriginalError() {
	c := s.newClient(
		apiclient.WithTokenProvider(apiclient.StaticToken("stale-token")),
		apiclient.WithAuthRefresher(s.refresher),
	)
	s.refresher.EXPECT().Refresh(gomock.Any()).Return("", nil).Times(1)

	err := c.Get(context.Background(), "/x", nil, nil)
	var apiErr *apierrors.Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(401, apiErr.Status())
	s.Equal(apierrors.CodeTokenExpired, apiErr.Code())
	s.Equal("Token expired", apiErr.Message())
	s.Len(s.seenAuth, 1)
}

func (s *AuthRetrySuite) TestRefresherErrorPropagatesOriginalError() {
	c := s.newClient(apiclient.WithAuthRefresher(s.refresher))
	s.refresher.EXPECT().Refresh(gomock.Any()).Return("", errors.New("refresh endpoint down")).Times(1)

	err := c.Get(context.Background(), "/x", nil, nil)
	s.True(apierrors.IsUnauthorized(err))
	s.Equal("Token expired", err.Error())
}

func (s *AuthRetrySuite) TestNoSecondRefresh() {
	s.validToken = "never-matches"
	c := s.newClient(apiclient.WithAuthRefresher(s.refresher))
	s.refresher.EXPECT().Refresh(gomock.Any()).Return("fresh-token", nil).Times(1)

	err := c.Get(context.Background(), "/x", nil, nil)
	s.True(apierrors.IsUnauthorized(err))
	s.Equal([]string{"", "Bearer fresh-token"}, s.seenAuth)
}

func (s *AuthRetrySuite) TestRetryDisabled() {
	c := s.newClient(apiclient.WithAuthRefresher(s.refresher))
	s.refresher.EXPECT().Refresh(gomock.Any()).Times(0)

	err := c.Get(context.Background(), "/x", nil, &apiclient.RequestConfig{DisableAuthRetry: true})
	s.True(apierrors.IsUnauthorized(err))

	err = c.Post(context.Background(), "/api/v1/auth/login", map[string]string{"email": "a@b.c"}, nil, &apiclient.RequestConfig{SkipAuth: true})
	s.True(apierrors.IsUnauthorized(err))
}

func (s *AuthRetrySuite) TestRefresherReplacedAtRuntime() {
	c := s.newClient()
	err := c.Get(context.Background(), "/x", nil, nil)
	s.True(apierrors.IsUnauthorized(err))

	s.refresher.EXPECT().Refresh(gomock.Any()).Return("fresh-token", nil).Times(1)
	c.SetAuthRefresher(s.refresher)
	s.Require().NoError(c.Get(context.Background(), "/x", nil, nil))

	c.SetAuthRefresher(nil)
	s.Nil(c.AuthRefresher())
}

func TestConcurrentRefreshIsCoalesced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	refresher := apiclient.AuthRefresherFunc(func(ctx context.Context) (string, error) {
		calls.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		return "fresh-token", nil
	})

	c, err := apiclient.New(server.URL, apiclient.WithAuthRefresher(refresher))
	require.NoError(t, err)

	const workers = 5
	errs := make(chan error, workers)
	for range workers {
		go func() { errs <- c.Get(context.Background(), "/x", nil, nil) }()
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)

	for range workers {
		assert.NoError(t, <-errs)
	}
	assert.LessOrEqual(t, calls.Load(), int32(workers))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestCancelledWaiterDoesNotAbortSharedRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	var calls atomic.Int32
	var refreshCtxErr atomic.Value
	release := make(chan struct{})
	refresher := apiclient.AuthRefresherFunc(func(ctx context.Context) (string, error) {
		calls.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
		refreshCtxErr.Store(fmt.Sprint(ctx.Err()))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "fresh-token", nil
	})

	c, err := apiclient.New(server.URL, apiclient.WithAuthRefresher(refresher))
	require.NoError(t, err)

	first, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	firstErr := make(chan error, 1)
	go func() { firstErr <- c.Get(first, "/x", nil, nil) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	secondErr := make(chan error, 1)
	go func() { secondErr <- c.Get(context.Background(), "/x", nil, nil) }()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		require.Error(t, err)
		assert.True(t, apierrors.IsCancelled(err), "got %v", err)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller stayed blocked on the shared refresh")
	}

	close(release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "<nil>", refreshCtxErr.Load())
}
