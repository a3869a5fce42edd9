package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gmubooktrade/booktrade/internal/common"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

// memTokens is an in-memory TokenStore for tests.
type memTokens struct {
	token    string
	getErr   error
	setErr   error
	clearErr error
}

func (m *memTokens) Token(ctx context.Context) (string, error) { return m.token, m.getErr }
func (m *memTokens) SetToken(ctx context.Context, t string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.token = t
	return nil
}
func (m *memTokens) ClearToken(ctx context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, tokens *memTokens) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewHTTPClient(srv.URL, 5*time.Second, tokens, logging.NewNopLogger())
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestHTTPClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeader)
		gotReqID = r.Header.Get(common.RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	})
	c, _ := newTestClient(t, handler, &memTokens{token: "tok-123"})

	require.NoError(t, c.Ping(context.Background()))
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotReqID)
}

func TestHTTPClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeader)
	})
	c, _ := newTestClient(t, handler, &memTokens{})

	require.NoError(t, c.Ping(context.Background()))
	require.Empty(t, gotAuth)
}

func TestHTTPClient_Login_StoresToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": "Login successful",
			"user": {"id": "u1", "email": "a@gmu.edu", "email_verified": true},
			"session": {"access_token": "tok-abc", "refresh_token": "r", "expires_at": 1}
		}`))
	})
	tokens := &memTokens{}
	c, _ := newTestClient(t, handler, tokens)

	res, err := c.Login(context.Background(), "a@gmu.edu", "somepassword")
	require.NoError(t, err)
	require.Equal(t, "tok-abc", tokens.token)
	require.Equal(t, "a@gmu.edu", res.User.Email)
}

func TestHTTPClient_Login_InvalidCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid email or password"}`))
	})
	tokens := &memTokens{}
	c, _ := newTestClient(t, handler, tokens)

	_, err := c.Login(context.Background(), "a@gmu.edu", "wrong")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, "Invalid email or password", err.Error())
	require.Empty(t, tokens.token)
}

func TestHTTPClient_ErrorFallsBackToMessageField(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "Something specific"}`))
	})
	c, _ := newTestClient(t, handler, &memTokens{})

	err := c.Ping(context.Background())
	require.EqualError(t, err, "Something specific")
}

func TestHTTPClient_ErrorGenericFallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	c, _ := newTestClient(t, handler, &memTokens{})

	err := c.Ping(context.Background())
	require.EqualError(t, err, "Request failed with status 418")
}

func TestHTTPClient_Logout_ClearsTokenEvenOnServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "Logout failed: backend down"}`))
	})
	tokens := &memTokens{token: "tok-live"}
	c, _ := newTestClient(t, handler, tokens)

	err := c.Logout(context.Background())
	require.Error(t, err)
	require.Empty(t, tokens.token)
}

func TestHTTPClient_Logout_ClearsTokenWhenServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // unreachable on purpose
	tokens := &memTokens{token: "tok-live"}
	c := NewHTTPClient(srv.URL, time.Second, tokens, logging.NewNopLogger())

	err := c.Logout(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Empty(t, tokens.token)
}

func TestHTTPClient_CurrentUser(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		_, _ = w.Write([]byte(`{"user": {"id": "u1", "email": "a@gmu.edu", "full_name": "Alice", "email_verified": true}}`))
	})
	c, _ := newTestClient(t, handler, &memTokens{token: "t"})

	u, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Alice", u.FullName)
	require.True(t, u.EmailVerified)
}

func TestHTTPClient_CheckVerification(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify", r.URL.Path)
		require.Equal(t, "a@gmu.edu", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"email": "a@gmu.edu", "email_verified": true, "verified_at": "2026-01-02T15:04:05Z"}`))
	})
	c, _ := newTestClient(t, handler, &memTokens{})

	st, err := c.CheckVerification(context.Background(), "a@gmu.edu")
	require.NoError(t, err)
	require.True(t, st.EmailVerified)
}

func TestHTTPClient_ResendVerification_RateLimited(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail": "Too many requests, try again later"}`))
	})
	c, _ := newTestClient(t, handler, &memTokens{})

	err := c.ResendVerification(context.Background(), "a@gmu.edu")
	require.EqualError(t, err, "Too many requests, try again later")
}

func TestHTTPClient_Listings_FilterQuery(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/listings", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"listings": [{"id": "l1", "book_title": "Calculus", "book_author": "Stewart", "condition": "good", "type": "sale", "price": 40}], "count": 1}`))
	})
	c, _ := newTestClient(t, handler, &memTokens{})

	out, err := c.Listings(context.Background(), ListingFilter{Status: "active"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Calculus", out[0].BookTitle)
	require.Equal(t, "status=active", gotQuery)
}

func TestHTTPClient_Listing_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Listing not found"}`))
	})
	c, _ := newTestClient(t, handler, &memTokens{})

	_, err := c.Listing(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	require.Equal(t, http.StatusNotFound, reqErr.Status)
}

func TestHTTPClient_NetworkFailureMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewHTTPClient(srv.URL, time.Second, &memTokens{}, logging.NewNopLogger())

	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
