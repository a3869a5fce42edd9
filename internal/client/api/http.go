package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/gmubooktrade/booktrade/internal/client/models"
	"github.com/gmubooktrade/booktrade/internal/common"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

// HTTPClient talks JSON over HTTP(S) to the BookTrade backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://localhost:8000/api". The timeout applies per request.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenStore, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

// errorPayload matches the backend's error body. FastAPI-style backends use
// "detail"; "message" is accepted as a fallback.
type errorPayload struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := genericMessage(resp.StatusCode)
		var payload errorPayload
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			if payload.Detail != "" {
				msg = payload.Detail
			} else if payload.Message != "" {
				msg = payload.Message
			}
		}
		return &RequestError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// Ping checks backend liveness. Used by the online-status watcher.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
	Session struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresAt    int64  `json:"expires_at"`
	} `json:"session"`
}

// Login authenticates and persists the returned access token. The caller is
// expected to follow up with CurrentUser to populate session state.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Session.AccessToken == "" {
		return nil, &RequestError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	if err := c.tokens.SetToken(ctx, resp.Session.AccessToken); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}
	return &LoginResult{Message: resp.Message, User: resp.User}, nil
}

// Signup creates an unverified account. No token is issued until the email
// is verified and the user logs in.
func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	var resp SignupResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type currentUserResponse struct {
	User models.User `json:"user"`
}

// CurrentUser fetches the account owning the stored token.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var resp currentUserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout tells the backend to drop the session and clears the local token.
// The local token is cleared even when the network call fails: local state
// wins.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if clearErr := c.tokens.ClearToken(ctx); clearErr != nil {
		err = errors.Join(err, fmt.Errorf("clearing token: %w", clearErr))
	}
	return err
}

// CheckVerification reports whether the given email finished verification.
func (c *HTTPClient) CheckVerification(ctx context.Context, email string) (*VerificationStatus, error) {
	var resp VerificationStatus
	path := "/auth/verify?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendVerification asks the backend to send a fresh verification email.
func (c *HTTPClient) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/resend-verification", resendRequest{Email: email}, nil)
}

type listingsResponse struct {
	Listings []models.Listing `json:"listings"`
	Count    int              `json:"count"`
}

func filterQuery(filter ListingFilter) string {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Listings fetches marketplace listings, optionally filtered.
func (c *HTTPClient) Listings(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	var resp listingsResponse
	if err := c.do(ctx, http.MethodGet, "/listings"+filterQuery(filter), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Listings, nil
}

// MyListings fetches the authenticated user's own listings.
func (c *HTTPClient) MyListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	var resp listingsResponse
	if err := c.do(ctx, http.MethodGet, "/listings/mine"+filterQuery(filter), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Listings, nil
}

// Listing fetches a single listing by ID. A missing listing maps onto
// ErrNotFound via the RequestError unwrap chain.
func (c *HTTPClient) Listing(ctx context.Context, id string) (*models.Listing, error) {
	var resp models.Listing
	if err := c.do(ctx, http.MethodGet, "/listings/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
