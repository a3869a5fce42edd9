// Package api is the single point of outgoing HTTP communication with the
// BookTrade backend. Every operation builds a request against a fixed base
// URL, attaches the stored bearer token when one exists, and surfaces
// non-success responses as *RequestError values carrying the server-provided
// message.
package api

import (
	"context"

	"github.com/gmubooktrade/booktrade/internal/client/models"
)

// TokenStore is the persistence contract for the opaque session credential.
// The token survives process restarts; it carries no client-side expiry
// information, an expired token is discovered only by a failed request.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// LoginResult is the successful response to a login call. The access token
// itself is persisted into the TokenStore as a side effect and is not
// exposed here.
type LoginResult struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// SignupRequest carries the fields for account creation. Validation of the
// email domain and password rules happens before this reaches the wire.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// SignupResult acknowledges account creation. The account starts unverified;
// no session is established by a signup.
type SignupResult struct {
	Message               string      `json:"message"`
	User                  models.User `json:"user"`
	VerificationEmailSent bool        `json:"verification_email_sent"`
}

// VerificationStatus reports whether an email address has completed
// verification.
type VerificationStatus struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedAt    string `json:"verified_at,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ListingFilter narrows listing queries. Zero values mean "no filter".
type ListingFilter struct {
	Status models.ListingStatus
	Type   models.ListingType
}

// Client defines the typed operations the backend exposes to this client.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Signup(ctx context.Context, req SignupRequest) (*SignupResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error

	CheckVerification(ctx context.Context, email string) (*VerificationStatus, error)
	ResendVerification(ctx context.Context, email string) error

	Listings(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	MyListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	Listing(ctx context.Context, id string) (*models.Listing, error)
}
