// Package common defines shared constants and sentinel errors used across
// the BookTrade client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// Client-side validation errors. These are raised before any network
	// call is made; the message text is what the user sees.
	ErrEmailDomain      = errors.New("Only GMU email addresses (@gmu.edu) are allowed")
	ErrPasswordTooShort = errors.New("Password must be at least 12 characters long")
	ErrPasswordMismatch = errors.New("Passwords do not match")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Verification flow errors.
	ErrNoSignupEmail = errors.New("Email not found. Please sign up again or contact support.")
)
