// Package verify implements the email-verification state machine a user
// lands in after clicking the link in their signup email.
package verify

import (
	"context"
	"time"

	"github.com/gmubooktrade/booktrade/internal/client/api"
	"github.com/gmubooktrade/booktrade/internal/common"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

// Status is the terminal (or in-flight) state of a verification check.
type Status string

const (
	StatusChecking Status = "checking"
	StatusVerified Status = "verified"
	StatusExpired  Status = "expired"
	StatusError    Status = "error"
)

// Error codes a verification link can carry. The identity provider appends
// them to the redirect when the link itself is no longer usable.
const (
	ErrCodeOTPExpired   = "otp_expired"
	ErrCodeAccessDenied = "access_denied"
)

// RedirectDelay is how long the verified message stays on screen before the
// user is sent onward.
const RedirectDelay = 3 * time.Second

// LinkParams are the values extracted from an incoming verification link.
// All fields may be empty.
type LinkParams struct {
	Email     string
	Error     string
	ErrorCode string
}

// Outcome is the resolved state plus everything the UI needs to render it.
type Outcome struct {
	Status  Status
	Message string
	// Email is the resolved address; empty only when none could be found,
	// in which case resending is impossible.
	Email string
	// RedirectTo is set together with RedirectAfter when the flow wants the
	// caller to navigate away.
	RedirectTo    string
	RedirectAfter time.Duration
}

// EmailStore is the slice of the token store the flow needs: the transiently
// remembered signup address.
type EmailStore interface {
	SignupEmail(ctx context.Context) (string, error)
	ClearSignupEmail(ctx context.Context) error
}

// Flow resolves verification links against the backend.
type Flow struct {
	api    api.Client
	emails EmailStore
	log    logging.Logger
}

func NewFlow(apiClient api.Client, emails EmailStore, log logging.Logger) *Flow {
	return &Flow{api: apiClient, emails: emails, log: log.With("component", "verify")}
}

// Resolve runs the state machine once for an incoming link.
//
// The actual verification status is always checked first and is authoritative:
// a link may report itself expired while the account has already been verified
// through another path, and the user must still see success. Only when the
// account is genuinely unverified do the link's own error codes matter.
func (f *Flow) Resolve(ctx context.Context, p LinkParams) Outcome {
	email := p.Email
	if email == "" {
		stored, err := f.emails.SignupEmail(ctx)
		if err != nil {
			f.log.Error(ctx, "reading stored signup email", "error", err)
		}
		email = stored
	}
	if email == "" {
		return Outcome{
			Status:  StatusError,
			Message: common.ErrNoSignupEmail.Error(),
		}
	}

	status, err := f.api.CheckVerification(ctx, email)
	if err != nil {
		// Fall through to the link's own error codes; the check can be
		// retried via resend or a reload.
		f.log.Warn(ctx, "verification check failed", "email", email, "error", err)
	}

	if status != nil && status.EmailVerified {
		if err := f.emails.ClearSignupEmail(ctx); err != nil {
			f.log.Error(ctx, "clearing stored signup email", "error", err)
		}
		return Outcome{
			Status:        StatusVerified,
			Message:       "Your email has been verified successfully! You can now log in.",
			Email:         email,
			RedirectTo:    "/marketplace",
			RedirectAfter: RedirectDelay,
		}
	}

	if p.ErrorCode == ErrCodeOTPExpired || p.Error == ErrCodeAccessDenied {
		return Outcome{
			Status:  StatusExpired,
			Message: "The verification link has expired. However, please check if your email was already verified. If not, you can request a new verification email below.",
			Email:   email,
		}
	}

	return Outcome{
		Status:  StatusError,
		Message: "Email not yet verified. Please check your email for the verification link.",
		Email:   email,
	}
}

// Resend asks the backend for a fresh verification email and moves the flow
// back to checking so the user can retry the link.
func (f *Flow) Resend(ctx context.Context, email string) (Outcome, error) {
	if email == "" {
		return Outcome{Status: StatusError, Message: common.ErrNoSignupEmail.Error()}, common.ErrNoSignupEmail
	}

	if err := f.api.ResendVerification(ctx, email); err != nil {
		return Outcome{
			Status:  StatusError,
			Message: err.Error(),
			Email:   email,
		}, err
	}

	return Outcome{
		Status:  StatusChecking,
		Message: "Verification email sent! Please check your inbox and spam folder.",
		Email:   email,
	}, nil
}
