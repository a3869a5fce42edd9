package cli

import (
	"context"

	"github.com/gmubooktrade/booktrade/internal/client/verify"
)

// Verify checks the verification status of an email address. With no
// argument it falls back to the address remembered from the last signup,
// the same way the verification page does when the link carries no email.
func (a *App) Verify(ctx context.Context, args []string) error {
	var p verify.LinkParams
	if len(args) > 0 {
		p.Email = args[0]
	}
	if len(args) > 1 {
		// A pasted link error code, e.g. "otp_expired".
		p.ErrorCode = args[1]
	}

	out := a.verify.Resolve(ctx, p)
	printlnFn("[" + string(out.Status) + "] " + out.Message)
	if out.RedirectTo != "" {
		printlnFn("Continue to", out.RedirectTo, "to log in.")
	} else if out.Status == verify.StatusExpired && out.Email != "" {
		printlnFn("Use 'resend " + out.Email + "' to request a new link.")
	}
	return nil
}

// Resend requests a fresh verification email.
func (a *App) Resend(ctx context.Context, args []string) error {
	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		stored, err := a.tokens.SignupEmail(ctx)
		if err != nil {
			return err
		}
		email = stored
	}

	out, err := a.verify.Resend(ctx, email)
	printlnFn(out.Message)
	return err
}
