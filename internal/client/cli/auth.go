package cli

import (
	"context"
	"errors"
	"os"

	"github.com/gmubooktrade/booktrade/internal/client/api"
	"github.com/gmubooktrade/booktrade/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the backend.
// A non-GMU address is rejected before any request is made.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			printlnFn("Server unavailable. Please try again later.")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	a.session.DismissLogin()
	printlnFn("Login successful!")
	return nil
}

// Signup prompts for the new account's details and creates it. The session
// stays unauthenticated: the email must be verified first.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email (@gmu.edu)", os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password (min 12 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	res, err := a.session.Signup(ctx, email, string(password), string(confirm), fullName)
	if err != nil {
		printlnFn("Signup failed:", err.Error())
		return err
	}

	if res.Message != "" {
		printlnFn(res.Message)
	} else {
		printlnFn("Account created. Please check your email to verify your account.")
	}
	return nil
}

// Logout ends the session. The local token is gone even when the backend
// call failed.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	if err != nil {
		printlnFn("Logout request failed, local session cleared anyway:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current user.
func (a *App) Whoami(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	u := a.session.Snapshot().User
	printlnFn("Email:     ", u.Email)
	if u.FullName != "" {
		printlnFn("Name:      ", u.FullName)
	}
	if u.EmailVerified {
		printlnFn("Verified:   yes")
	} else {
		printlnFn("Verified:   no")
	}
	return nil
}

// Refresh re-fetches the current user from the backend.
func (a *App) Refresh(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	if err := a.session.RefreshUser(ctx); err != nil {
		printlnFn("Refresh failed:", err.Error())
		return err
	}
	printlnFn("Session refreshed.")
	return nil
}
