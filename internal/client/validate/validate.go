// Package validate implements the client-side fast-path checks that run
// before any network call. They are non-authoritative: the backend enforces
// the same rules.
package validate

import (
	"strings"

	"github.com/gmubooktrade/booktrade/internal/common"
)

// Email rejects addresses outside the GMU domain. The comparison is
// case-insensitive, matching the server behavior.
func Email(email string) error {
	if !strings.HasSuffix(strings.ToLower(email), common.EmailDomain) {
		return common.ErrEmailDomain
	}
	return nil
}

// SignupPassword enforces minimum length and confirmation match for new
// accounts. Login performs no password checks client-side.
func SignupPassword(password, confirm string) error {
	if len(password) < common.MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	if password != confirm {
		return common.ErrPasswordMismatch
	}
	return nil
}
