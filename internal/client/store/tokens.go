package store

import (
	"context"

	"github.com/gmubooktrade/booktrade/internal/client/repositories/metadata"
)

const (
	keyToken       = "token"
	keySignupEmail = "signup_email"
)

// TokenStore is the single owner of the persisted session credential and of
// the transiently stored just-signed-up email address. No other component
// writes these keys.
type TokenStore struct {
	meta metadata.Repository
}

func NewTokenStore(meta metadata.Repository) *TokenStore {
	return &TokenStore{meta: meta}
}

func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) SetToken(ctx context.Context, token string) error {
	return s.meta.Set(ctx, keyToken, []byte(token))
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.meta.Delete(ctx, keyToken)
}

// SignupEmail returns the email stored by the most recent signup, if any.
// The verification page falls back to it when the link carries no address.
func (s *TokenStore) SignupEmail(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, keySignupEmail)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) SetSignupEmail(ctx context.Context, email string) error {
	return s.meta.Set(ctx, keySignupEmail, []byte(email))
}

func (s *TokenStore) ClearSignupEmail(ctx context.Context) error {
	return s.meta.Delete(ctx, keySignupEmail)
}
