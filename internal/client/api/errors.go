package api

import (
	"fmt"

	"github.com/gmubooktrade/booktrade/internal/common"
)

// Sentinels for errors.Is matching. They alias the shared definitions so the
// same checks work at every layer.
var (
	ErrUnavailable  = common.ErrUnavailable
	ErrUnauthorized = common.ErrUnauthorized
	ErrNotFound     = common.ErrNotFound
)

// RequestError is a non-success HTTP response. Message holds the
// server-provided text (the backend's "detail" field) or a generic fallback,
// so it can be shown to the user verbatim.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap maps well-known status classes onto sentinel errors, so callers can
// write errors.Is(err, api.ErrUnauthorized) without losing the message.
func (e *RequestError) Unwrap() error {
	switch e.Status {
	case 401, 403:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	case 502, 503, 504:
		return ErrUnavailable
	}
	return nil
}

func genericMessage(status int) string {
	return fmt.Sprintf("Request failed with status %d", status)
}
