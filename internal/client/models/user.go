// Package models holds the data types the BookTrade backend serves. All of
// them are read-only from the client's perspective: the client never mutates
// a server-sourced object in place, it re-fetches.
package models

import "time"

// User is the server's view of the authenticated account.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
}
