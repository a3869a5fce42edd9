// Package listings caches marketplace listings in the local database so that
// browsing keeps working while the backend is unreachable.
package listings

import (
	"context"

	"github.com/gmubooktrade/booktrade/internal/client/models"
)

type Repository interface {
	// ReplaceAll atomically swaps the cached listing set for a fresh fetch.
	ReplaceAll(ctx context.Context, items []models.Listing) error
	// Upsert stores or refreshes a single listing.
	Upsert(ctx context.Context, item models.Listing) error
	// List returns cached listings, optionally filtered by status.
	List(ctx context.Context, status models.ListingStatus) ([]models.Listing, error)
	// GetByID returns a cached listing or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Listing, error)
}
