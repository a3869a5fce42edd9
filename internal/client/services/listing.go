// Package services holds the higher-level operations the CLI works with,
// composed from the API client and the local cache.
package services

import (
	"context"
	"errors"

	"github.com/gmubooktrade/booktrade/internal/client/api"
	"github.com/gmubooktrade/booktrade/internal/client/models"
	"github.com/gmubooktrade/booktrade/internal/client/repositories/listings"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

// ListingResult carries listings plus whether they came from the local cache
// instead of a live fetch, so the caller can mark them as possibly stale.
type ListingResult struct {
	Items     []models.Listing
	FromCache bool
}

// ListingService fetches marketplace listings and keeps the local cache
// current. When the backend is unreachable, reads fall back to the cache.
type ListingService struct {
	api   api.Client
	cache listings.Repository
	log   logging.Logger
}

func NewListingService(apiClient api.Client, cache listings.Repository, log logging.Logger) *ListingService {
	return &ListingService{api: apiClient, cache: cache, log: log.With("component", "listings")}
}

// List returns marketplace listings. A successful fetch replaces the cache;
// an unreachable backend serves the cache instead. Any other error is
// returned as-is.
func (s *ListingService) List(ctx context.Context, filter api.ListingFilter) (*ListingResult, error) {
	items, err := s.api.Listings(ctx, filter)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			return s.fromCache(ctx, filter.Status, err)
		}
		return nil, err
	}

	if cacheErr := s.cache.ReplaceAll(ctx, items); cacheErr != nil {
		s.log.Error(ctx, "refreshing listing cache", "error", cacheErr)
	}
	return &ListingResult{Items: items}, nil
}

// Mine returns the authenticated user's own listings. Own listings are not
// cached: they are only reachable when logged in, and a live answer matters
// more there (status changes, sold items).
func (s *ListingService) Mine(ctx context.Context, filter api.ListingFilter) ([]models.Listing, error) {
	return s.api.MyListings(ctx, filter)
}

// Get returns a single listing by id, falling back to the cache when the
// backend is unreachable.
func (s *ListingService) Get(ctx context.Context, id string) (*models.Listing, bool, error) {
	item, err := s.api.Listing(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			cached, cacheErr := s.cache.GetByID(ctx, id)
			if cacheErr != nil {
				return nil, false, err
			}
			return cached, true, nil
		}
		return nil, false, err
	}

	if cacheErr := s.cache.Upsert(ctx, *item); cacheErr != nil {
		s.log.Error(ctx, "caching listing", "id", id, "error", cacheErr)
	}
	return item, false, nil
}

func (s *ListingService) fromCache(ctx context.Context, status models.ListingStatus, fetchErr error) (*ListingResult, error) {
	cached, err := s.cache.List(ctx, status)
	if err != nil {
		return nil, fetchErr
	}
	s.log.Info(ctx, "serving listings from cache", "count", len(cached))
	return &ListingResult{Items: cached, FromCache: true}, nil
}
