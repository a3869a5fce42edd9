package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmubooktrade/booktrade/internal/client/api"
	"github.com/gmubooktrade/booktrade/internal/client/models"
	"github.com/gmubooktrade/booktrade/internal/common"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

type fakeAPI struct {
	listings   []models.Listing
	listErr    error
	mine       []models.Listing
	mineErr    error
	listing    *models.Listing
	listingErr error
}

func (f *fakeAPI) Close() error                   { return nil }
func (f *fakeAPI) Ping(ctx context.Context) error { return nil }

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) Signup(ctx context.Context, req api.SignupRequest) (*api.SignupResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) Logout(ctx context.Context) error { return errors.New("not implemented") }

func (f *fakeAPI) CheckVerification(ctx context.Context, email string) (*api.VerificationStatus, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) ResendVerification(ctx context.Context, email string) error {
	return errors.New("not implemented")
}

func (f *fakeAPI) Listings(ctx context.Context, filter api.ListingFilter) ([]models.Listing, error) {
	return f.listings, f.listErr
}

func (f *fakeAPI) MyListings(ctx context.Context, filter api.ListingFilter) ([]models.Listing, error) {
	return f.mine, f.mineErr
}

func (f *fakeAPI) Listing(ctx context.Context, id string) (*models.Listing, error) {
	return f.listing, f.listingErr
}

type fakeCache struct {
	items       []models.Listing
	replaceErr  error
	replaced    []models.Listing
	upserted    []models.Listing
	listCalled  bool
	getCalledID string
}

func (f *fakeCache) ReplaceAll(ctx context.Context, items []models.Listing) error {
	f.replaced = items
	return f.replaceErr
}

func (f *fakeCache) Upsert(ctx context.Context, item models.Listing) error {
	f.upserted = append(f.upserted, item)
	return nil
}

func (f *fakeCache) List(ctx context.Context, status models.ListingStatus) ([]models.Listing, error) {
	f.listCalled = true
	return f.items, nil
}

func (f *fakeCache) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	f.getCalledID = id
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: "l1", BookTitle: "Calculus", Type: models.TypeSale, Price: 30, Status: models.StatusActive},
		{ID: "l2", BookTitle: "Physics", Type: models.TypeRent, Price: 12.5, RentDurationValue: 2, RentDurationUnit: "weeks", Status: models.StatusActive},
	}
}

func newService(a *fakeAPI, c *fakeCache) *ListingService {
	return NewListingService(a, c, logging.NewNopLogger())
}

func TestList_LiveFetchRefreshesCache(t *testing.T) {
	a := &fakeAPI{listings: sampleListings()}
	c := &fakeCache{}
	s := newService(a, c)

	res, err := s.List(context.Background(), api.ListingFilter{})

	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Len(t, res.Items, 2)
	assert.Len(t, c.replaced, 2)
}

func TestList_UnavailableFallsBackToCache(t *testing.T) {
	a := &fakeAPI{listErr: api.ErrUnavailable}
	c := &fakeCache{items: sampleListings()}
	s := newService(a, c)

	res, err := s.List(context.Background(), api.ListingFilter{Status: models.StatusActive})

	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Len(t, res.Items, 2)
	assert.True(t, c.listCalled)
}

func TestList_OtherErrorsPropagate(t *testing.T) {
	a := &fakeAPI{listErr: &api.RequestError{Status: 401, Message: "Not authenticated"}}
	c := &fakeCache{items: sampleListings()}
	s := newService(a, c)

	_, err := s.List(context.Background(), api.ListingFilter{})

	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, c.listCalled, "auth errors must not be masked by the cache")
}

func TestList_CacheWriteFailureIsNotFatal(t *testing.T) {
	a := &fakeAPI{listings: sampleListings()}
	c := &fakeCache{replaceErr: errors.New("disk full")}
	s := newService(a, c)

	res, err := s.List(context.Background(), api.ListingFilter{})

	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestGet_LiveFetchCaches(t *testing.T) {
	item := sampleListings()[0]
	a := &fakeAPI{listing: &item}
	c := &fakeCache{}
	s := newService(a, c)

	got, fromCache, err := s.Get(context.Background(), "l1")

	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "Calculus", got.BookTitle)
	require.Len(t, c.upserted, 1)
}

func TestGet_UnavailableServesCache(t *testing.T) {
	a := &fakeAPI{listingErr: api.ErrUnavailable}
	c := &fakeCache{items: sampleListings()}
	s := newService(a, c)

	got, fromCache, err := s.Get(context.Background(), "l2")

	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "Physics", got.BookTitle)
}

func TestGet_UnavailableAndNotCached(t *testing.T) {
	a := &fakeAPI{listingErr: api.ErrUnavailable}
	c := &fakeCache{}
	s := newService(a, c)

	_, _, err := s.Get(context.Background(), "missing")

	require.ErrorIs(t, err, api.ErrUnavailable, "the fetch error wins when the cache has nothing")
}

func TestGet_NotFoundPropagates(t *testing.T) {
	a := &fakeAPI{listingErr: &api.RequestError{Status: 404, Message: "Listing not found"}}
	s := newService(a, &fakeCache{})

	_, _, err := s.Get(context.Background(), "nope")

	require.ErrorIs(t, err, api.ErrNotFound)
	require.EqualError(t, err, "Listing not found")
}

func TestMine_Passthrough(t *testing.T) {
	a := &fakeAPI{mine: sampleListings()[:1]}
	s := newService(a, &fakeCache{})

	items, err := s.Mine(context.Background(), api.ListingFilter{})

	require.NoError(t, err)
	assert.Len(t, items, 1)
}
