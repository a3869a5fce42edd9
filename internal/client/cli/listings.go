package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmubooktrade/booktrade/internal/client/api"
	"github.com/gmubooktrade/booktrade/internal/client/models"
)

// Listings browses the marketplace. An optional first argument filters by
// status (active, sold, pending). Works without a login; when the backend is
// unreachable the locally cached listings are shown instead.
func (a *App) Listings(ctx context.Context, args []string) error {
	filter := api.ListingFilter{}
	if len(args) > 0 {
		filter.Status = models.ListingStatus(args[0])
	}

	res, err := a.listings.List(ctx, filter)
	if err != nil {
		printlnFn("Could not load listings:", err.Error())
		return err
	}

	if res.FromCache {
		printlnFn("Server unreachable, showing cached listings.")
	}
	if len(res.Items) == 0 {
		printlnFn("No listings found.")
		return nil
	}
	for _, l := range res.Items {
		printListingLine(l)
	}
	return nil
}

// MyListings lists the authenticated user's own listings.
func (a *App) MyListings(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	items, err := a.listings.Mine(ctx, api.ListingFilter{})
	if err != nil {
		printlnFn("Could not load your listings:", err.Error())
		return err
	}

	if len(items) == 0 {
		printlnFn("You have no listings yet.")
		return nil
	}
	for _, l := range items {
		printListingLine(l)
	}
	return nil
}

// Show prints a single listing by id.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: show <id>")
		return nil
	}

	item, fromCache, err := a.listings.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			printlnFn("Listing Not Found")
			printlnFn("The listing you're looking for doesn't exist or has been removed.")
		} else {
			printlnFn("Could not load listing:", err.Error())
		}
		return err
	}

	if fromCache {
		printlnFn("Server unreachable, showing cached copy.")
	}
	printlnFn("Title:     ", item.BookTitle)
	printlnFn("Author:    ", item.BookAuthor)
	if item.BookISBN != "" {
		printlnFn("ISBN:      ", item.BookISBN)
	}
	printlnFn("Condition: ", item.Condition.Label())
	printlnFn("Price:     ", item.PriceLabel())
	if item.UserDisplayName != "" {
		printlnFn("Seller:    ", item.UserDisplayName)
	}
	if item.Description != "" {
		printlnFn("Description:", item.Description)
	}
	return nil
}

func printListingLine(l models.Listing) {
	printlnFn(fmt.Sprintf("%-36s  %-30s  %-10s  %s", l.ID, l.BookTitle, l.Condition.Label(), l.PriceLabel()))
}
