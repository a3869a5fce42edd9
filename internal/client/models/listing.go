package models

import "fmt"

// Condition describes the physical state of a listed book.
type Condition string

const (
	ConditionNew        Condition = "new"
	ConditionLikeNew    Condition = "like_new"
	ConditionGood       Condition = "good"
	ConditionAcceptable Condition = "acceptable"
)

// ListingType distinguishes sale listings from rentals.
type ListingType string

const (
	TypeSale ListingType = "sale"
	TypeRent ListingType = "rent"
)

// ListingStatus is the server-side lifecycle state of a listing.
type ListingStatus string

const (
	StatusActive  ListingStatus = "active"
	StatusSold    ListingStatus = "sold"
	StatusPending ListingStatus = "pending"
)

// Listing is a sellable or rentable book record owned by a user. Rental
// fields are only populated when Type is rent.
type Listing struct {
	ID                string        `json:"id"`
	BookTitle         string        `json:"book_title"`
	BookAuthor        string        `json:"book_author"`
	BookISBN          string        `json:"book_isbn,omitempty"`
	Condition         Condition     `json:"condition"`
	Type              ListingType   `json:"type"`
	Price             float64       `json:"price"`
	RentDurationValue int           `json:"rent_duration_value,omitempty"`
	RentDurationUnit  string        `json:"rent_duration_unit,omitempty"`
	Images            []string      `json:"images,omitempty"`
	Description       string        `json:"description,omitempty"`
	UserDisplayName   string        `json:"user_display_name,omitempty"`
	Status            ListingStatus `json:"status,omitempty"`
}

// PriceLabel renders the price the way the marketplace shows it:
// "$12.50" for sales, "$12.50 / 2 weeks" for rentals.
func (l Listing) PriceLabel() string {
	if l.Type == TypeRent && l.RentDurationValue > 0 {
		return fmt.Sprintf("$%.2f / %d %s", l.Price, l.RentDurationValue, l.RentDurationUnit)
	}
	return fmt.Sprintf("$%.2f", l.Price)
}

// Label maps the wire value to display text.
func (c Condition) Label() string {
	switch c {
	case ConditionNew:
		return "New"
	case ConditionLikeNew:
		return "Like New"
	case ConditionGood:
		return "Good"
	case ConditionAcceptable:
		return "Acceptable"
	default:
		return string(c)
	}
}
