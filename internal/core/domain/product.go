package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// ErrValidation marks a create request rejected for missing or blank
// required fields. Handlers map it to HTTP 400.
var ErrValidation = errors.New("missing required fields")

// Product is a single catalog listing. Listings are immutable after
// creation: there is no edit operation, only create and delete.
type Product struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ImageURL     string    `json:"imageUrl"`
	AffiliateURL string    `json:"affiliateUrl"`
	Price        *float64  `json:"price,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
