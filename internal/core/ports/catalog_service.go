package ports

import (
	"context"
	"io"

	"github.com/linkbasket/catalog/internal/core/domain"
)

// CreateProductInput carries the submitted form fields for a new listing.
// Price is the raw form text; parsing is the service's job.
type CreateProductInput struct {
	Title        string
	ImageURL     string
	AffiliateURL string
	Price        string
	Description  string
	// Upload, when non-nil, is the submitted image file. Its stored
	// reference replaces ImageURL regardless of what the form supplied.
	Upload *UploadInput
}

// UploadInput is an uploaded image file as received from the transport.
type UploadInput struct {
	Filename string
	Content  io.Reader
}

// CatalogService defines the catalog use-cases: read-only search and the
// admin-only mutations.
type CatalogService interface {
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
