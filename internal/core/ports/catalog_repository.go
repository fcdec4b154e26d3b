package ports

import (
	"context"

	"github.com/linkbasket/catalog/internal/core/domain"
)

// CatalogRepository defines persistence operations for products.
type CatalogRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)

	// Search returns products whose title or description contains term
	// (case-insensitive substring). An empty term matches everything.
	// Results are ordered newest-first, ties broken by insertion order.
	Search(ctx context.Context, term string) ([]*domain.Product, error)

	// DeleteByID removes the product with the given id. Deleting an id
	// that does not exist is not an error.
	DeleteByID(ctx context.Context, id string) error
}
