package ports

import (
	"context"

	"github.com/linkbasket/catalog/internal/core/domain"
)

// AuthRepository defines the interface for admin user persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error)
	Count(ctx context.Context) (int64, error)
}
