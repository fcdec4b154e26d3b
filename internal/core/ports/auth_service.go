package ports

import (
	"context"

	"github.com/linkbasket/catalog/internal/core/domain"
)

// AuthService authenticates the administrator and provisions the initial
// account at startup.
type AuthService interface {
	// Login verifies the credentials and returns a fresh session.
	// Unknown email and wrong password are indistinguishable to the
	// caller: both return domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.Session, error)

	// Logout destroys the session for token. Unconditional; destroying
	// an unknown token succeeds.
	Logout(ctx context.Context, token string) error

	// EnsureAdmin creates the initial admin account when none exists.
	// A no-op when an admin is already present or email/password are empty.
	EnsureAdmin(ctx context.Context, email, password string) error
}
