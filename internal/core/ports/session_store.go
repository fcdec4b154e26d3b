package ports

import (
	"context"

	"github.com/linkbasket/catalog/internal/core/domain"
)

// SessionStore holds server-side sessions with a fixed time-to-live.
type SessionStore interface {
	// Create issues a new opaque token bound to userID.
	Create(ctx context.Context, userID string) (*domain.Session, error)

	// Get resolves a token to its session. Expired or unknown tokens
	// return domain.ErrSessionNotFound.
	Get(ctx context.Context, token string) (*domain.Session, error)

	// Destroy removes the session. Unknown tokens are a no-op.
	Destroy(ctx context.Context, token string) error
}
