package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/linkbasket/catalog/internal/core/domain"
)

// SessionStore keeps admin sessions in Redis.
// Key format: session:<token>, value: admin user id, expiring after TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// TTL defaults to 8 hours when non-positive.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create issues an opaque token for userID. Expiry is handled entirely by
// Redis; no sweeper is needed.
func (s *SessionStore) Create(ctx context.Context, userID string) (*domain.Session, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), userID, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &domain.Session{Token: token, UserID: userID}, nil
}

// Get resolves a token. Expired tokens have already been evicted by Redis
// and come back as domain.ErrSessionNotFound like unknown ones.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &domain.Session{Token: token, UserID: userID}, nil
}

// Destroy removes the session. Deleting an absent key is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
