package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkbasket/catalog/internal/core/domain"
	"github.com/linkbasket/catalog/internal/core/ports"
)

// dummyHash is compared against when the email is unknown, so that a miss
// costs the same bcrypt work as a wrong password ("wrongpassword", cost 10).
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type authService struct {
	repo     ports.AuthRepository
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(repo ports.AuthRepository, sessions ports.SessionStore, log zerolog.Logger) ports.AuthService {
	return &authService{repo: repo, sessions: sessions, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			// Burn the same bcrypt cost as a real comparison.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().Str("email", email).Msg("admin logged in")
	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// EnsureAdmin provisions the initial admin account. Credentials come from
// the environment; when none are supplied and no admin exists the process
// starts without one and logs a warning instead of inventing a secret.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	if email == "" || password == "" {
		s.log.Warn().Msg("no admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are unset; admin panel is unreachable")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	if _, err := s.repo.Create(ctx, &domain.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		// A concurrent replica may have seeded first.
		if errors.Is(err, domain.ErrAdminExists) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info().Str("email", email).Msg("seeded initial admin user")
	return nil
}
