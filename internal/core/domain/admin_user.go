package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAdminNotFound = errors.New("admin user not found")
var ErrAdminExists = errors.New("admin user already exists")

// AdminUser is the authenticated operator of the catalog. Exactly one is
// provisioned at first boot; afterwards the record is read-only.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
