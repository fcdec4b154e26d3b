package ports

import (
	"context"
	"io"
)

// FileStore persists uploaded images into a publicly servable content area.
type FileStore interface {
	// Save writes content and returns the public reference path for the
	// stored file (e.g. "/uploads/1712345678901-a1b2c3d4.jpg"). Generated
	// names are collision-resistant so concurrent saves never clobber
	// each other.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
}
