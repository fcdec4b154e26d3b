// Package storage implements the upload content area on local disk.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// publicPrefix is the URL path under which stored files are served.
const publicPrefix = "/uploads/"

// LocalStore saves uploads into a single directory with generated names
// of the form <unix-ms>-<8 hex chars><ext>, so concurrent saves cannot
// collide and names sort roughly by upload time.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the content area directory when missing.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes content to the content area and returns the public
// reference path.
func (s *LocalStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := generateName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload: %w", err)
	}

	return publicPrefix + name, nil
}

// Dir returns the directory files are written to, for static serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

func generateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// fallback: nanosecond tail still avoids same-millisecond clashes
		return fmt.Sprintf("%d-%08x%s", time.Now().UnixMilli(), time.Now().UnixNano()&0xFFFFFFFF, ext)
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)
}
