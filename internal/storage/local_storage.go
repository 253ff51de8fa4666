package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// localStorage writes uploads to a directory served statically at /uploads.
type localStorage struct {
	dir string
}

// NewLocalStorage creates a disk-backed storage rooted at dir.
func NewLocalStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &localStorage{dir: dir}, nil
}

// Save writes the file under a unique name and returns its public path.
func (s *localStorage) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalFilename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close upload file %s: %w", path, err)
	}

	return "/uploads/" + name, nil
}
