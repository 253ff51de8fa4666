package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/arora427/HomeVerse/internal/config"
)

// Storage persists uploaded files and returns the reference string stored on
// property records.
type Storage interface {
	Save(ctx context.Context, originalFilename string, r io.Reader) (string, error)
}

// New selects the storage backend from configuration.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "local":
		return NewLocalStorage(cfg.UploadDir)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}
