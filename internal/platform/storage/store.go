// Package storage keeps generated documents (payslips) outside the database.
package storage

import (
	"context"
	"errors"
	"fmt"

	"hrdesk/internal/platform/config"
)

var ErrObjectNotFound = errors.New("stored object not found")

// Store saves and loads opaque documents by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// New picks the driver named in cfg.
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalDir)
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
