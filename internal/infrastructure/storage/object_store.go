// Package storage provides object storage implementations for rendered documents.
package storage

import (
	"context"
	"errors"
	"fmt"

	infraconfig "github.com/kitcha/docrender/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned (wrapped) by Get when no object exists under the key
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is a flat key/value blob store bound to a single bucket.
// Put overwrites any existing object under the same key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Provider names accepted in storage.provider
const (
	ProviderS3     = "s3"
	ProviderGCS    = "gcs"
	ProviderMemory = "memory"
)

// New builds the ObjectStore selected by cfg.Provider
func New(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (ObjectStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case ProviderS3:
		return NewS3ObjectStorage(cfg, WithLogger(logger))
	case ProviderGCS:
		return NewGCSObjectStorage(ctx, cfg, WithGCSLogger(logger))
	case ProviderMemory:
		logger.Warn("Using in-memory object storage, documents will not survive a restart")
		return NewMemoryObjectStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %q", cfg.Provider)
	}
}
