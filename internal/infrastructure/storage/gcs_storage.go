package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	infraconfig "github.com/kitcha/docrender/internal/infrastructure/config"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Ensure GCSObjectStorage implements ObjectStore
var _ ObjectStore = (*GCSObjectStorage)(nil)

// GCSObjectStorage implements ObjectStore on a Google Cloud Storage bucket.
type GCSObjectStorage struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

// GCSObjectStorageOption is a functional option for configuring GCSObjectStorage
type GCSObjectStorageOption func(*GCSObjectStorage)

// WithGCSLogger sets a custom logger for GCSObjectStorage
func WithGCSLogger(logger *zap.Logger) GCSObjectStorageOption {
	return func(s *GCSObjectStorage) {
		s.logger = logger
	}
}

// NewGCSObjectStorage creates a GCS client bound to cfg.Bucket.
// Without a credentials file the client falls back to application default
// credentials. A custom endpoint (fake-gcs-server, emulators) disables auth.
func NewGCSObjectStorage(ctx context.Context, cfg *infraconfig.StorageConfig, opts ...GCSObjectStorageOption) (*GCSObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	var clientOpts []option.ClientOption
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts,
			option.WithEndpoint(cfg.Endpoint),
			option.WithoutAuthentication(),
		)
	} else if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	s := &GCSObjectStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Put uploads data under key, replacing any existing object.
func (s *GCSObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload: %w", err)
	}

	s.logger.Debug("Object uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(data)))
	return nil
}

// Get downloads the object stored under key.
func (s *GCSObjectStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("storage key is required")
	}

	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("get %s: %w", key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

// GetBucket returns the bucket name
func (s *GCSObjectStorage) GetBucket() string {
	return s.bucket
}

// Close releases the underlying client
func (s *GCSObjectStorage) Close() error {
	return s.client.Close()
}
