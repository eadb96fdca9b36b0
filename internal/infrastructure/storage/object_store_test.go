package storage

import (
	"context"
	"testing"

	"github.com/kitcha/docrender/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config", func(t *testing.T) {
		_, err := New(ctx, nil, nil)
		require.Error(t, err)
	})

	t.Run("memory", func(t *testing.T) {
		store, err := New(ctx, &config.StorageConfig{Provider: ProviderMemory}, nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryObjectStorage{}, store)
	})

	t.Run("s3", func(t *testing.T) {
		store, err := New(ctx, &config.StorageConfig{
			Provider:  ProviderS3,
			Bucket:    "docs",
			AccessKey: "key",
			SecretKey: "secret",
			Endpoint:  "http://localhost:9000",
		}, nil)
		require.NoError(t, err)
		assert.IsType(t, &S3ObjectStorage{}, store)
	})

	t.Run("gcs with emulator endpoint", func(t *testing.T) {
		store, err := New(ctx, &config.StorageConfig{
			Provider: ProviderGCS,
			Bucket:   "docs",
			Endpoint: "http://localhost:4443/storage/v1/",
		}, nil)
		require.NoError(t, err)
		require.IsType(t, &GCSObjectStorage{}, store)
		gcs := store.(*GCSObjectStorage)
		assert.Equal(t, "docs", gcs.GetBucket())
		assert.NoError(t, gcs.Close())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(ctx, &config.StorageConfig{Provider: "ftp"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported storage provider")
	})
}

func TestNewGCSObjectStorage_Validation(t *testing.T) {
	_, err := NewGCSObjectStorage(context.Background(), nil)
	require.Error(t, err)

	_, err = NewGCSObjectStorage(context.Background(), &config.StorageConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")
}
