package printing

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitcha/docrender/internal/domain/document"
	"github.com/kitcha/docrender/internal/domain/shared"
	"github.com/kitcha/docrender/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// DocumentStoreConfig contains configuration for the document store
type DocumentStoreConfig struct {
	Logger *zap.Logger
}

// DocumentStore persists rendered bytes in the object store and records
// where they live in the metadata repository.
type DocumentStore struct {
	objects  storage.ObjectStore
	metadata document.MetadataRepository
	logger   *zap.Logger
}

// NewDocumentStore creates a document store
func NewDocumentStore(objects storage.ObjectStore, metadata document.MetadataRepository, config *DocumentStoreConfig) (*DocumentStore, error) {
	if objects == nil {
		return nil, errors.New("object store is required")
	}
	if metadata == nil {
		return nil, errors.New("metadata repository is required")
	}
	if config == nil {
		config = &DocumentStoreConfig{}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentStore{
		objects:  objects,
		metadata: metadata,
		logger:   logger,
	}, nil
}

// Put uploads content under the key derived from displayName and then saves
// the metadata row for ownerID. No row is written if the upload fails.
func (s *DocumentStore) Put(ctx context.Context, ownerID int64, displayName string, content []byte) (string, error) {
	doc := document.NewRenderedDocument(ownerID, displayName)

	if err := s.objects.Put(ctx, doc.StorageKey, content, document.ContentType); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to upload document", err)
	}

	if err := s.metadata.Save(ctx, doc); err != nil {
		return "", NewRenderError(ErrCodeStorageFailed, "failed to save document metadata", err)
	}

	s.logger.Debug("Document stored",
		zap.Int64("owner_id", ownerID),
		zap.String("storage_key", doc.StorageKey),
		zap.Int("size", len(content)))

	return doc.StorageKey, nil
}

// Get returns the metadata row for ownerID with Content filled from the object store.
func (s *DocumentStore) Get(ctx context.Context, ownerID int64) (*document.RenderedDocument, error) {
	doc, err := s.metadata.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, document.ErrDocumentNotFound
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to read document metadata", err)
	}

	content, err := s.objects.Get(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.Error("Document metadata references a missing object",
				zap.Int64("owner_id", ownerID),
				zap.String("storage_key", doc.StorageKey))
			return nil, fmt.Errorf("%w: %w", document.ErrDocumentNotFound, document.ErrInconsistentState)
		}
		s.logger.Error("Failed to download document",
			zap.Int64("owner_id", ownerID),
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err))
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to download document", err)
	}

	doc.Content = content
	return doc, nil
}
