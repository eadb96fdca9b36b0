package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/kitcha/docrender/internal/domain/document"
	"github.com/kitcha/docrender/internal/domain/shared"
	"github.com/kitcha/docrender/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentMetadataRepository implements document.MetadataRepository using GORM
type GormDocumentMetadataRepository struct {
	db *gorm.DB
}

// NewGormDocumentMetadataRepository creates a new GormDocumentMetadataRepository
func NewGormDocumentMetadataRepository(db *gorm.DB) *GormDocumentMetadataRepository {
	return &GormDocumentMetadataRepository{db: db}
}

var _ document.MetadataRepository = (*GormDocumentMetadataRepository)(nil)

// Save upserts the metadata row for doc.OwnerID. A later save overwrites an earlier one.
func (r *GormDocumentMetadataRepository) Save(ctx context.Context, doc *document.RenderedDocument) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}
	model := models.BoardFileModelFromDomain(doc)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "storage_key", "updated_at"}),
		}).
		Create(model).Error
}

// FindByOwnerID finds the metadata row for a record
func (r *GormDocumentMetadataRepository) FindByOwnerID(ctx context.Context, ownerID int64) (*document.RenderedDocument, error) {
	var model models.BoardFileModel
	if err := r.db.WithContext(ctx).First(&model, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByOwnerID removes the metadata row for a record. Missing rows are ignored.
func (r *GormDocumentMetadataRepository) DeleteByOwnerID(ctx context.Context, ownerID int64) error {
	return r.db.WithContext(ctx).Delete(&models.BoardFileModel{}, "owner_id = ?", ownerID).Error
}
