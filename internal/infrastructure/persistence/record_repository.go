package persistence

import (
	"context"
	"errors"

	"github.com/kitcha/docrender/internal/domain/document"
	"github.com/kitcha/docrender/internal/domain/shared"
	"github.com/kitcha/docrender/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRecordRepository implements document.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

var _ document.RecordRepository = (*GormRecordRepository)(nil)

// FindByID finds a record by ID. Logically deleted records are returned
// with Deleted set; callers decide how to treat them.
func (r *GormRecordRepository) FindByID(ctx context.Context, id int64) (*document.Record, error) {
	var model models.BoardModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a record when it has no ID yet, otherwise updates it in place
func (r *GormRecordRepository) Save(ctx context.Context, record *document.Record) error {
	model := models.BoardModelFromDomain(record)
	db := r.db.WithContext(ctx)
	if record.ID == 0 {
		if err := db.Create(model).Error; err != nil {
			return err
		}
		record.ID = model.ID
		return nil
	}
	return db.Model(model).
		Select("title", "content", "deleted", "updated_at").
		Updates(model).Error
}
