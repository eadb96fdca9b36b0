package models

import (
	"time"

	"github.com/kitcha/docrender/internal/domain/document"
)

// BoardModel is the persistence model for source records
type BoardModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"type:varchar(500);not null"`
	Content   string    `gorm:"type:text;not null;default:''"`
	Deleted   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for BoardModel
func (BoardModel) TableName() string {
	return "boards"
}

// ToDomain converts BoardModel to domain Record
func (m *BoardModel) ToDomain() *document.Record {
	return &document.Record{
		ID:      m.ID,
		Title:   m.Title,
		Body:    m.Content,
		Deleted: m.Deleted,
	}
}

// BoardModelFromDomain creates a BoardModel from domain Record
func BoardModelFromDomain(r *document.Record) *BoardModel {
	return &BoardModel{
		ID:      r.ID,
		Title:   r.Title,
		Content: r.Body,
		Deleted: r.Deleted,
	}
}

// BoardFileModel is the persistence model for rendered document metadata.
// There is at most one row per board.
type BoardFileModel struct {
	OwnerID     int64     `gorm:"column:owner_id;primaryKey;autoIncrement:false"`
	DisplayName string    `gorm:"column:display_name;type:varchar(500);not null"`
	StorageKey  string    `gorm:"column:storage_key;type:varchar(1024);not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for BoardFileModel
func (BoardFileModel) TableName() string {
	return "board_files"
}

// ToDomain converts BoardFileModel to domain RenderedDocument
func (m *BoardFileModel) ToDomain() *document.RenderedDocument {
	return &document.RenderedDocument{
		OwnerID:     m.OwnerID,
		DisplayName: m.DisplayName,
		StorageKey:  m.StorageKey,
		UpdatedAt:   m.UpdatedAt,
	}
}

// BoardFileModelFromDomain creates a BoardFileModel from domain RenderedDocument
func BoardFileModelFromDomain(d *document.RenderedDocument) *BoardFileModel {
	return &BoardFileModel{
		OwnerID:     d.OwnerID,
		DisplayName: d.DisplayName,
		StorageKey:  d.StorageKey,
		UpdatedAt:   d.UpdatedAt,
	}
}
