package document

import "context"

// RecordRepository is the read side of the record store
type RecordRepository interface {
	// FindByID returns the record or shared.ErrNotFound
	FindByID(ctx context.Context, id int64) (*Record, error)
}

// MetadataRepository persists where a record's rendered document lives
type MetadataRepository interface {
	// Save inserts or replaces the row for doc.OwnerID
	Save(ctx context.Context, doc *RenderedDocument) error

	// FindByOwnerID returns the row or shared.ErrNotFound
	FindByOwnerID(ctx context.Context, ownerID int64) (*RenderedDocument, error)

	// DeleteByOwnerID removes the row; deleting a missing row is not an error
	DeleteByOwnerID(ctx context.Context, ownerID int64) error
}
