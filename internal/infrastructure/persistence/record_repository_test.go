package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/kitcha/docrender/internal/domain/document"
	"github.com/kitcha/docrender/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRecordRepository_FindByID(t *testing.T) {
	db := setupDocumentTestDB(t)
	repo := NewGormRecordRepository(db)
	ctx := context.Background()

	record := &document.Record{
		Title: "Report",
		Body:  "Line one\nSecond paragraph.",
	}
	require.NoError(t, repo.Save(ctx, record))
	require.NotZero(t, record.ID)

	t.Run("finds existing record", func(t *testing.T) {
		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, found.ID)
		assert.Equal(t, "Report", found.Title)
		assert.Equal(t, "Line one\nSecond paragraph.", found.Body)
		assert.False(t, found.Deleted)
		assert.True(t, found.IsAvailable())
	})

	t.Run("returns deleted record with flag set", func(t *testing.T) {
		record.Deleted = true
		require.NoError(t, repo.Save(ctx, record))

		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.True(t, found.Deleted)
		assert.False(t, found.IsAvailable())
	})

	t.Run("missing record returns ErrNotFound", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 9999)
		assert.Nil(t, found)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
