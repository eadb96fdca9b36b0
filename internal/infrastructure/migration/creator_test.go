package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create boards", "create_boards"},
		{"Add-Board-Files", "add_board_files"},
		{"ADD__STORAGE__KEY", "add_storage_key"},
		{"   spaces   ", "spaces"},
		{"index!on@owner", "index_on_owner"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	first, err := CreateMigration(dir, "create boards", "Boards table")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_boards.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_boards.down.sql"), first.DownPath)

	second, err := CreateMigration(dir, "create board files", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- create boards (up)")
	assert.Contains(t, string(up), "-- Boards table")

	down, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(down)")
}

func TestCreateMigration_InvalidName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_create_board_files.up.sql",
		"000002_create_board_files.down.sql",
		"000001_create_boards.up.sql",
		"000003_seed.up.sql",
		"README.md",
		"notes.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000004_dir.up.sql"), 0o755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, MigrationInfo{Version: 1, Name: "create_boards"}, migrations[0])
	assert.Equal(t, MigrationInfo{Version: 2, Name: "create_board_files", HasDown: true}, migrations[1])
	assert.Equal(t, "000003_seed", migrations[2].String())
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
