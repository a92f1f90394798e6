package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add clients table", "add_clients_table"},
		{"Add-Clients-Table", "add_clients_table"},
		{"ADD_CLIENTS_TABLE", "add_clients_table"},
		{"add__clients__table", "add_clients_table"},
		{"Add Orders 123", "add_orders_123"},
		{"   spaces   ", "spaces"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add seller theme", "Theme colour per seller")
	require.NoError(t, err)
	assert.Equal(t, "000001", mf.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_seller_theme.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_seller_theme.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add seller theme")
	assert.Contains(t, string(up), "Theme colour per seller")
	assert.Contains(t, string(up), "Write your UP migration SQL here")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
	assert.Contains(t, string(down), "Write your DOWN migration SQL here")
}

func TestCreateMigration_FollowsHighestVersion(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"000001_init.up.sql", "000001_init.down.sql", "000007_orders.up.sql", "000007_orders.down.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}

	mf, err := CreateMigration(dir, "client notes", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	source := fstest.MapFS{
		"000010_add_stats.up.sql":     {Data: []byte("--")},
		"000010_add_stats.down.sql":   {Data: []byte("--")},
		"000002_add_clients.up.sql":   {Data: []byte("--")},
		"000002_add_clients.down.sql": {Data: []byte("--")},
		"000001_init.up.sql":          {Data: []byte("--")},
		"README.md":                   {Data: []byte("notes")},
		"draft.up.sql":                {Data: []byte("--")},
		"000003_dir.up.sql/keep":      {Data: []byte("")},
	}

	got, err := ListMigrations(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_add_clients", "000010_add_stats"}, got)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	got, err := ListMigrations(os.DirFS("/nonexistent/path/to/migrations"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListMigrations_Embedded(t *testing.T) {
	got, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "000001_init_schema", got[0])
}
