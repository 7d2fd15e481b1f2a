package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.md", "010_c.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	got, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql", "010_c.sql"}, got)
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRepositoryMigrations(t *testing.T) {
	got, err := migrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_audit_events.sql"}, got)
}

func TestOverrideArg(t *testing.T) {
	assert.Nil(t, overrideArg(nil))

	e := domain.EmotionGuilt
	got := overrideArg(&e)
	require.NotNil(t, got)
	assert.Equal(t, "guilt", *got)
}
