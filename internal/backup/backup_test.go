package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) (*Manager, string) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "attendance.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("original database contents"), 0o644))

	return NewManager(dbPath, filepath.Join(dir, "backups")), dbPath
}

func TestCreateAndList(t *testing.T) {
	m, _ := setupManager(t)

	info, err := m.Create()
	require.NoError(t, err)
	assert.True(t, info.Size > 0)
	assert.Contains(t, info.Name, "backup-")

	infos, err := m.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, info.Name, infos[0].Name)
}

func TestListEmptyDir(t *testing.T) {
	m, _ := setupManager(t)

	infos, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestRestoreRoundTrip(t *testing.T) {
	m, dbPath := setupManager(t)

	info, err := m.Create()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted"), 0o644))

	require.NoError(t, m.Restore(info.Name))

	restored, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, "original database contents", string(restored))
}

func TestRestoreMissingBackup(t *testing.T) {
	m, _ := setupManager(t)

	err := m.Restore("backup-nope.zip")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestRestoreRejectsPathTraversal(t *testing.T) {
	m, _ := setupManager(t)

	err := m.Restore("../outside.zip")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBackupNotFound)
}

func TestCreateMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "missing.db"), filepath.Join(dir, "backups"))

	_, err := m.Create()
	assert.Error(t, err)
}
