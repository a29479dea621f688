package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileCopiesStoreAside(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "erp.db")
	payload := []byte("not really a database, but bytes are bytes")
	require.NoError(t, os.WriteFile(src, payload, 0o644))

	result, err := File(src, filepath.Join(dir, "backups"))
	require.NoError(t, err)
	require.False(t, result.Skipped)
	require.EqualValues(t, len(payload), result.Bytes)

	copied, err := os.ReadFile(result.Destination)
	require.NoError(t, err)
	require.Equal(t, payload, copied)

	// the source is untouched; destruction is the caller's decision
	original, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Equal(t, payload, original)
}

func TestFileMissingSourceIsSkipped(t *testing.T) {
	dir := t.TempDir()

	result, err := File(filepath.Join(dir, "absent.db"), filepath.Join(dir, "backups"))
	require.NoError(t, err)
	require.True(t, result.Skipped)
	require.Empty(t, result.Destination)
}

func TestFileUnwritableDestinationFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "erp.db")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	// a file where the backup dir should be
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0o644))

	_, err := File(src, blocked)
	require.Error(t, err)
}
