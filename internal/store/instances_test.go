package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DerNamenlose/backrub/models"
)

func newInstanceStoreDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, instancesDirName), 0o755))
	return root
}

func TestInstanceStore_CommitAndOpen(t *testing.T) {
	root := newInstanceStoreDir(t)
	is := NewInstanceStore(root)

	inst := models.BackupInstance{Name: "nightly", Time: 42, EntryListId: models.NewBlockId([]byte("x"))}
	require.NoError(t, is.Commit(inst))

	got, err := is.Open("nightly")
	require.NoError(t, err)
	require.Equal(t, inst, got)
}

func TestInstanceStore_CommitOverwritesSameName(t *testing.T) {
	root := newInstanceStoreDir(t)
	is := NewInstanceStore(root)

	require.NoError(t, is.Commit(models.BackupInstance{Name: "nightly", Time: 1}))
	require.NoError(t, is.Commit(models.BackupInstance{Name: "nightly", Time: 2}))

	got, err := is.Open("nightly")
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Time)

	entries, err := os.ReadDir(filepath.Join(root, instancesDirName))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestInstanceStore_OpenMissing(t *testing.T) {
	is := NewInstanceStore(newInstanceStoreDir(t))
	_, err := is.Open("nope")
	require.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestInstanceStore_ListSkipsCorrupt(t *testing.T) {
	root := newInstanceStoreDir(t)
	is := NewInstanceStore(root)

	require.NoError(t, is.Commit(models.BackupInstance{Name: "good-a", Time: 1}))
	require.NoError(t, is.Commit(models.BackupInstance{Name: "good-b", Time: 2}))
	require.NoError(t, os.WriteFile(filepath.Join(root, instancesDirName, "corrupt"), []byte("not msgpack"), 0o644))

	list, err := is.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
}
