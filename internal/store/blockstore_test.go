package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// S2: appending a raw plaintext block places it at the expected
// SHA3-256-derived path with unchanged content.
func TestBlockStore_PutLocatesBySHA3(t *testing.T) {
	root := t.TempDir()
	bs := NewBlockStore(root)

	id, n, err := bs.Put([]byte("This is a test"))
	require.NoError(t, err)
	require.Equal(t, len("This is a test"), n)
	require.Equal(t, "3c3b66edcfe51f5b15bf372f61e25710ffc1ad3c0e3c60d832b42053a96772cf", id.String())

	dir, file := id.SplitPrefix()
	content, err := os.ReadFile(filepath.Join(root, blocksDirName, dir, file))
	require.NoError(t, err)
	require.Equal(t, "This is a test", string(content))
}

func TestBlockStore_GetRoundtrip(t *testing.T) {
	bs := NewBlockStore(t.TempDir())

	id, _, err := bs.Put([]byte("roundtrip payload"))
	require.NoError(t, err)

	got, err := bs.Get(id)
	require.NoError(t, err)
	require.Equal(t, "roundtrip payload", string(got))
}

func TestBlockStore_GetMissingReturnsNotFound(t *testing.T) {
	bs := NewBlockStore(t.TempDir())

	var missing [32]byte
	_, err := bs.Get(missing)
	require.ErrorIs(t, err, ErrBlockNotFound)
}

func TestBlockStore_PutIdempotent(t *testing.T) {
	bs := NewBlockStore(t.TempDir())

	id1, _, err := bs.Put([]byte("same bytes"))
	require.NoError(t, err)
	id2, _, err := bs.Put([]byte("same bytes"))
	require.NoError(t, err)

	require.Equal(t, id1, id2)
}
