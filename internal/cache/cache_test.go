package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DerNamenlose/backrub/models"
)

// S4: dedup cache put/get roundtrip and miss behavior.
func TestCache_PutGetRoundtripAndMiss(t *testing.T) {
	c := New(t.TempDir(), "repo-id")
	require.NoError(t, c.Ensure())

	var id models.BlockId
	for i := range id {
		id[i] = byte(0x01 + i)
	}

	require.NoError(t, c.Put([]byte("abcdefg"), id))

	got, err := c.Get([]byte("abcdefg"))
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = c.Get([]byte("zyxwvu"))
	require.ErrorIs(t, err, ErrMiss)
}

func TestCache_NamespacedByRepoID(t *testing.T) {
	root := t.TempDir()
	a := New(root, "repo-a")
	b := New(root, "repo-b")
	require.NoError(t, a.Ensure())
	require.NoError(t, b.Ensure())

	var id models.BlockId
	id[0] = 0xAA

	require.NoError(t, a.Put([]byte("same-fingerprint"), id))

	_, err := b.Get([]byte("same-fingerprint"))
	require.ErrorIs(t, err, ErrMiss)
}

func TestCache_PutOverwrites(t *testing.T) {
	c := New(t.TempDir(), "repo-id")
	require.NoError(t, c.Ensure())

	var id1, id2 models.BlockId
	id1[0], id2[0] = 0x01, 0x02

	require.NoError(t, c.Put([]byte("key"), id1))
	require.NoError(t, c.Put([]byte("key"), id2))

	got, err := c.Get([]byte("key"))
	require.NoError(t, err)
	require.Equal(t, id2, got)
}
