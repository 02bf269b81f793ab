package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/models"
)

// S1: init creates the expected repository layout.
func TestKeyManager_InitCreatesLayout(t *testing.T) {
	root := t.TempDir()
	km := NewKeyManager(root, crypto.NewEngine())

	require.NoError(t, km.Init("MyTestKey"))

	for _, dir := range []string{"blocks", "instances", "keys"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	metaInfo, err := os.Stat(filepath.Join(root, metaFileName))
	require.NoError(t, err)
	require.False(t, metaInfo.IsDir())

	keyFiles, err := os.ReadDir(filepath.Join(root, "keys"))
	require.NoError(t, err)
	require.Len(t, keyFiles, 1)
}

func TestKeyManager_InitTwiceFails(t *testing.T) {
	root := t.TempDir()
	km := NewKeyManager(root, crypto.NewEngine())
	require.NoError(t, km.Init("password"))

	km2 := NewKeyManager(root, crypto.NewEngine())
	require.ErrorIs(t, km2.Init("password"), ErrAlreadyInitialized)
}

// S7: re-opening with the same password recovers exactly the key generated
// at init.
func TestKeyManager_OpenRecoversOriginalKey(t *testing.T) {
	root := t.TempDir()
	eng := crypto.NewEngine()

	km := NewKeyManager(root, eng)
	require.NoError(t, km.Init("correct password"))
	idx, dek, err := km.CurrentKey()
	require.NoError(t, err)

	reopened := NewKeyManager(root, eng)
	require.NoError(t, reopened.Open("correct password"))

	keyset := reopened.Keyset()
	require.Len(t, keyset, 1)
	require.Contains(t, keyset, idx)
	require.Equal(t, dek.Value, keyset[idx].Value)
}

// S6: opening with the wrong password fails and loads no keys.
func TestKeyManager_OpenWrongPasswordFails(t *testing.T) {
	root := t.TempDir()
	eng := crypto.NewEngine()

	km := NewKeyManager(root, eng)
	require.NoError(t, km.Init("P1"))

	reopened := NewKeyManager(root, eng)
	err := reopened.Open("P2")
	require.ErrorIs(t, err, ErrWrongPasswordOrCorrupt)
	require.Empty(t, reopened.Keyset())
}

func TestKeyManager_OpenNonRepositoryFails(t *testing.T) {
	km := NewKeyManager(t.TempDir(), crypto.NewEngine())
	require.ErrorIs(t, km.Open("whatever"), ErrNotARepository)
}

func TestKeyManager_CurrentKeyPicksOldest(t *testing.T) {
	km := &fsKeyManager{
		keyset: models.Keyset{
			10: {CreatedAt: 500},
			20: {CreatedAt: 100},
			30: {CreatedAt: 900},
		},
	}

	idx, dek, err := km.CurrentKey()
	require.NoError(t, err)
	require.Equal(t, uint64(20), idx)
	require.Equal(t, int64(100), dek.CreatedAt)
}

func TestKeyManager_CurrentKeyNoneLoaded(t *testing.T) {
	km := &fsKeyManager{keyset: models.Keyset{}}
	_, _, err := km.CurrentKey()
	require.ErrorIs(t, err, ErrNoKeysLoaded)
}
