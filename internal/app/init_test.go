package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DerNamenlose/backrub/internal/logger"
)

func TestParseInitArgs_RequiresOnePath(t *testing.T) {
	_, err := ParseInitArgs(nil)
	require.ErrorIs(t, err, ErrBadConfig)
}

func TestParseInitArgs_OK(t *testing.T) {
	args, err := ParseInitArgs([]string{"/tmp/repo"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/repo", args.RepoPath)
}

// S1: init creates the repository layout.
func TestRunInit_CreatesLayout(t *testing.T) {
	t.Setenv("BACKRUB_KEY", "MyTestKey")
	repoPath := filepath.Join(t.TempDir(), "repo")

	err := RunInit(InitArgs{RepoPath: repoPath}, logger.Nop())
	require.NoError(t, err)

	assertIsFile(t, filepath.Join(repoPath, "backrub"))
	assertIsDir(t, filepath.Join(repoPath, "blocks"))
	assertIsDir(t, filepath.Join(repoPath, "instances"))
	assertIsDir(t, filepath.Join(repoPath, "keys"))

	keyFiles, err := os.ReadDir(filepath.Join(repoPath, "keys"))
	require.NoError(t, err)
	assert.Len(t, keyFiles, 1)
}

func assertIsFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func assertIsDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
