package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DerNamenlose/backrub/internal/config"
	"github.com/DerNamenlose/backrub/internal/logger"
)

func TestParseCreateArgs_RequiresInstanceAndSources(t *testing.T) {
	_, err := ParseCreateArgs([]string{"/tmp/repo"})
	require.ErrorIs(t, err, ErrBadConfig)

	_, err = ParseCreateArgs([]string{"-instance", "nightly", "/tmp/repo"})
	require.ErrorIs(t, err, ErrBadConfig)
}

func TestParseCreateArgs_OK(t *testing.T) {
	args, err := ParseCreateArgs([]string{"-instance", "nightly", "-exclude", `\.tmp$`, "/tmp/repo", "/tmp/src"})
	require.NoError(t, err)
	assert.Equal(t, "nightly", args.Instance)
	assert.Equal(t, "/tmp/repo", args.RepoPath)
	assert.Equal(t, []string{"/tmp/src"}, args.SourcePaths)
	assert.Equal(t, []string{`\.tmp$`}, args.Excludes)
}

func TestParseRestoreArgs_RequiresInstance(t *testing.T) {
	_, err := ParseRestoreArgs([]string{"/tmp/repo", "/tmp/out"})
	require.ErrorIs(t, err, ErrBadConfig)
}

func TestParseShowArgs_RequiresInstance(t *testing.T) {
	_, err := ParseShowArgs([]string{"/tmp/repo"})
	require.ErrorIs(t, err, ErrBadConfig)
}

// End-to-end: init, create, instances, show --contents, restore, exercised
// entirely through the app package's Run* entry points.
func TestEndToEnd_InitCreateShowRestore(t *testing.T) {
	t.Setenv("BACKRUB_KEY", "correct horse battery staple")
	log := logger.Nop()

	repoPath := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, RunInit(InitArgs{RepoPath: repoPath}, log))

	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "hello.txt"), []byte("hello world"), 0o644))

	cfg := &config.GlobalConfig{CacheRoot: t.TempDir()}
	createArgs := CreateArgs{RepoPath: repoPath, SourcePaths: []string{source}, Instance: "snap-1"}
	require.NoError(t, RunCreate(createArgs, cfg, log))

	var instancesOut bytes.Buffer
	require.NoError(t, RunInstances(InstancesArgs{RepoPath: repoPath}, log, &instancesOut))
	assert.Contains(t, instancesOut.String(), "snap-1")

	var showOut bytes.Buffer
	showArgs := ShowArgs{RepoPath: repoPath, Instance: "snap-1", Contents: true}
	require.NoError(t, RunShow(showArgs, log, &showOut))
	assert.Contains(t, showOut.String(), "snap-1")
	assert.Contains(t, showOut.String(), "File(11) hello.txt")

	target := t.TempDir()
	restoreArgs := RestoreArgs{RepoPath: repoPath, TargetPath: target, Instance: "snap-1"}
	require.NoError(t, RunRestore(restoreArgs, log))

	restored, err := os.ReadFile(filepath.Join(target, "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(restored))
}
