package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/service"
	"github.com/DerNamenlose/backrub/internal/store"
)

func TestExitCode_Success(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}

func TestExitCode_BadConfig(t *testing.T) {
	assert.Equal(t, ExitBadConfig, ExitCode(ErrBadConfig))
}

func TestExitCode_RepositoryErrors(t *testing.T) {
	assert.Equal(t, ExitRepository, ExitCode(store.ErrAlreadyInitialized))
	assert.Equal(t, ExitRepository, ExitCode(store.ErrNotARepository))
	assert.Equal(t, ExitRepository, ExitCode(store.ErrInstanceNotFound))
}

func TestExitCode_AuthErrors(t *testing.T) {
	assert.Equal(t, ExitAuth, ExitCode(store.ErrWrongPasswordOrCorrupt))
	assert.Equal(t, ExitAuth, ExitCode(crypto.ErrKeyDerivation))
}

func TestExitCode_Incomplete(t *testing.T) {
	assert.Equal(t, ExitIncomplete, ExitCode(service.ErrRestoreIncomplete))
}

func TestExitCode_Generic(t *testing.T) {
	assert.Equal(t, ExitGeneric, ExitCode(assertUnknownErr))
}

var assertUnknownErr = assertErr("boom")

type assertErr string

func (e assertErr) Error() string { return string(e) }
