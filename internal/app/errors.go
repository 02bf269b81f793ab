// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"

	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/service"
	"github.com/DerNamenlose/backrub/internal/store"
)

// ErrBadConfig is returned by a subcommand's flag parsing when the flags
// given are structurally invalid (missing required value, invalid regex,
// an unsupported combination of flags).
var ErrBadConfig = errors.New("invalid command configuration")

// Process exit codes. 0 is the implicit success code returned by main when
// a subcommand's Run* function returns a nil error.
const (
	ExitGeneric    = 1
	ExitBadConfig  = 2
	ExitRepository = 3
	ExitAuth       = 4
	ExitIncomplete = 5
)

// ExitCode maps an error returned by a subcommand's Run* function to a
// process exit code, per the repository-wide error taxonomy.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrBadConfig):
		return ExitBadConfig
	case errors.Is(err, store.ErrAlreadyInitialized),
		errors.Is(err, store.ErrNotARepository),
		errors.Is(err, store.ErrUnsupportedVersion),
		errors.Is(err, store.ErrInstanceNotFound),
		errors.Is(err, store.ErrBlockNotFound):
		return ExitRepository
	case errors.Is(err, store.ErrWrongPasswordOrCorrupt),
		errors.Is(err, crypto.ErrKeyDerivation),
		errors.Is(err, crypto.ErrDecryption),
		errors.Is(err, crypto.ErrUnknownKey):
		return ExitAuth
	case errors.Is(err, service.ErrRestoreIncomplete):
		return ExitIncomplete
	default:
		return ExitGeneric
	}
}
