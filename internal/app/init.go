// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"flag"
	"fmt"
	"os"

	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/logger"
	"github.com/DerNamenlose/backrub/internal/prompt"
	"github.com/DerNamenlose/backrub/internal/store"
)

// InitArgs are the parsed flags for the init subcommand.
type InitArgs struct {
	RepoPath string
}

// ParseInitArgs parses the init subcommand's flags: just the repository
// path, given positionally.
func ParseInitArgs(args []string) (InitArgs, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return InitArgs{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if fs.NArg() != 1 {
		return InitArgs{}, fmt.Errorf("%w: init requires exactly one repository path argument", ErrBadConfig)
	}
	return InitArgs{RepoPath: fs.Arg(0)}, nil
}

// RunInit creates and verifies the repository layout at the given path,
// prompting for the repository password and writing the initial DEK.
func RunInit(args InitArgs, log *logger.Logger) error {
	if err := os.MkdirAll(args.RepoPath, 0o755); err != nil {
		return fmt.Errorf("create repository directory: %w", err)
	}

	password, err := prompt.ReadKey("Repository password:")
	if err != nil {
		return err
	}

	eng := crypto.NewEngine()
	keys := store.NewKeyManager(args.RepoPath, eng)
	if err := keys.Init(string(password)); err != nil {
		return err
	}

	log.Info().Str("repository", args.RepoPath).Msg("repository initialized")
	return nil
}
