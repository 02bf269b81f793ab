// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"flag"
	"fmt"

	"github.com/DerNamenlose/backrub/internal/adapter"
	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/filter"
	"github.com/DerNamenlose/backrub/internal/logger"
	"github.com/DerNamenlose/backrub/internal/prompt"
	"github.com/DerNamenlose/backrub/internal/service"
	"github.com/DerNamenlose/backrub/internal/store"
)

// RestoreArgs are the parsed flags for the restore subcommand.
type RestoreArgs struct {
	RepoPath   string
	TargetPath string
	Instance   string
	Includes   []string
}

// ParseRestoreArgs parses the restore subcommand's flags.
//
// Flags:
//
//	-instance  name of the backup instance to restore (required)
//	-include   regex of paths to restore; may be given multiple times.
//	           When omitted, every entry is restored.
//
// Remaining positional arguments are the repository path followed by the
// target directory to restore into.
func ParseRestoreArgs(args []string) (RestoreArgs, error) {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)

	var instance string
	var includes stringListFlag
	fs.StringVar(&instance, "instance", "", "Name of the backup instance to restore")
	fs.Var(&includes, "include", "Regex of paths to restore (repeatable)")

	if err := fs.Parse(args); err != nil {
		return RestoreArgs{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if instance == "" {
		return RestoreArgs{}, fmt.Errorf("%w: restore requires -instance", ErrBadConfig)
	}
	if fs.NArg() != 2 {
		return RestoreArgs{}, fmt.Errorf("%w: restore requires a repository path and a target path", ErrBadConfig)
	}

	return RestoreArgs{
		RepoPath:   fs.Arg(0),
		TargetPath: fs.Arg(1),
		Instance:   instance,
		Includes:   includes,
	}, nil
}

// RunRestore opens the repository, derives the include filter, and runs the
// restore pipeline for the named instance into the target path.
func RunRestore(args RestoreArgs, log *logger.Logger) error {
	// A nil filter restores every entry; restore.Run only applies the
	// filter when it is non-nil, so the empty-includes case is left as
	// nil rather than compiling a filter that would reject everything.
	var include filter.PathFilter
	if len(args.Includes) > 0 {
		compiled, err := filter.Compile(args.Includes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadConfig, err)
		}
		include = compiled
	}

	eng := crypto.NewEngine()
	repo := store.OpenRepository(args.RepoPath, eng)

	password, err := prompt.ReadKey("Repository password:")
	if err != nil {
		return err
	}
	if err := repo.Keys.Open(string(password)); err != nil {
		return err
	}

	restore := service.NewRestoreService(repo, eng, adapter.New(), log)
	if err := restore.Run(args.Instance, args.TargetPath, include); err != nil {
		return err
	}

	log.Info().Str("instance", args.Instance).Msg("restore complete")
	return nil
}
