// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/DerNamenlose/backrub/internal/adapter"
	"github.com/DerNamenlose/backrub/internal/cache"
	"github.com/DerNamenlose/backrub/internal/config"
	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/filter"
	"github.com/DerNamenlose/backrub/internal/logger"
	"github.com/DerNamenlose/backrub/internal/prompt"
	"github.com/DerNamenlose/backrub/internal/service"
	"github.com/DerNamenlose/backrub/internal/store"
)

// CreateArgs are the parsed flags for the create subcommand.
type CreateArgs struct {
	RepoPath    string
	SourcePaths []string
	Instance    string
	Excludes    []string
	ExcludeFile string
}

// ParseCreateArgs parses the create subcommand's flags.
//
// Flags:
//
//	-instance   name to give the resulting backup instance (required)
//	-exclude    regex to exclude from the backup; may be given multiple times
//	-exclude-file  path to a file of newline-separated exclude regexes
//
// Remaining positional arguments are the repository path followed by one or
// more source paths.
func ParseCreateArgs(args []string) (CreateArgs, error) {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)

	var instance string
	var excludeFile string
	var excludes stringListFlag
	fs.StringVar(&instance, "instance", "", "Name of the backup instance to create")
	fs.StringVar(&excludeFile, "exclude-file", "", "Path to a file of newline-separated exclude regexes")
	fs.Var(&excludes, "exclude", "Regex of paths to exclude (repeatable)")

	if err := fs.Parse(args); err != nil {
		return CreateArgs{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if instance == "" {
		return CreateArgs{}, fmt.Errorf("%w: create requires -instance", ErrBadConfig)
	}
	if fs.NArg() < 2 {
		return CreateArgs{}, fmt.Errorf("%w: create requires a repository path and at least one source path", ErrBadConfig)
	}

	return CreateArgs{
		RepoPath:    fs.Arg(0),
		SourcePaths: fs.Args()[1:],
		Instance:    instance,
		Excludes:    excludes,
		ExcludeFile: excludeFile,
	}, nil
}

// RunCreate opens the repository, derives the exclude filter, and runs the
// backup pipeline over the given source paths.
func RunCreate(args CreateArgs, cfg *config.GlobalConfig, log *logger.Logger) error {
	excludePatterns, err := loadPatterns(args.Excludes, args.ExcludeFile)
	if err != nil {
		return err
	}
	exclude, err := filter.Compile(excludePatterns)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadConfig, err)
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

	c := cache.New(cfg.CacheRoot, repo.Keys.Meta().Id)
	backup := service.NewBackupService(repo, c, eng, adapter.New(), log)

	if err := backup.Run(args.SourcePaths, args.Instance, exclude); err != nil {
		return err
	}

	log.Info().Str("instance", args.Instance).Msg("backup instance created")
	return nil
}

// loadPatterns combines inline -exclude patterns with patterns read from an
// -exclude-file, one per non-blank line.
func loadPatterns(inline []string, filePath string) ([]string, error) {
	if filePath == "" {
		return inline, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read exclude file: %w", err)
	}

	patterns := append([]string(nil), inline...)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// stringListFlag collects repeated occurrences of a flag into a slice.
type stringListFlag []string

func (f *stringListFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *stringListFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}
