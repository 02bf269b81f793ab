// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/logger"
	"github.com/DerNamenlose/backrub/internal/prompt"
	"github.com/DerNamenlose/backrub/internal/store"
	"github.com/DerNamenlose/backrub/models"
)

// ShowArgs are the parsed flags for the show subcommand.
type ShowArgs struct {
	RepoPath string
	Instance string
	Contents bool
}

// ParseShowArgs parses the show subcommand's flags.
//
// Flags:
//
//	-instance  name of the backup instance to show (required)
//	-contents  also print every entry in the instance, one per line
//
// The remaining positional argument is the repository path.
func ParseShowArgs(args []string) (ShowArgs, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)

	var instance string
	var contents bool
	fs.StringVar(&instance, "instance", "", "Name of the backup instance to show")
	fs.BoolVar(&contents, "contents", false, "Also print every entry in the instance")

	if err := fs.Parse(args); err != nil {
		return ShowArgs{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if instance == "" {
		return ShowArgs{}, fmt.Errorf("%w: show requires -instance", ErrBadConfig)
	}
	if fs.NArg() != 1 {
		return ShowArgs{}, fmt.Errorf("%w: show requires exactly one repository path argument", ErrBadConfig)
	}

	return ShowArgs{RepoPath: fs.Arg(0), Instance: instance, Contents: contents}, nil
}

// RunShow opens the repository, prints the named instance's metadata to w,
// and, if requested, every entry it contains alongside its type.
func RunShow(args ShowArgs, log *logger.Logger, w io.Writer) error {
	eng := crypto.NewEngine()
	repo := store.OpenRepository(args.RepoPath, eng)

	password, err := prompt.ReadKey("Repository password:")
	if err != nil {
		return err
	}
	if err := repo.Keys.Open(string(password)); err != nil {
		return err
	}

	inst, err := repo.Instances.Open(args.Instance)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "-----\nname: %s\ntime: %s\nentry list: %s\n-----\n",
		inst.Name, time.Unix(inst.Time, 0).Format(time.RFC3339), inst.EntryListId)

	if !args.Contents {
		return nil
	}

	keyset := repo.Keys.Keyset()
	entryListRaw, err := repo.Blocks.Get(inst.EntryListId)
	if err != nil {
		return err
	}
	entryListPlain, err := eng.DecodeKeyed(entryListRaw, keyset)
	if err != nil {
		return err
	}

	var list models.EntryList
	if err := msgpack.Unmarshal(entryListPlain, &list); err != nil {
		return fmt.Errorf("unmarshal entry list: %w", err)
	}

	for _, entry := range list.Entries {
		fmt.Fprintf(w, "%s %s\n", formatEntryKind(entry), entry.Name)
	}
	return nil
}

// formatEntryKind renders an entry's type the way original_source's show
// command does: File(size), Dir, or Link -> target.
func formatEntryKind(entry models.BackupEntry) string {
	switch entry.Type {
	case models.EntryTypeFile:
		return fmt.Sprintf("File(%d)", entry.Meta.Size)
	case models.EntryTypeLink:
		target := entry.Meta.Target
		if entry.LinkMeta != nil {
			target = entry.LinkMeta.Target
		}
		return fmt.Sprintf("Link -> %s", target)
	default:
		return "Dir"
	}
}
