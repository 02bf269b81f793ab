// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/logger"
	"github.com/DerNamenlose/backrub/internal/prompt"
	"github.com/DerNamenlose/backrub/internal/store"
)

// InstancesArgs are the parsed flags for the instances subcommand.
type InstancesArgs struct {
	RepoPath string
}

// ParseInstancesArgs parses the instances subcommand's flags: just the
// repository path, given positionally.
func ParseInstancesArgs(args []string) (InstancesArgs, error) {
	fs := flag.NewFlagSet("instances", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return InstancesArgs{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if fs.NArg() != 1 {
		return InstancesArgs{}, fmt.Errorf("%w: instances requires exactly one repository path argument", ErrBadConfig)
	}
	return InstancesArgs{RepoPath: fs.Arg(0)}, nil
}

// RunInstances opens the repository and prints every instance's name and
// creation time to w, in the order [store.InstanceStore.List] returns them
// (filename order, as os.ReadDir returns them — this command does not impose
// a sort of its own).
func RunInstances(args InstancesArgs, log *logger.Logger, w io.Writer) error {
	eng := crypto.NewEngine()
	repo := store.OpenRepository(args.RepoPath, eng)

	password, err := prompt.ReadKey("Repository password:")
	if err != nil {
		return err
	}
	if err := repo.Keys.Open(string(password)); err != nil {
		return err
	}

	instances, err := repo.Instances.List()
	if err != nil {
		return err
	}

	for _, inst := range instances {
		fmt.Fprintf(w, "%s\t%s\n", inst.Name, time.Unix(inst.Time, 0).Format(time.RFC3339))
	}
	return nil
}
