// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command backrub is a deduplicating, content-addressed backup tool. See
// internal/app for the five subcommands it exposes: init, create,
// instances, show, restore.
package main

import (
	"fmt"
	"os"

	"github.com/DerNamenlose/backrub/internal/app"
	"github.com/DerNamenlose/backrub/internal/config"
	"github.com/DerNamenlose/backrub/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, rest, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "backrub:", err)
		return app.ExitBadConfig
	}

	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "backrub: missing subcommand (init, create, instances, show, restore)")
		return app.ExitBadConfig
	}

	command, subArgs := rest[0], rest[1:]
	log := logger.New(command, cfg.LogLevel)

	err = dispatch(command, subArgs, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	return app.ExitCode(err)
}

func dispatch(command string, subArgs []string, cfg *config.GlobalConfig, log *logger.Logger) error {
	switch command {
	case "init":
		args, err := app.ParseInitArgs(subArgs)
		if err != nil {
			return err
		}
		return app.RunInit(args, log)

	case "create":
		args, err := app.ParseCreateArgs(subArgs)
		if err != nil {
			return err
		}
		return app.RunCreate(args, cfg, log)

	case "instances":
		args, err := app.ParseInstancesArgs(subArgs)
		if err != nil {
			return err
		}
		return app.RunInstances(args, log, os.Stdout)

	case "show":
		args, err := app.ParseShowArgs(subArgs)
		if err != nil {
			return err
		}
		return app.RunShow(args, log, os.Stdout)

	case "restore":
		args, err := app.ParseRestoreArgs(subArgs)
		if err != nil {
			return err
		}
		return app.RunRestore(args, log)

	default:
		return fmt.Errorf("%w: unknown subcommand %q", app.ErrBadConfig, command)
	}
}
