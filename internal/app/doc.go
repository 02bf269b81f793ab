// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the backrub subcommands (init, create, instances, show,
// restore) to their flag sets and to the internal/store, internal/service,
// internal/crypto, internal/cache, internal/adapter, and internal/prompt
// collaborators.
//
// Each subcommand has a Parse*Args function that turns the raw arguments
// following the subcommand name into a *Args struct, and a Run* entry point
// taking that struct plus a *logger.Logger.
// Entry points return a plain Go error; cmd/backrub maps it to a process
// exit code via [ExitCode].
package app
