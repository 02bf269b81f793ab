// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides the small set of ambient settings shared by every
// backrub subcommand: the log level and the dedup cache root.
//
// Everything else — repository path, source paths, instance name, excludes —
// is specific to a single subcommand and is parsed by the app package's
// per-command flag sets instead of living here.
//
// Settings are assembled from two sources, in priority order (later wins for
// non-zero fields):
//  1. Environment variables — loaded via [withEnv]
//  2. Command-line flags     — loaded via [withFlags]
//
// The entry point is [GetGlobalConfig], which chains both sources, applies
// defaults, and validates the result.
package config
