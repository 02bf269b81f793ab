// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
)

// GlobalConfig holds the settings that apply regardless of which backrub
// subcommand is running.
//
// Struct tags:
//   - env — environment variable name consulted by caarlos0/env.
type GlobalConfig struct {
	// LogLevel is the minimum zerolog severity to emit ("debug", "info",
	// "warn", "error"). Values zerolog cannot parse are rejected by
	// validation with ErrInvalidLogLevel.
	// Env: BACKRUB_LOG
	LogLevel string `env:"BACKRUB_LOG" envDefault:"info"`

	// CacheRoot is the directory under which the per-repository dedup
	// cache is stored. Empty means "use the user cache directory",
	// resolved by [GetGlobalConfig].
	// Env: BACKRUB_CACHE
	CacheRoot string `env:"BACKRUB_CACHE"`
}

// GetGlobalConfig loads, merges, defaults, and validates the global
// configuration from all available sources in priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//
// Returns a fully populated *GlobalConfig or an error if any source fails to
// load or the final config fails validation.
func GetGlobalConfig(args []string) (*GlobalConfig, error) {
	cfg, _, err := Parse(args)
	return cfg, err
}

// Parse is [GetGlobalConfig] plus the subcommand and its own arguments:
// everything in args from the first non-flag token on, exactly as left by
// the flag set's own parsing (see [SplitArgs]).
func Parse(args []string) (*GlobalConfig, []string, error) {
	b := newConfigBuilder().withEnv().withFlags(args)
	cfg, err := b.build()
	return cfg, b.rest, err
}

// defaultCacheRoot returns the backrub dedup cache directory under the
// user's standard cache directory, falling back to a relative ".backrub-cache"
// if the OS cache directory cannot be determined (e.g. unset $HOME).
func defaultCacheRoot() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".backrub-cache"
	}
	return filepath.Join(base, "backrub")
}
