// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "flag"

// ParseFlags parses the global persistent flags that precede the subcommand
// name (backrub -log-level=debug create ...), returning a [GlobalConfig]
// populated from whichever flags were actually passed.
//
// Subcommand-specific flags (repository path, source paths, instance name,
// excludes/includes, target path) are parsed separately by the app package,
// once the subcommand is known.
//
// Flags:
//
//	-log-level  zerolog severity ("debug", "info", "warn", "error")
//	-cache      dedup cache root directory
func ParseFlags(args []string) (*GlobalConfig, error) {
	cfg, _, err := SplitArgs(args)
	return cfg, err
}

// SplitArgs parses the leading global flags out of args and returns both
// the resulting [GlobalConfig] and everything from the first non-flag
// argument (the subcommand name) on, unparsed.
func SplitArgs(args []string) (*GlobalConfig, []string, error) {
	fs := flag.NewFlagSet("backrub", flag.ContinueOnError)

	var logLevel string
	var cacheRoot string
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cacheRoot, "cache", "", "Dedup cache root directory")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return &GlobalConfig{
		LogLevel:  logLevel,
		CacheRoot: cacheRoot,
	}, fs.Args(), nil
}
