// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// applyDefaults fills in zero-valued fields with their production defaults.
// Called after merging but before validate, so flags and env still win over
// the defaults here.
func (cfg *GlobalConfig) applyDefaults() {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.CacheRoot == "" {
		cfg.CacheRoot = defaultCacheRoot()
	}
}

// validate checks that the final merged [GlobalConfig] satisfies all
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *GlobalConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}
	return nil
}
