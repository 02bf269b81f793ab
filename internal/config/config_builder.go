// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partial [GlobalConfig] values from different
// sources and merges them into a single configuration on [build].
//
// The builder follows the fluent-interface pattern: each with* method appends
// a config source and returns the same *configBuilder so calls can be
// chained. Any error encountered during a with* step is stored in err and
// causes [build] to fail-fast without attempting to merge.
type configBuilder struct {
	// configs holds the ordered list of partial configurations to be merged.
	// Sources appended later take precedence over earlier ones for non-zero
	// fields (mergo.Merge semantics).
	configs []*GlobalConfig

	// rest holds the subcommand and its own arguments, as left over by
	// withFlags' flag-set parsing.
	rest []string

	// err accumulates errors from individual source-loading steps.
	err error
}

// newConfigBuilder creates and returns an empty *configBuilder ready for use.
func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*GlobalConfig, 0, 2),
	}
}

// build merges all accumulated partial configurations into a single
// [GlobalConfig], applies defaults, and validates the result.
//
// Merge order follows the order in which sources were appended: each
// subsequent source overrides any non-zero field set by an earlier one
// (mergo.WithOverride), so sources appended later take priority.
func (b *configBuilder) build() (*GlobalConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	cfg := new(GlobalConfig)
	for _, c := range b.configs {
		if err := mergo.Merge(cfg, c, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}

// withEnv parses environment variables into a [GlobalConfig] via [parseEnv]
// and appends the result to the builder.
func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &GlobalConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

// withFlags parses the global persistent flags (those recognized before the
// subcommand name) via [SplitArgs], appends the resulting [GlobalConfig] to
// the builder, and records the unparsed remainder (the subcommand and its
// own arguments) for [Parse] to return.
func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, rest, err := SplitArgs(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	b.rest = rest
	return b
}
