// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package filter compiles the regex exclude/include lists accepted by the
// create and restore commands into path predicates the pipelines can test
// each entry against.
package filter

import (
	"fmt"
	"regexp"
)

// PathFilter reports whether a relative path should be kept.
type PathFilter func(relativePath string) bool

// Compile builds a [PathFilter] from a list of regular expressions: the
// returned filter matches a path when ANY of the expressions matches it.
// Used both for create's exclude list (a match means "drop this entry") and
// restore's include list (a match means "keep this entry"); the caller
// decides which meaning applies. Returns BadConfig-flavored errors wrapped
// with the offending pattern if any expression fails to compile.
func Compile(patterns []string) (PathFilter, error) {
	if len(patterns) == 0 {
		return func(string) bool { return false }, nil
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile filter pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}

	return func(relativePath string) bool {
		for _, re := range compiled {
			if re.MatchString(relativePath) {
				return true
			}
		}
		return false
	}, nil
}
