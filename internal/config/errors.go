// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// ErrInvalidLogLevel is returned by [GlobalConfig.validate] when LogLevel is
// set to a string zerolog cannot parse as a severity.
var ErrInvalidLogLevel = errors.New("invalid log level")
