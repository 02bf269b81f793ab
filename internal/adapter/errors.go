// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors produced by the platform metadata adapter. Callers should
// use errors.Is to distinguish them.
var (
	// ErrUnsupportedFileType is returned by GetMeta when a directory entry
	// is neither a regular file, a directory, nor a symlink.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
