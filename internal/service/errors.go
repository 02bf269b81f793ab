// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the backup and restore pipelines (C7/C8): the
// orchestration that walks a source tree or an entry list and drives the
// crypto engine, block store, dedup cache, and metadata adapter underneath
// it.
package service

import "errors"

// Sentinel errors produced by the pipelines. A subset is classified as
// warnings by IsWarning: non-fatal during backup, logged and skipped
// instead of aborting the run.
var (
	// ErrUnsupportedObjectType is a warning: a source entry was neither a
	// file, a directory, nor a symlink.
	ErrUnsupportedObjectType = errors.New("unsupported object type")

	// ErrInvalidPath is a warning: an entry's path could not be
	// represented as a string.
	ErrInvalidPath = errors.New("invalid path")

	// ErrRestoreIncomplete is returned by Restore when one or more entries
	// failed to restore; the error message and logs list the failures.
	ErrRestoreIncomplete = errors.New("restore unsuccessful")

	// ErrSymlinkExists is a per-entry restore failure: the target path for
	// a Link entry already exists.
	ErrSymlinkExists = errors.New("symlink target already exists")
)

// IsWarning reports whether err is one the backup pipeline should log and
// continue past, rather than abort the run for.
func IsWarning(err error) bool {
	return errors.Is(err, ErrUnsupportedObjectType) || errors.Is(err, ErrInvalidPath)
}
