// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the platform metadata adapter: the collaborator
// responsible for reading and applying the POSIX ownership and permission
// bits the repository engine treats as opaque data. It is the only place in
// the module that touches syscall-level stat/chmod/chown.
package adapter

import (
	"fmt"
	"os"
	"syscall"

	"github.com/DerNamenlose/backrub/models"
)

// MetadataAdapter captures and applies POSIX filesystem metadata. The
// engine never interprets Meta fields itself; it only carries them between
// GetMeta at backup time and SetMeta at restore time.
type MetadataAdapter interface {
	// GetMeta captures {uid, gid, mode} for a file or directory via lstat,
	// or just the symlink target for a symlink. Returns
	// ErrUnsupportedFileType for anything else.
	GetMeta(path string) (models.UnixFsMeta, error)

	// SetMeta applies a previously captured Meta to path: chmod and chown
	// for files/dirs. Symlinks are left unchanged, since GetMeta captures
	// only their target. Failures are returned, not silently dropped; the
	// caller decides whether they are fatal to the enclosing entry.
	SetMeta(path string, meta models.UnixFsMeta) error
}

// posixAdapter is the default [MetadataAdapter].
type posixAdapter struct{}

// New constructs the default POSIX [MetadataAdapter].
func New() MetadataAdapter {
	return &posixAdapter{}
}

// GetMeta implements [MetadataAdapter].
func (a *posixAdapter) GetMeta(path string) (models.UnixFsMeta, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return models.UnixFsMeta{}, fmt.Errorf("lstat %q: %w", path, err)
	}

	switch mode := info.Mode(); {
	case mode&os.ModeSymlink != 0:
		target, err := os.Readlink(path)
		if err != nil {
			return models.UnixFsMeta{}, fmt.Errorf("readlink %q: %w", path, err)
		}
		return models.UnixFsMeta{Kind: models.UnixFsMetaSymlink, Target: target}, nil

	case mode.IsDir():
		common, err := commonMeta(info)
		if err != nil {
			return models.UnixFsMeta{}, err
		}
		return models.UnixFsMeta{Kind: models.UnixFsMetaDir, Common: common}, nil

	case mode.IsRegular():
		common, err := commonMeta(info)
		if err != nil {
			return models.UnixFsMeta{}, err
		}
		return models.UnixFsMeta{Kind: models.UnixFsMetaFile, Common: common, Size: info.Size()}, nil

	default:
		return models.UnixFsMeta{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, path)
	}
}

// SetMeta implements [MetadataAdapter].
func (a *posixAdapter) SetMeta(path string, meta models.UnixFsMeta) error {
	switch meta.Kind {
	case models.UnixFsMetaSymlink:
		// GetMeta never captures Common for a symlink (only its target),
		// so there is no ownership to restore here — chmod on a symlink
		// applies to its target on most platforms anyway. Symlink
		// metadata is best-effort by design; skip rather than chown to
		// a zero uid/gid that was never actually observed.
		return nil

	default:
		if err := os.Chmod(path, os.FileMode(meta.Common.Mode)); err != nil {
			return fmt.Errorf("chmod %q: %w", path, err)
		}
		if err := os.Lchown(path, int(meta.Common.Uid), int(meta.Common.Gid)); err != nil {
			return fmt.Errorf("chown %q: %w", path, err)
		}
		return nil
	}
}

func commonMeta(info os.FileInfo) (models.UnixCommonMeta, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return models.UnixCommonMeta{}, fmt.Errorf("unsupported platform: no syscall.Stat_t for %q", info.Name())
	}
	return models.UnixCommonMeta{
		Uid:  stat.Uid,
		Gid:  stat.Gid,
		Mode: uint32(info.Mode().Perm()),
	}, nil
}
