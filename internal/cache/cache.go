// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache implements the persistent, cross-run dedup cache: a mapping
// from a content fingerprint to the BlockId previously produced from it, so
// that an unchanged file or chunk never gets re-encrypted or re-written to
// the repository. The cache is host-local state, namespaced per repository
// so that backups of different repositories sharing a cache root never
// collide.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/sha3"

	"github.com/DerNamenlose/backrub/models"
)

// ErrMiss is returned by Get when no mapping exists for the given
// fingerprint.
var ErrMiss = errors.New("cache miss")

// Cache maps a content fingerprint to the BlockId previously stored for it.
type Cache interface {
	// Ensure creates the cache's directory hierarchy if it does not
	// already exist.
	Ensure() error

	// Put records that fingerprint produced id, overwriting any prior
	// mapping for the same fingerprint.
	Put(fingerprint []byte, id models.BlockId) error

	// Get looks up the BlockId previously stored for fingerprint. Returns
	// ErrMiss if no mapping exists.
	Get(fingerprint []byte) (models.BlockId, error)
}

// fsCache is the default [Cache], storing one file per fingerprint at
// <cacheRoot>/<repoId>/<hex(SHA3-256(fingerprint))>.
type fsCache struct {
	dir string
}

// New constructs a [Cache] namespaced under cacheRoot by repoId.
func New(cacheRoot, repoId string) Cache {
	return &fsCache{dir: filepath.Join(cacheRoot, repoId)}
}

// Ensure implements [Cache].
func (c *fsCache) Ensure() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	return nil
}

// Put implements [Cache].
func (c *fsCache) Put(fingerprint []byte, id models.BlockId) error {
	data, err := msgpack.Marshal(&id)
	if err != nil {
		return fmt.Errorf("marshal cached block id: %w", err)
	}

	if err := os.WriteFile(c.path(fingerprint), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Get implements [Cache].
func (c *fsCache) Get(fingerprint []byte) (models.BlockId, error) {
	data, err := os.ReadFile(c.path(fingerprint))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.BlockId{}, ErrMiss
		}
		return models.BlockId{}, fmt.Errorf("read cache entry: %w", err)
	}

	var id models.BlockId
	if err := msgpack.Unmarshal(data, &id); err != nil {
		return models.BlockId{}, fmt.Errorf("unmarshal cache entry: %w", err)
	}
	return id, nil
}

func (c *fsCache) path(fingerprint []byte) string {
	sum := sha3.Sum256(fingerprint)
	return filepath.Join(c.dir, fmt.Sprintf("%x", sum))
}

// FileFingerprint computes the per-file fingerprint used to memoize an
// entire file's BackupObject BlockId against its (relative path, metadata)
// tuple, so an unchanged file never gets re-chunked.
func FileFingerprint(relativePath string, meta models.UnixFsMeta) ([]byte, error) {
	pathBytes, err := msgpack.Marshal(relativePath)
	if err != nil {
		return nil, fmt.Errorf("marshal path: %w", err)
	}
	metaBytes, err := msgpack.Marshal(&meta)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return append(pathBytes, metaBytes...), nil
}
