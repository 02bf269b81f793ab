package store

import (
	"github.com/DerNamenlose/backrub/internal/crypto"
)

// Repository aggregates the three collaborators that make up an on-disk
// backrub repository, all rooted at the same directory. It is the single
// object the backup and restore pipelines depend on; they reach the block
// store, key manager, and instance store only through it.
type Repository struct {
	Root      string
	Blocks    BlockStore
	Keys      KeyManager
	Instances InstanceStore
}

// OpenRepository wires up a [Repository] rooted at root using eng for
// cryptography. It does not touch disk itself — callers must still call
// Keys.Init or Keys.Open before using Blocks or Instances.
func OpenRepository(root string, eng crypto.Engine) *Repository {
	return &Repository{
		Root:      root,
		Blocks:    NewBlockStore(root),
		Keys:      NewKeyManager(root, eng),
		Instances: NewInstanceStore(root),
	}
}
