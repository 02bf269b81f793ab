// Package store implements the on-disk repository: the content-addressed
// block store, the key manager, and the snapshot (instance) store, plus the
// Repository facade that wires them together over a shared root directory.
package store

import "github.com/DerNamenlose/backrub/models"

// BlockStore provides content-addressed storage of opaque ciphertext
// blocks under a repository's blocks/ directory. It never interprets,
// encrypts, or decrypts the bytes it is given.
type BlockStore interface {
	// Put computes id = SHA3-256(data), writes data to
	// blocks/<xx>/<yy...> (creating the fan-out directory if needed, and
	// overwriting an existing file at that path), and returns the id and
	// the number of bytes written.
	Put(data []byte) (models.BlockId, int, error)

	// Get reads and returns the full contents of the block identified by
	// id. Returns ErrBlockNotFound if no such block exists.
	Get(id models.BlockId) ([]byte, error)
}

// KeyManager owns the repository's MasterKey derivation and its set of
// data-encryption keys.
type KeyManager interface {
	// Init creates the repository's root directories, calibrates and
	// persists RepositoryMeta, derives the MasterKey, and generates and
	// persists the first DataEncryptionKey. Returns ErrAlreadyInitialized
	// if the root already holds a repository.
	Init(password string) error

	// Open loads RepositoryMeta, derives the MasterKey from password, and
	// decrypts every key file under keys/ into the in-memory keyset.
	// Returns ErrNotARepository if root holds no repository,
	// ErrUnsupportedVersion if the metadata version is not understood, or
	// ErrWrongPasswordOrCorrupt if any key fails to decrypt.
	Open(password string) error

	// CurrentKey returns the key index and DEK selected as current: the
	// loaded DEK with the smallest CreatedAt. Returns ErrNoKeysLoaded if
	// the keyset is empty.
	CurrentKey() (uint64, models.DataEncryptionKey, error)

	// Keyset returns the full set of loaded data-encryption keys.
	Keyset() models.Keyset

	// Meta returns the repository metadata loaded by Open or written by
	// Init.
	Meta() models.RepositoryMeta
}

// InstanceStore creates, lists, and opens named backup instances under a
// repository's instances/ directory.
type InstanceStore interface {
	// Commit serializes inst and writes it to instances/<inst.Name>,
	// overwriting any instance already using that name.
	Commit(inst models.BackupInstance) error

	// List enumerates every file under instances/ and deserializes it.
	// Entries that fail to deserialize are silently skipped so that one
	// corrupt instance cannot hide the others.
	List() ([]models.BackupInstance, error)

	// Open deserializes the named instance. Returns ErrInstanceNotFound
	// if no such file exists.
	Open(name string) (models.BackupInstance, error)
}
