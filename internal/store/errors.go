package store

import "errors"

// Sentinel errors returned by the repository layer. Callers should use
// errors.Is to match against these values.
var (
	// ErrAlreadyInitialized is returned by Init when the target directory
	// already holds a repository.
	ErrAlreadyInitialized = errors.New("repository already initialized")

	// ErrNotARepository is returned when a directory is opened that does
	// not contain a valid "backrub" metadata file.
	ErrNotARepository = errors.New("not a repository")

	// ErrUnsupportedVersion is returned when RepositoryMeta.Version does
	// not match the version this implementation understands.
	ErrUnsupportedVersion = errors.New("unsupported repository version")

	// ErrWrongPasswordOrCorrupt is returned by Open when any key file
	// under keys/ fails to decrypt with the derived MasterKey.
	ErrWrongPasswordOrCorrupt = errors.New("wrong password or corrupt key material")

	// ErrBlockNotFound is returned by the block store when the requested
	// BlockId has no corresponding file on disk.
	ErrBlockNotFound = errors.New("block not found")

	// ErrInstanceNotFound is returned when the named instance file does
	// not exist.
	ErrInstanceNotFound = errors.New("instance not found")

	// ErrNoKeysLoaded is returned when a repository has no DEKs in its
	// keyset, so no current key can be selected.
	ErrNoKeysLoaded = errors.New("no data encryption keys loaded")
)
