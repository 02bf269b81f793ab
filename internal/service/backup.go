package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/DerNamenlose/backrub/internal/adapter"
	"github.com/DerNamenlose/backrub/internal/cache"
	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/filter"
	"github.com/DerNamenlose/backrub/internal/logger"
	"github.com/DerNamenlose/backrub/internal/store"
	"github.com/DerNamenlose/backrub/internal/walk"
	"github.com/DerNamenlose/backrub/models"
)

// ChunkSize is the fixed size, in bytes, of the pieces a file's contents
// are split into before encryption, bounding memory use regardless of file
// size.
const ChunkSize = 1 << 20 // 1 MiB

// BackupService runs the backup pipeline (C7): walking one or more source
// roots, deduplicating and encrypting their content, and committing the
// result as a named instance.
type BackupService struct {
	Repo    *store.Repository
	Cache   cache.Cache
	Engine  crypto.Engine
	Adapter adapter.MetadataAdapter
	Log     *logger.Logger
}

// NewBackupService constructs a [BackupService] from its collaborators.
func NewBackupService(repo *store.Repository, c cache.Cache, eng crypto.Engine, a adapter.MetadataAdapter, log *logger.Logger) *BackupService {
	return &BackupService{Repo: repo, Cache: c, Engine: eng, Adapter: a, Log: log}
}

// Run executes the backup pipeline over sourceRoots, writing the resulting
// snapshot as instanceName. exclude, if non-nil, drops any entry whose
// relative path matches it.
func (s *BackupService) Run(sourceRoots []string, instanceName string, exclude filter.PathFilter) error {
	if s.Repo.Keys.Meta().Version != models.RepositoryVersion {
		return fmt.Errorf("%w: %d", store.ErrUnsupportedVersion, s.Repo.Keys.Meta().Version)
	}
	if err := s.Cache.Ensure(); err != nil {
		return err
	}

	keyIndex, dek, err := s.Repo.Keys.CurrentKey()
	if err != nil {
		return err
	}

	var entries []models.BackupEntry
	for _, root := range sourceRoots {
		err := walk.Walk(root, func(e walk.Entry) error {
			if exclude != nil && exclude(e.RelPath) {
				return nil
			}

			entry, warn, err := s.backupEntry(e, keyIndex, dek)
			if err != nil {
				if warn {
					s.Log.Warn().Err(err).Str("path", e.RelPath).Msg("skipping entry")
					return nil
				}
				return err
			}
			entries = append(entries, entry)
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk %q: %w", root, err)
		}
	}

	entryListID, err := s.storeEntryList(entries, keyIndex, dek)
	if err != nil {
		return err
	}

	return s.Repo.Instances.Commit(models.BackupInstance{
		Name:        instanceName,
		Time:        time.Now().Unix(),
		EntryListId: entryListID,
	})
}

// backupEntry dispatches a single walked entry to its type-specific
// handling and returns the resulting BackupEntry. warn reports whether a
// non-nil err is a warning (log and skip) rather than fatal.
func (s *BackupService) backupEntry(e walk.Entry, keyIndex uint64, dek models.DataEncryptionKey) (models.BackupEntry, bool, error) {
	meta, err := s.Adapter.GetMeta(e.AbsPath)
	if err != nil {
		if errors.Is(err, adapter.ErrUnsupportedFileType) {
			return models.BackupEntry{}, true, fmt.Errorf("%w: %v", ErrUnsupportedObjectType, err)
		}
		return models.BackupEntry{}, false, err
	}

	switch e.FileType {
	case walk.FileTypeFile:
		blockListID, err := s.backupFile(e, meta, keyIndex, dek)
		if err != nil {
			return models.BackupEntry{}, false, err
		}
		return models.BackupEntry{
			Name:     e.RelPath,
			Type:     models.EntryTypeFile,
			Meta:     meta,
			FileMeta: &models.FileEntryMeta{BlockListId: blockListID},
		}, false, nil

	case walk.FileTypeDir:
		return models.BackupEntry{Name: e.RelPath, Type: models.EntryTypeDir, Meta: meta}, false, nil

	case walk.FileTypeSymlink:
		return models.BackupEntry{
			Name:     e.RelPath,
			Type:     models.EntryTypeLink,
			Meta:     meta,
			LinkMeta: &models.LinkEntryMeta{Target: meta.Target},
		}, false, nil

	default:
		return models.BackupEntry{}, true, fmt.Errorf("%w: %s", ErrUnsupportedObjectType, e.AbsPath)
	}
}

// backupFile implements the File path of §4.7: a per-file cache probe,
// falling back to chunked read/dedup/encrypt on a miss.
func (s *BackupService) backupFile(e walk.Entry, meta models.UnixFsMeta, keyIndex uint64, dek models.DataEncryptionKey) (models.BlockId, error) {
	fingerprint, err := cache.FileFingerprint(e.RelPath, meta)
	if err != nil {
		return models.BlockId{}, err
	}

	if cached, err := s.Cache.Get(fingerprint); err == nil {
		return cached, nil
	}

	blockListID, err := s.chunkAndStore(e.AbsPath, keyIndex, dek)
	if err != nil {
		return models.BlockId{}, err
	}

	if err := s.Cache.Put(fingerprint, blockListID); err != nil {
		return models.BlockId{}, err
	}
	return blockListID, nil
}

// chunkAndStore reads path in ChunkSize pieces, dedups and encrypts each
// one, and stores the resulting BackupObject.
func (s *BackupService) chunkAndStore(path string, keyIndex uint64, dek models.DataEncryptionKey) (models.BlockId, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.BlockId{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	var object models.BackupObject
	buf := make([]byte, ChunkSize)
	for {
		n, readErr := io.ReadFull(f, buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			blockID, err := s.storeChunk(chunk, keyIndex, dek)
			if err != nil {
				return models.BlockId{}, err
			}
			object.Blocks = append(object.Blocks, blockID)
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return models.BlockId{}, fmt.Errorf("read %q: %w", path, readErr)
		}
	}

	return s.storeObject(object, keyIndex, dek)
}

// storeChunk is the per-chunk cache-then-encrypt-then-write step.
func (s *BackupService) storeChunk(chunk []byte, keyIndex uint64, dek models.DataEncryptionKey) (models.BlockId, error) {
	if cached, err := s.Cache.Get(chunk); err == nil {
		return cached, nil
	}

	ciphertext, err := s.Engine.EncodeKeyed(keyIndex, dek.Value, chunk)
	if err != nil {
		return models.BlockId{}, err
	}

	id, _, err := s.Repo.Blocks.Put(ciphertext)
	if err != nil {
		return models.BlockId{}, err
	}

	if err := s.Cache.Put(chunk, id); err != nil {
		return models.BlockId{}, err
	}
	return id, nil
}

func (s *BackupService) storeObject(object models.BackupObject, keyIndex uint64, dek models.DataEncryptionKey) (models.BlockId, error) {
	raw, err := msgpack.Marshal(&object)
	if err != nil {
		return models.BlockId{}, fmt.Errorf("marshal backup object: %w", err)
	}

	ciphertext, err := s.Engine.EncodeKeyed(keyIndex, dek.Value, raw)
	if err != nil {
		return models.BlockId{}, err
	}

	id, _, err := s.Repo.Blocks.Put(ciphertext)
	return id, err
}

func (s *BackupService) storeEntryList(entries []models.BackupEntry, keyIndex uint64, dek models.DataEncryptionKey) (models.BlockId, error) {
	list := models.EntryList{Entries: entries}
	raw, err := msgpack.Marshal(&list)
	if err != nil {
		return models.BlockId{}, fmt.Errorf("marshal entry list: %w", err)
	}

	ciphertext, err := s.Engine.EncodeKeyed(keyIndex, dek.Value, raw)
	if err != nil {
		return models.BlockId{}, err
	}

	id, _, err := s.Repo.Blocks.Put(ciphertext)
	return id, err
}
