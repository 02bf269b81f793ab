package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/DerNamenlose/backrub/internal/adapter"
	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/internal/filter"
	"github.com/DerNamenlose/backrub/internal/logger"
	"github.com/DerNamenlose/backrub/internal/store"
	"github.com/DerNamenlose/backrub/models"
)

// RestoreService runs the restore pipeline (C8): resolving a named
// instance's entry list and rematerializing every entry under a target
// root, attempting every entry even if some fail.
type RestoreService struct {
	Repo    *store.Repository
	Engine  crypto.Engine
	Adapter adapter.MetadataAdapter
	Log     *logger.Logger
}

// NewRestoreService constructs a [RestoreService] from its collaborators.
func NewRestoreService(repo *store.Repository, eng crypto.Engine, a adapter.MetadataAdapter, log *logger.Logger) *RestoreService {
	return &RestoreService{Repo: repo, Engine: eng, Adapter: a, Log: log}
}

// Run restores instanceName into targetRoot. include, if non-nil, restores
// only entries whose relative path matches it.
func (s *RestoreService) Run(instanceName, targetRoot string, include filter.PathFilter) error {
	inst, err := s.Repo.Instances.Open(instanceName)
	if err != nil {
		return err
	}

	keyset := s.Repo.Keys.Keyset()

	entryListRaw, err := s.Repo.Blocks.Get(inst.EntryListId)
	if err != nil {
		return err
	}
	entryListPlain, err := s.Engine.DecodeKeyed(entryListRaw, keyset)
	if err != nil {
		return err
	}

	var list models.EntryList
	if err := msgpack.Unmarshal(entryListPlain, &list); err != nil {
		return fmt.Errorf("unmarshal entry list: %w", err)
	}

	var failures []error
	for _, entry := range list.Entries {
		if include != nil && !include(entry.Name) {
			continue
		}

		if err := s.restoreEntry(targetRoot, entry, keyset); err != nil {
			s.Log.Error().Err(err).Str("path", entry.Name).Msg("failed to restore entry")
			failures = append(failures, fmt.Errorf("%s: %w", entry.Name, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %w", ErrRestoreIncomplete, errors.Join(failures...))
	}
	return nil
}

func (s *RestoreService) restoreEntry(targetRoot string, entry models.BackupEntry, keyset models.Keyset) error {
	path := filepath.Join(targetRoot, filepath.FromSlash(entry.Name))

	switch entry.Type {
	case models.EntryTypeDir:
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		return s.Adapter.SetMeta(path, entry.Meta)

	case models.EntryTypeLink:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
		if _, err := os.Lstat(path); err == nil {
			return ErrSymlinkExists
		}
		target := entry.Meta.Target
		if entry.LinkMeta != nil {
			target = entry.LinkMeta.Target
		}
		if err := os.Symlink(target, path); err != nil {
			return fmt.Errorf("create symlink: %w", err)
		}
		return s.Adapter.SetMeta(path, entry.Meta)

	case models.EntryTypeFile:
		return s.restoreFile(path, entry, keyset)

	default:
		return fmt.Errorf("%w: entry type %d", ErrUnsupportedObjectType, entry.Type)
	}
}

func (s *RestoreService) restoreFile(path string, entry models.BackupEntry, keyset models.Keyset) error {
	if entry.FileMeta == nil {
		return fmt.Errorf("%w: file entry missing block list", ErrInvalidPath)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	objectRaw, err := s.Repo.Blocks.Get(entry.FileMeta.BlockListId)
	if err != nil {
		return err
	}
	objectPlain, err := s.Engine.DecodeKeyed(objectRaw, keyset)
	if err != nil {
		return err
	}

	var object models.BackupObject
	if err := msgpack.Unmarshal(objectPlain, &object); err != nil {
		return fmt.Errorf("unmarshal backup object: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	writeErr := func() error {
		defer out.Close()
		for _, blockID := range object.Blocks {
			ciphertext, err := s.Repo.Blocks.Get(blockID)
			if err != nil {
				return err
			}
			plaintext, err := s.Engine.DecodeKeyed(ciphertext, keyset)
			if err != nil {
				return err
			}
			if _, err := out.Write(plaintext); err != nil {
				return fmt.Errorf("write file: %w", err)
			}
		}
		return nil
	}()
	if writeErr != nil {
		return writeErr
	}

	return s.Adapter.SetMeta(path, entry.Meta)
}
