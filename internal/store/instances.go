package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/DerNamenlose/backrub/models"
)

const instancesDirName = "instances"

// fsInstanceStore is the default [InstanceStore], storing one file per
// instance under <root>/instances/<name>.
type fsInstanceStore struct {
	root string
}

// NewInstanceStore constructs an [InstanceStore] rooted at repoRoot.
func NewInstanceStore(repoRoot string) InstanceStore {
	return &fsInstanceStore{root: repoRoot}
}

func (s *fsInstanceStore) path(name string) string {
	return filepath.Join(s.root, instancesDirName, name)
}

// Commit implements [InstanceStore].
func (s *fsInstanceStore) Commit(inst models.BackupInstance) error {
	data, err := msgpack.Marshal(&inst)
	if err != nil {
		return fmt.Errorf("marshal instance: %w", err)
	}
	if err := os.WriteFile(s.path(inst.Name), data, 0o644); err != nil {
		return fmt.Errorf("write instance %q: %w", inst.Name, err)
	}
	return nil
}

// List implements [InstanceStore]. Instances that fail to deserialize are
// skipped rather than aborting the whole listing.
func (s *fsInstanceStore) List() ([]models.BackupInstance, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, instancesDirName))
	if err != nil {
		return nil, fmt.Errorf("read instances directory: %w", err)
	}

	instances := make([]models.BackupInstance, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		inst, err := s.Open(entry.Name())
		if err != nil {
			continue
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// Open implements [InstanceStore].
func (s *fsInstanceStore) Open(name string) (models.BackupInstance, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.BackupInstance{}, fmt.Errorf("%w: %s", ErrInstanceNotFound, name)
		}
		return models.BackupInstance{}, fmt.Errorf("read instance %q: %w", name, err)
	}

	var inst models.BackupInstance
	if err := msgpack.Unmarshal(data, &inst); err != nil {
		return models.BackupInstance{}, fmt.Errorf("unmarshal instance %q: %w", name, err)
	}
	return inst, nil
}
