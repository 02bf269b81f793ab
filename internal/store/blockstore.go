package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DerNamenlose/backrub/models"
)

// blocksDirName is the repository-relative directory holding all content
// addressed blocks.
const blocksDirName = "blocks"

// fsBlockStore is the default [BlockStore], storing each block as a file
// under <root>/blocks/<xx>/<yy...>, where the first two hex characters of
// the block's id name the fan-out directory and the rest name the file.
type fsBlockStore struct {
	root string
}

// NewBlockStore constructs a [BlockStore] rooted at repoRoot. repoRoot must
// be the repository's top-level directory (the one containing the
// "backrub" metadata file), not the blocks/ directory itself.
func NewBlockStore(repoRoot string) BlockStore {
	return &fsBlockStore{root: repoRoot}
}

// Put implements [BlockStore].
func (s *fsBlockStore) Put(data []byte) (models.BlockId, int, error) {
	id := models.NewBlockId(data)
	dirName, fileName := id.SplitPrefix()
	dir := filepath.Join(s.root, blocksDirName, dirName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return id, 0, fmt.Errorf("create block directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return id, 0, fmt.Errorf("write block: %w", err)
	}

	return id, len(data), nil
}

// Get implements [BlockStore].
func (s *fsBlockStore) Get(id models.BlockId) ([]byte, error) {
	dirName, fileName := id.SplitPrefix()
	path := filepath.Join(s.root, blocksDirName, dirName, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
		}
		return nil, fmt.Errorf("read block %s: %w", id, err)
	}
	return data, nil
}
