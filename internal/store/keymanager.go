package store

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/DerNamenlose/backrub/internal/crypto"
	"github.com/DerNamenlose/backrub/models"
)

const (
	metaFileName = "backrub"
	keysDirName  = "keys"
	keyFileExt   = ".key"
)

// fsKeyManager is the default [KeyManager], persisting RepositoryMeta at
// <root>/backrub and encrypted data-encryption keys at
// <root>/keys/<16-hex>.key.
type fsKeyManager struct {
	root   string
	engine crypto.Engine

	meta    models.RepositoryMeta
	master  models.MasterKey
	keyset  models.Keyset
}

// NewKeyManager constructs a [KeyManager] rooted at repoRoot using eng for
// key derivation and AEAD wrapping.
func NewKeyManager(repoRoot string, eng crypto.Engine) KeyManager {
	return &fsKeyManager{root: repoRoot, engine: eng, keyset: models.Keyset{}}
}

func (m *fsKeyManager) metaPath() string {
	return filepath.Join(m.root, metaFileName)
}

func (m *fsKeyManager) keysDir() string {
	return filepath.Join(m.root, keysDirName)
}

// Init implements [KeyManager].
func (m *fsKeyManager) Init(password string) error {
	if _, err := os.Stat(m.metaPath()); err == nil {
		return ErrAlreadyInitialized
	}

	for _, dir := range []string{blocksDirName, "instances", keysDirName} {
		if err := os.MkdirAll(filepath.Join(m.root, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	iterations, salt, err := m.engine.CalibrateIterations()
	if err != nil {
		return err
	}

	meta := models.RepositoryMeta{
		Version:    models.RepositoryVersion,
		Id:         uuid.NewString(),
		Title:      filepath.Base(m.root),
		Salt:       salt,
		Iterations: iterations,
	}

	metaBytes, err := msgpack.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshal repository meta: %w", err)
	}
	if err := os.WriteFile(m.metaPath(), metaBytes, 0o644); err != nil {
		return fmt.Errorf("write repository meta: %w", err)
	}

	master, err := m.engine.DeriveMasterKey(password, salt, iterations)
	if err != nil {
		return err
	}

	dekValue := make([]byte, models.DEKSize)
	if _, err := rand.Read(dekValue); err != nil {
		return fmt.Errorf("generate data encryption key: %w", err)
	}
	keyIndex, err := randomKeyIndex()
	if err != nil {
		return err
	}

	createdAt := nowUnix()
	keyBlock, err := m.engine.Encrypt(master, dekValue)
	if err != nil {
		return err
	}
	encrypted := models.EncryptedDEK{CreatedAt: createdAt, KeyBlock: keyBlock}

	if err := m.writeKeyFile(keyIndex, encrypted); err != nil {
		return err
	}

	m.meta = meta
	m.master = master
	m.keyset = models.Keyset{keyIndex: {CreatedAt: createdAt, Value: dekValue}}
	return nil
}

// Open implements [KeyManager].
func (m *fsKeyManager) Open(password string) error {
	metaBytes, err := os.ReadFile(m.metaPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotARepository
		}
		return fmt.Errorf("read repository meta: %w", err)
	}

	var meta models.RepositoryMeta
	if err := msgpack.Unmarshal(metaBytes, &meta); err != nil {
		return fmt.Errorf("%w: %v", ErrNotARepository, err)
	}
	if meta.Version != models.RepositoryVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, meta.Version)
	}

	master, err := m.engine.DeriveMasterKey(password, meta.Salt, meta.Iterations)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(m.keysDir())
	if err != nil {
		return fmt.Errorf("read keys directory: %w", err)
	}

	keyset := make(models.Keyset, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), keyFileExt) {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), keyFileExt)
		keyIndex, err := parseKeyIndex(stem)
		if err != nil {
			return fmt.Errorf("%w: bad key file name %q", ErrWrongPasswordOrCorrupt, entry.Name())
		}

		raw, err := os.ReadFile(filepath.Join(m.keysDir(), entry.Name()))
		if err != nil {
			return fmt.Errorf("read key file %q: %w", entry.Name(), err)
		}

		var encrypted models.EncryptedDEK
		if err := msgpack.Unmarshal(raw, &encrypted); err != nil {
			return fmt.Errorf("%w: unmarshal key file %q: %v", ErrWrongPasswordOrCorrupt, entry.Name(), err)
		}

		value, err := m.engine.Decrypt(master, encrypted.KeyBlock)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWrongPasswordOrCorrupt, err)
		}

		keyset[keyIndex] = models.DataEncryptionKey{CreatedAt: encrypted.CreatedAt, Value: value}
	}

	m.meta = meta
	m.master = master
	m.keyset = keyset
	return nil
}

// CurrentKey implements [KeyManager]. Per the repository's design, the
// current key is the loaded DEK with the smallest CreatedAt, not the most
// recently generated one.
func (m *fsKeyManager) CurrentKey() (uint64, models.DataEncryptionKey, error) {
	if len(m.keyset) == 0 {
		return 0, models.DataEncryptionKey{}, ErrNoKeysLoaded
	}

	var (
		bestIndex uint64
		best      models.DataEncryptionKey
		found     bool
	)
	for idx, dek := range m.keyset {
		if !found || dek.CreatedAt < best.CreatedAt {
			bestIndex, best, found = idx, dek, true
		}
	}
	return bestIndex, best, nil
}

// Keyset implements [KeyManager].
func (m *fsKeyManager) Keyset() models.Keyset {
	return m.keyset
}

// Meta implements [KeyManager].
func (m *fsKeyManager) Meta() models.RepositoryMeta {
	return m.meta
}

func (m *fsKeyManager) writeKeyFile(keyIndex uint64, encrypted models.EncryptedDEK) error {
	data, err := msgpack.Marshal(&encrypted)
	if err != nil {
		return fmt.Errorf("marshal encrypted key: %w", err)
	}

	name := fmt.Sprintf("%016x%s", keyIndex, keyFileExt)
	if err := os.WriteFile(filepath.Join(m.keysDir(), name), data, 0o600); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	return nil
}

func parseKeyIndex(stem string) (uint64, error) {
	raw, err := hex.DecodeString(stem)
	if err != nil || len(raw) != 8 {
		return 0, fmt.Errorf("invalid key index %q", stem)
	}
	return binary.BigEndian.Uint64(raw), nil
}

func nowUnix() int64 {
	return time.Now().Unix()
}

func randomKeyIndex() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate key index: %w", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
