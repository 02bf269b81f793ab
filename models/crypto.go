package models

// NonceSize is the length in bytes of the AEAD nonce used by every
// CryptoBlock.
const NonceSize = 12

// DEKSize is the length in bytes of a DataEncryptionKey's raw value.
const DEKSize = 32

// CryptoBlock is an AEAD-encrypted payload: a random nonce paired with the
// ciphertext (including its authentication tag). It says nothing about which
// key produced it — see KeyedCryptoBlock for that.
type CryptoBlock struct {
	Nonce [NonceSize]byte `msgpack:"nonce"`
	Data  []byte          `msgpack:"data"`
}

// KeyedCryptoBlock binds a CryptoBlock to the index of the data-encryption
// key that produced it, so a repository holding several live DEKs can route
// each block to the right one on decrypt.
type KeyedCryptoBlock struct {
	KeyIndex uint64      `msgpack:"key_index"`
	Block    CryptoBlock `msgpack:"block"`
}

// DataEncryptionKey (DEK) is a symmetric key used to encrypt and decrypt
// repository blocks. The key set is append-only: once generated a DEK is
// never rotated out. The "current" key is the one with the smallest
// CreatedAt, so a DEK added later does not replace it.
type DataEncryptionKey struct {
	CreatedAt int64 `msgpack:"created_at"`
	Value     []byte `msgpack:"value"`
}

// EncryptedDEK is the on-disk representation of a DataEncryptionKey: its raw
// value encrypted under the repository MasterKey. Stored at
// keys/<16-hex-key-index>.key.
type EncryptedDEK struct {
	CreatedAt int64       `msgpack:"created_at"`
	KeyBlock  CryptoBlock `msgpack:"key_block"`
}

// MasterKey is derived once per session from the user's password and the
// repository salt; it exists only to wrap and unwrap DEKs and is never
// itself persisted.
type MasterKey []byte

// Keyset is the full set of data-encryption keys loaded from a repository,
// indexed by their random 64-bit key index.
type Keyset map[uint64]DataEncryptionKey
