// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the repository's cryptographic primitives:
// password-based key derivation, AEAD encryption of individual blocks, and
// the keyed-block codec that binds a ciphertext to the data-encryption key
// that produced it.
//
// # Key hierarchy
//
// Two keys are involved, never more than one level of wrapping deep:
//
//  1. MasterKey — derived from the user's password and the repository salt
//     via Argon2id. It exists only in process memory for the duration of a
//     command and is used solely to wrap and unwrap data-encryption keys.
//
//  2. DataEncryptionKey (DEK) — a random 256-bit key generated once at
//     repository init (and, in principle, any time after). It encrypts and
//     decrypts every block written under blocks/.
//
// # AEAD construction
//
// Engine seals every block with standard AES-256-GCM under a fresh 12-byte
// nonce drawn from the OS CSPRNG. It does not use AES-256-GCM-SIV: there is
// no synthetic-IV protection against nonce reuse, so confidentiality relies
// on the random per-call nonces never repeating under the same key.
package crypto

import "github.com/DerNamenlose/backrub/models"

// Engine is the sole cryptographic dependency of the repository layer. It
// has no knowledge of the filesystem, the block store, or the key manager's
// persistence format — its only job is turning plaintext into
// authenticated, keyed ciphertext and back.
type Engine interface {
	// DeriveMasterKey derives a 32-byte MasterKey from password and salt
	// using Argon2id with the given time cost. Deterministic for fixed
	// inputs. Returns ErrKeyDerivation on underlying library failure.
	DeriveMasterKey(password string, salt []byte, iterations uint16) (models.MasterKey, error)

	// CalibrateIterations measures the host's Argon2id throughput and
	// returns a time-cost parameter expected to take roughly one second to
	// derive, along with a freshly generated random salt.
	CalibrateIterations() (iterations uint16, salt []byte, err error)

	// Encrypt seals plaintext under dek with a fresh random nonce,
	// returning the resulting CryptoBlock. Returns ErrEncryption if nonce
	// generation or sealing fails.
	Encrypt(dek []byte, plaintext []byte) (models.CryptoBlock, error)

	// Decrypt opens block under dek. Returns ErrDecryption if the key is
	// wrong or the ciphertext/tag is corrupted.
	Decrypt(dek []byte, block models.CryptoBlock) ([]byte, error)

	// EncodeKeyed encrypts plaintext under dek, wraps the result in a
	// KeyedCryptoBlock tagged with keyIndex, and serializes it to bytes
	// ready for the block store.
	EncodeKeyed(keyIndex uint64, dek []byte, plaintext []byte) ([]byte, error)

	// DecodeKeyed deserializes a KeyedCryptoBlock from data, looks up its
	// KeyIndex in keyset, and decrypts it. Returns ErrUnknownKey if the
	// index has no entry in keyset, or ErrDecryption if decryption fails.
	DecodeKeyed(data []byte, keyset models.Keyset) ([]byte, error)
}
