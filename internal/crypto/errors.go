// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Sentinel errors returned (wrapped) by the crypto package. Callers should
// use errors.Is to match against these values rather than inspecting error
// strings.
var (
	// ErrKeyDerivation is returned when Argon2id key derivation fails.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrEncryption is returned when AEAD sealing fails (e.g. nonce
	// generation from the OS CSPRNG failed).
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption is returned when AEAD opening fails: either the key is
	// wrong or the ciphertext/tag has been corrupted.
	ErrDecryption = errors.New("decryption failed")

	// ErrUnknownKey is returned by DecodeKeyed when the KeyIndex embedded in
	// a KeyedCryptoBlock has no corresponding entry in the supplied keyset.
	ErrUnknownKey = errors.New("unknown data encryption key")
)
