// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/argon2"

	"github.com/DerNamenlose/backrub/models"
)

// Argon2id tuning constants shared by DeriveMasterKey and CalibrateIterations.
const (
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32 // 256 bits

	// calibrationTarget is the wall-clock duration CalibrateIterations aims
	// for when selecting an iteration count.
	calibrationTarget = 1000 * time.Millisecond

	// calibrationGrowthCap bounds how aggressively the time cost is scaled
	// up between calibration probes, so a single unexpectedly fast probe
	// cannot overshoot wildly.
	calibrationGrowthCap = 8.0
)

// engine is the default implementation of [Engine].
type engine struct{}

// NewEngine constructs the default cryptographic [Engine].
func NewEngine() Engine {
	return &engine{}
}

// DeriveMasterKey implements [Engine].
func (e *engine) DeriveMasterKey(password string, salt []byte, iterations uint16) (models.MasterKey, error) {
	key := argon2.IDKey([]byte(password), salt, uint32(iterations), argonMemory, argonThreads, argonKeyLen)
	if len(key) != argonKeyLen {
		return nil, fmt.Errorf("%w: unexpected key length", ErrKeyDerivation)
	}
	return models.MasterKey(key), nil
}

// CalibrateIterations implements [Engine]. It starts at a time cost of 3 and
// multiplies it by calibrationTarget/elapsed (capped at calibrationGrowthCap,
// and always growing by at least 1) until a single derivation takes at least
// calibrationTarget, so that the chosen iteration count costs roughly one
// second on the host that ran init.
func (e *engine) CalibrateIterations() (uint16, []byte, error) {
	salt := make([]byte, models.SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return 0, nil, fmt.Errorf("%w: generate salt: %v", ErrKeyDerivation, err)
	}

	t := uint32(3)
	for {
		start := time.Now()
		if _, err := e.DeriveMasterKey("calibration-probe", salt, uint16(t)); err != nil {
			return 0, nil, err
		}
		elapsed := time.Since(start)

		if elapsed >= calibrationTarget {
			if t > 0xFFFF {
				t = 0xFFFF
			}
			return uint16(t), salt, nil
		}

		growth := float64(calibrationTarget) / float64(elapsed)
		if growth > calibrationGrowthCap {
			growth = calibrationGrowthCap
		}
		next := uint32(float64(t) * growth)
		if next <= t {
			next = t + 1
		}
		t = next
		if t > 0xFFFF {
			t = 0xFFFF
			continue
		}
	}
}

// Encrypt implements [Engine] using AES-256-GCM with a fresh random nonce.
func (e *engine) Encrypt(dek []byte, plaintext []byte) (models.CryptoBlock, error) {
	gcm, err := newGCM(dek)
	if err != nil {
		return models.CryptoBlock{}, fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	var nonce [models.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return models.CryptoBlock{}, fmt.Errorf("%w: generate nonce: %v", ErrEncryption, err)
	}

	ciphertext := gcm.Seal(nil, nonce[:], plaintext, nil)
	return models.CryptoBlock{Nonce: nonce, Data: ciphertext}, nil
}

// Decrypt implements [Engine].
func (e *engine) Decrypt(dek []byte, block models.CryptoBlock) ([]byte, error) {
	gcm, err := newGCM(dek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plaintext, err := gcm.Open(nil, block.Nonce[:], block.Data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

// EncodeKeyed implements [Engine].
func (e *engine) EncodeKeyed(keyIndex uint64, dek []byte, plaintext []byte) ([]byte, error) {
	block, err := e.Encrypt(dek, plaintext)
	if err != nil {
		return nil, err
	}

	keyed := models.KeyedCryptoBlock{KeyIndex: keyIndex, Block: block}
	data, err := msgpack.Marshal(&keyed)
	if err != nil {
		return nil, fmt.Errorf("marshal keyed block: %w", err)
	}
	return data, nil
}

// DecodeKeyed implements [Engine].
func (e *engine) DecodeKeyed(data []byte, keyset models.Keyset) ([]byte, error) {
	var keyed models.KeyedCryptoBlock
	if err := msgpack.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("unmarshal keyed block: %w", err)
	}

	dek, ok := keyset[keyed.KeyIndex]
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownKey, keyed.KeyIndex)
	}

	return e.Decrypt(dek.Value, keyed.Block)
}

// newGCM builds an AES-256-GCM AEAD from a 32-byte key.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
