// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the on-disk record types of a backrub repository:
// block identifiers, encrypted blocks, key material, repository metadata,
// backup entries, and backup instances. All structured records are
// serialized with MessagePack; byte strings use the msgpack `bin` family
// rather than `str`.
package models

import (
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/sha3"
)

// BlockIdSize is the length in bytes of a BlockId (SHA3-256 digest size).
const BlockIdSize = 32

// BlockId is the 256-bit content address of a stored block: the SHA3-256
// digest of the exact bytes written to disk for that block. BlockId is a
// distinct value type and is never conflated with its hex string rendering.
type BlockId [BlockIdSize]byte

// NewBlockId computes the BlockId of data by hashing it with SHA3-256.
func NewBlockId(data []byte) BlockId {
	return BlockId(sha3.Sum256(data))
}

// BlockIdFromHex parses a hex-encoded digest into a BlockId. Returns an
// error if s does not decode to exactly BlockIdSize bytes.
func BlockIdFromHex(s string) (BlockId, error) {
	var id BlockId
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decode block id hex: %w", err)
	}
	if len(raw) != BlockIdSize {
		return id, fmt.Errorf("block id has wrong length: %d", len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// String returns the lowercase hex encoding of the BlockId.
func (id BlockId) String() string {
	return hex.EncodeToString(id[:])
}

// Equal reports whether id and other address the same block.
func (id BlockId) Equal(other BlockId) bool {
	return id == other
}

// IsZero reports whether id is the zero value (never a valid SHA3-256 digest
// in practice, but useful as an "unset" sentinel in partially built records).
func (id BlockId) IsZero() bool {
	return id == BlockId{}
}

// SplitPrefix returns the block-store path components for id: a two
// hex-character fan-out directory name and the remaining hex digits as the
// file name, per the `blocks/<xx>/<yy...>` repository layout.
func (id BlockId) SplitPrefix() (dir string, file string) {
	full := id.String()
	return full[:2], full[2:]
}

// EncodeMsgpack implements msgpack.CustomEncoder, writing the BlockId as a
// msgpack `bin` value rather than a fixed-size array of integers.
func (id BlockId) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes(id[:])
}

// DecodeMsgpack implements msgpack.CustomDecoder, reading the BlockId back
// from a msgpack `bin` value.
func (id *BlockId) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeBytes()
	if err != nil {
		return fmt.Errorf("decode block id: %w", err)
	}
	if len(raw) != BlockIdSize {
		return fmt.Errorf("block id has wrong length: %d", len(raw))
	}
	copy(id[:], raw)
	return nil
}
