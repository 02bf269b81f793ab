package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DerNamenlose/backrub/models"
)

func TestDeriveMasterKey_DeterministicForSameInputs(t *testing.T) {
	eng := NewEngine()

	salt := bytes.Repeat([]byte{0xAB}, models.SaltSize)

	k1, err := eng.DeriveMasterKey("correct horse battery staple", salt, 1)
	require.NoError(t, err)
	k2, err := eng.DeriveMasterKey("correct horse battery staple", salt, 1)
	require.NoError(t, err)

	require.Len(t, k1, 32)
	require.True(t, bytes.Equal(k1, k2))
}

func TestDeriveMasterKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	eng := NewEngine()

	k1, err := eng.DeriveMasterKey("same password", bytes.Repeat([]byte{0x01}, models.SaltSize), 1)
	require.NoError(t, err)
	k2, err := eng.DeriveMasterKey("same password", bytes.Repeat([]byte{0x02}, models.SaltSize), 1)
	require.NoError(t, err)

	require.False(t, bytes.Equal(k1, k2))
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	eng := NewEngine()
	dek := bytes.Repeat([]byte{0xDD}, models.DEKSize)
	plaintext := []byte("This is a test")

	block, err := eng.Encrypt(dek, plaintext)
	require.NoError(t, err)

	got, err := eng.Decrypt(dek, block)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestEncrypt_NonceRandomness(t *testing.T) {
	eng := NewEngine()
	dek := bytes.Repeat([]byte{0xDD}, models.DEKSize)
	plaintext := []byte("repeat me")

	b1, err := eng.Encrypt(dek, plaintext)
	require.NoError(t, err)
	b2, err := eng.Encrypt(dek, plaintext)
	require.NoError(t, err)

	require.False(t, bytes.Equal(b1.Nonce[:], b2.Nonce[:]))
	require.False(t, bytes.Equal(b1.Data, b2.Data))
}

// S3: keyed block roundtrip with a 65535-byte random plaintext.
func TestEncodeDecodeKeyed_Roundtrip(t *testing.T) {
	eng := NewEngine()
	dek := []byte("0123456789ABCDEF0123456789ABCDEF") // 32 bytes
	const keyIndex = uint64(1)

	plaintext := make([]byte, 65535)
	_, err := rand.Read(plaintext)
	require.NoError(t, err)

	encoded, err := eng.EncodeKeyed(keyIndex, dek, plaintext)
	require.NoError(t, err)

	keyset := models.Keyset{keyIndex: {CreatedAt: 0, Value: dek}}
	decoded, err := eng.DecodeKeyed(encoded, keyset)
	require.NoError(t, err)
	require.Equal(t, plaintext, decoded)
}

func TestDecodeKeyed_WrongKeyRejected(t *testing.T) {
	eng := NewEngine()
	dek := bytes.Repeat([]byte{0x01}, models.DEKSize)
	otherDEK := bytes.Repeat([]byte{0x02}, models.DEKSize)

	encoded, err := eng.EncodeKeyed(1, dek, []byte("secret"))
	require.NoError(t, err)

	keyset := models.Keyset{1: {Value: otherDEK}}
	_, err = eng.DecodeKeyed(encoded, keyset)
	require.Error(t, err)
}

func TestDecodeKeyed_UnknownKeyIndex(t *testing.T) {
	eng := NewEngine()
	dek := bytes.Repeat([]byte{0x01}, models.DEKSize)

	encoded, err := eng.EncodeKeyed(42, dek, []byte("secret"))
	require.NoError(t, err)

	_, err = eng.DecodeKeyed(encoded, models.Keyset{7: {Value: dek}})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownKey))
}

func TestCalibrateIterations_ReturnsUsableSalt(t *testing.T) {
	if testing.Short() {
		t.Skip("calibration probes take real wall time")
	}
	eng := NewEngine()

	iterations, salt, err := eng.CalibrateIterations()
	require.NoError(t, err)
	require.Len(t, salt, models.SaltSize)
	require.Greater(t, iterations, uint16(0))
}
