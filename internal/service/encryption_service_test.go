package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAESKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestEncryptionService_RoundTrip(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)

	plaintext := "8f2b5c1d9e4a7b3c8f2b5c1d9e4a7b3c8f2b5c1d9e4a7b3c8f2b5c1d9e4a7b3c"
	enc, err := svc.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, enc)

	dec, err := svc.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, plaintext, dec)
}

func TestEncryptionService_CiphertextsDiffer(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)

	// Random nonce: same plaintext encrypts differently every time.
	a, err := svc.Encrypt("secret")
	require.NoError(t, err)
	b, err := svc.Encrypt("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEncryptionService_BadKey(t *testing.T) {
	_, err := NewAESEncryptionService("not-hex")
	assert.Error(t, err)

	_, err = NewAESEncryptionService("abcd") // too short
	assert.Error(t, err)
}

func TestEncryptionService_TamperedCiphertext(t *testing.T) {
	svc, err := NewAESEncryptionService(testAESKey)
	require.NoError(t, err)

	enc, err := svc.Encrypt("secret")
	require.NoError(t, err)

	tampered := strings.Replace(enc, enc[len(enc)-2:], "00", 1)
	if tampered == enc {
		tampered = enc[:len(enc)-2] + "11"
	}
	_, err = svc.Decrypt(tampered)
	assert.Error(t, err)
}
