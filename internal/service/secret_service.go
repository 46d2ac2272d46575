package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// secretLen is the byte length of a freshly generated redemption secret.
const secretLen = 32

// SHA256SecretService implements ports.SecretService. The digest is a plain
// SHA-256: it must be deterministic because it doubles as the voucher lookup
// key, so salted constructions cannot be used here.
type SHA256SecretService struct{}

// NewSHA256SecretService creates a new secret service.
func NewSHA256SecretService() *SHA256SecretService {
	return &SHA256SecretService{}
}

// NewSecret generates a cryptographically random hex-encoded secret.
func (s *SHA256SecretService) NewSecret() (string, error) {
	b := make([]byte, secretLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash returns the lowercase hex SHA-256 digest of the secret.
func (s *SHA256SecretService) Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
