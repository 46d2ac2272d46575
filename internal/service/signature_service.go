package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
// POS devices sign the query string of their mint requests with the raw
// bytes of their API key secret.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using key.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(key []byte, payload string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(key, payload).
// Uses constant-time comparison to prevent timing attacks.
func (s *HMACSignatureService) Verify(key []byte, payload string, signature string) bool {
	expected := s.Sign(key, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// BuildQueryPayload canonicalizes query parameters for signing: the
// "signature" parameter is excluded, remaining keys are sorted and joined as
// key=value pairs with '&'. Values are the decoded forms; repeated keys keep
// their order of appearance.
func (s *HMACSignatureService) BuildQueryPayload(query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		for j, v := range query[k] {
			if i > 0 || j > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(v)
		}
	}
	return sb.String()
}
