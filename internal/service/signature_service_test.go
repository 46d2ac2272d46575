package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()
	key := []byte("super-secret-key")

	sig := svc.Sign(key, "id=abc&nonce=123&tag=withdrawRequest")
	assert.Len(t, sig, 64) // hex SHA-256

	assert.True(t, svc.Verify(key, "id=abc&nonce=123&tag=withdrawRequest", sig))
	assert.False(t, svc.Verify(key, "id=abc&nonce=124&tag=withdrawRequest", sig))
	assert.False(t, svc.Verify([]byte("other-key"), "id=abc&nonce=123&tag=withdrawRequest", sig))
}

func TestSignatureService_BuildQueryPayload_SortsAndStripsSignature(t *testing.T) {
	svc := NewHMACSignatureService()

	q := url.Values{}
	q.Set("tag", "withdrawRequest")
	q.Set("id", "6287eb1a94c9e075")
	q.Set("nonce", "5f3a")
	q.Set("f", "2.50")
	q.Set("signature", "deadbeef")

	payload := svc.BuildQueryPayload(q)
	assert.Equal(t, "f=2.50&id=6287eb1a94c9e075&nonce=5f3a&tag=withdrawRequest", payload)
}

func TestSignatureService_BuildQueryPayload_DeterministicAcrossOrder(t *testing.T) {
	svc := NewHMACSignatureService()

	a, _ := url.ParseQuery("b=2&a=1&c=3")
	b, _ := url.ParseQuery("c=3&a=1&b=2")

	assert.Equal(t, svc.BuildQueryPayload(a), svc.BuildQueryPayload(b))
}
