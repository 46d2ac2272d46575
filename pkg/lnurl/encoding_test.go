package lnurl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	url := "https://pos.example.com/lnurl/0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	encoded, err := Encode(url)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "LNURL1"))

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, url, decoded)
}

func TestDecode_AcceptsLowercase(t *testing.T) {
	url := "https://pos.example.com/lnurl/abc"

	encoded, err := Encode(url)
	require.NoError(t, err)

	decoded, err := Decode(strings.ToLower(encoded))
	require.NoError(t, err)
	assert.Equal(t, url, decoded)
}

func TestDecode_RejectsWrongHRP(t *testing.T) {
	// A valid bech32 string with a non-lnurl human-readable part.
	_, err := Decode("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hrp")
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode("not-an-lnurl")
	assert.Error(t, err)
}
