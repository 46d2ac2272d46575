// Package lnurl implements the bech32 encoding used to hand URLs to wallet
// apps, per the LNURL convention (human-readable part "lnurl", uppercased for
// QR efficiency).
package lnurl

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const humanReadablePart = "lnurl"

// Encode bech32-encodes a plain URL into an uppercase "LNURL1..." string.
func Encode(url string) (string, error) {
	converted, err := bech32.ConvertBits([]byte(url), 8, 5, true)
	if err != nil {
		return "", err
	}

	str, err := bech32.Encode(humanReadablePart, converted)
	if err != nil {
		return "", err
	}

	return strings.ToUpper(str), nil
}

// Decode converts a bech32 "lnurl1..." string back into the plain URL.
func Decode(lnurl string) (string, error) {
	// LNURLs routinely exceed the 90-character bech32 limit.
	hrp, data, err := bech32.DecodeNoLimit(strings.ToLower(lnurl))
	if err != nil {
		return "", err
	}

	if hrp != humanReadablePart {
		return "", fmt.Errorf("incorrect hrp for LNURL. Expected %q, got %q",
			humanReadablePart, hrp)
	}

	data, err = bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
