package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// APIKeyEncodingHex is the only key encoding issued for new terminals.
const APIKeyEncodingHex = "hex"

// Terminal is an operator-owned point-of-sale configuration. A terminal owns
// the vouchers minted for it and carries the API key pair its device signs
// mint requests with.
type Terminal struct {
	ID                   string `json:"id"`
	Wallet               string `json:"wallet"` // host wallet id payments settle against
	Name                 string `json:"name"`
	FiatCurrency         string `json:"fiat_currency"`
	ExchangeRateProvider string `json:"exchange_rate_provider"`
	Fee                  string `json:"fee"` // opaque fee spec, see FeeSpec
	APIKeyID             string `json:"api_key_id"`
	APIKeySecretEnc      string `json:"-"` // AES-256-GCM encrypted, never expose raw
	// APIKeySecret is the plaintext key the operator copies onto the POS
	// device. Populated transiently on admin reads after decryption; never
	// stored.
	APIKeySecret   string `json:"api_key_secret,omitempty"`
	APIKeyEncoding string `json:"api_key_encoding"`
	CreatedTime    int64  `json:"created_time"` // epoch seconds
	UpdatedTime    int64  `json:"updated_time"`
}

// FeeSpec is the terminal fee in one of two forms: a plain number is a flat
// fee in satoshis ("21"), a percent suffix is a share of the withdrawn
// amount ("1.5%"). The voucher engine treats it as opaque until a device
// mint needs to compute bounds.
type FeeSpec string

// Apply deducts the fee from an amount in millisatoshi. The result is
// clamped at zero; a voucher can never owe the operator money.
func (f FeeSpec) Apply(amountMsat int64) (int64, error) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return amountMsat, nil
	}

	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percent fee %q: %w", s, err)
		}
		if pct < 0 {
			return 0, fmt.Errorf("negative percent fee %q", s)
		}
		fee := int64(math.Round(float64(amountMsat) * pct / 100))
		return clampMsat(amountMsat - fee), nil
	}

	sats, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid flat fee %q: %w", s, err)
	}
	if sats < 0 {
		return 0, fmt.Errorf("negative flat fee %q", s)
	}
	return clampMsat(amountMsat - int64(math.Round(sats*1000))), nil
}

func clampMsat(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
