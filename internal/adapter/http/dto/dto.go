// Package dto defines the request and response shapes of the admin API.
package dto

import (
	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports"
)

// TerminalRequest is the create/update payload for a terminal.
type TerminalRequest struct {
	Name                 string `json:"name" binding:"required"`
	FiatCurrency         string `json:"fiat_currency" binding:"required"`
	ExchangeRateProvider string `json:"exchange_rate_provider" binding:"required"`
	Fee                  string `json:"fee"`
}

// Input converts the payload to the service input type.
func (r TerminalRequest) Input() ports.TerminalInput {
	return ports.TerminalInput{
		Name:                 r.Name,
		FiatCurrency:         r.FiatCurrency,
		ExchangeRateProvider: r.ExchangeRateProvider,
		Fee:                  r.Fee,
	}
}

// MintRequest is the admin mint payload. Amounts are in millisatoshi.
type MintRequest struct {
	Tag                string `json:"tag"`
	MinWithdrawable    int64  `json:"min_withdrawable" binding:"required"`
	MaxWithdrawable    int64  `json:"max_withdrawable" binding:"required"`
	DefaultDescription string `json:"default_description"`
	// Uses caps redemptions; 0 mints an unlimited voucher. Omitting the
	// field falls back to the configured default.
	Uses *int32 `json:"uses"`
}

// MintResponse returns the minted voucher together with the plaintext
// secret and the encoded LNURL. This response is the only place the secret
// ever appears.
type MintResponse struct {
	Voucher *domain.Voucher `json:"voucher"`
	Secret  string          `json:"secret"`
	Lnurl   string          `json:"lnurl"`
}

// RegistryResponse lists the supported currency codes or provider names.
type RegistryResponse struct {
	Items []string `json:"items"`
}
