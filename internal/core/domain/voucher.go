package domain

import (
	"encoding/json"
	"fmt"
)

// TagWithdrawRequest is the only subprotocol tag currently served.
const TagWithdrawRequest = "withdrawRequest"

// Voucher is a redeemable withdraw link. The redemption secret is never
// persisted; Hash (SHA-256 hex of the secret) is the sole lookup path, so
// possession of the secret is the credential.
type Voucher struct {
	ID          string          `json:"id"`
	TerminalID  string          `json:"terminal_id"`
	Wallet      string          `json:"wallet"`
	Hash        string          `json:"-"`
	Tag         string          `json:"tag"`
	Params      json.RawMessage `json:"params"` // tag-keyed payload union
	APIKeyID    string          `json:"api_key_id"`
	InitialUses int32           `json:"initial_uses"`
	// RemainingUses is only ever mutated by the store's conditional
	// decrement. initial_uses == 0 marks an unlimited voucher and leaves
	// remaining_uses untouched.
	RemainingUses int32 `json:"remaining_uses"`
	CreatedTime   int64 `json:"created_time"` // epoch seconds
	UpdatedTime   int64 `json:"updated_time"`
}

// WithdrawParams is the payload shape for the "withdrawRequest" tag.
// Amounts are in millisatoshi.
type WithdrawParams struct {
	MinWithdrawable    int64  `json:"minWithdrawable"`
	MaxWithdrawable    int64  `json:"maxWithdrawable"`
	DefaultDescription string `json:"defaultDescription"`
}

// IsUnlimited reports whether the voucher never runs out of uses.
func (v *Voucher) IsUnlimited() bool {
	return v.InitialUses == 0
}

// HasUsesRemaining reports whether a redemption attempt may proceed.
func (v *Voucher) HasUsesRemaining() bool {
	return v.IsUnlimited() || v.RemainingUses > 0
}

// WithdrawParams decodes the params union for a withdrawRequest voucher.
func (v *Voucher) WithdrawParams() (*WithdrawParams, error) {
	if v.Tag != TagWithdrawRequest {
		return nil, fmt.Errorf("voucher tag %q has no withdraw params", v.Tag)
	}
	var p WithdrawParams
	if err := json.Unmarshal(v.Params, &p); err != nil {
		return nil, fmt.Errorf("decoding withdraw params: %w", err)
	}
	return &p, nil
}

// MarshalWithdrawParams encodes the withdrawRequest payload for storage.
func MarshalWithdrawParams(p WithdrawParams) (json.RawMessage, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding withdraw params: %w", err)
	}
	return raw, nil
}
