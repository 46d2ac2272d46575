// Package lightning holds the adapters that touch the Lightning side:
// bolt11 invoice decoding and the HTTP client for the backing wallet node.
package lightning

import (
	"encoding/hex"
	"fmt"
	"strings"

	"lnurl-voucher-gateway/internal/core/ports"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/zpay32"
)

// Bolt11Decoder implements ports.InvoiceDecoder on top of lnd's zpay32.
type Bolt11Decoder struct {
	params *chaincfg.Params
}

// NewBolt11Decoder creates a decoder for the given network. Accepted
// networks: mainnet, testnet, regtest, simnet.
func NewBolt11Decoder(network string) (*Bolt11Decoder, error) {
	var params *chaincfg.Params
	switch strings.ToLower(network) {
	case "mainnet", "":
		params = &chaincfg.MainNetParams
	case "testnet":
		params = &chaincfg.TestNet3Params
	case "regtest":
		params = &chaincfg.RegressionNetParams
	case "simnet":
		params = &chaincfg.SimNetParams
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
	return &Bolt11Decoder{params: params}, nil
}

// Decode parses a bolt11 payment request and extracts the fields the
// redemption flow validates against.
func (d *Bolt11Decoder) Decode(paymentRequest string) (*ports.DecodedInvoice, error) {
	inv, err := zpay32.Decode(paymentRequest, d.params)
	if err != nil {
		return nil, fmt.Errorf("decoding payment request: %w", err)
	}

	decoded := &ports.DecodedInvoice{}
	if inv.MilliSat != nil {
		decoded.MilliSat = int64(*inv.MilliSat)
	}
	if inv.PaymentHash != nil {
		decoded.PaymentHash = hex.EncodeToString(inv.PaymentHash[:])
	}
	if inv.Description != nil {
		decoded.Description = *inv.Description
	}
	return decoded, nil
}
