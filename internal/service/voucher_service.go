package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports"
	"lnurl-voucher-gateway/pkg/apperror"
	"lnurl-voucher-gateway/pkg/lnurl"

	"github.com/rs/zerolog"
)

// msatPerBTC converts a BTC amount to millisatoshi.
const msatPerBTC = 1e11

// nonceTTL bounds how long a device mint nonce is remembered. Devices send
// monotonically increasing nonces, so a replay outside this window would
// also fail signature freshness checks on the device side.
const nonceTTL = 24 * time.Hour

// VoucherService implements ports.VoucherService, the withdraw-link engine.
type VoucherService struct {
	vouchers   ports.VoucherRepository
	terminals  ports.TerminalRepository
	secrets    ports.SecretService
	signatures ports.SignatureService
	encryption ports.EncryptionService
	rates      ports.ExchangeRateService
	invoices   ports.InvoiceDecoder
	payments   ports.PaymentClient
	nonces     ports.NonceStore
	audit      ports.AuditService
	log        zerolog.Logger
}

// NewVoucherService creates the voucher engine.
func NewVoucherService(
	vouchers ports.VoucherRepository,
	terminals ports.TerminalRepository,
	secrets ports.SecretService,
	signatures ports.SignatureService,
	encryption ports.EncryptionService,
	rates ports.ExchangeRateService,
	invoices ports.InvoiceDecoder,
	payments ports.PaymentClient,
	nonces ports.NonceStore,
	audit ports.AuditService,
	log zerolog.Logger,
) *VoucherService {
	return &VoucherService{
		vouchers:   vouchers,
		terminals:  terminals,
		secrets:    secrets,
		signatures: signatures,
		encryption: encryption,
		rates:      rates,
		invoices:   invoices,
		payments:   payments,
		nonces:     nonces,
		audit:      audit,
		log:        log,
	}
}

// Mint creates a voucher for the terminal and returns the plaintext secret
// alongside it. The secret exists only in this response: storage keeps its
// SHA-256 digest and nothing else.
func (s *VoucherService) Mint(ctx context.Context, terminal *domain.Terminal, tag string, params domain.WithdrawParams, uses int32, baseURL string) (*ports.MintResult, error) {
	if tag != domain.TagWithdrawRequest {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported tag: %q", tag))
	}
	if params.MinWithdrawable < 1 {
		return nil, apperror.Validation("minWithdrawable must be at least 1 msat")
	}
	if params.MaxWithdrawable < params.MinWithdrawable {
		return nil, apperror.Validation("maxWithdrawable must not be less than minWithdrawable")
	}
	if uses < 0 {
		return nil, apperror.Validation("uses must not be negative")
	}

	secret, err := s.secrets.NewSecret()
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	id, err := randomHex(16)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	raw, err := domain.MarshalWithdrawParams(params)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now().Unix()
	voucher := &domain.Voucher{
		ID:            id,
		TerminalID:    terminal.ID,
		Wallet:        terminal.Wallet,
		Hash:          s.secrets.Hash(secret),
		Tag:           tag,
		Params:        raw,
		APIKeyID:      terminal.APIKeyID,
		InitialUses:   uses,
		RemainingUses: uses,
		CreatedTime:   now,
		UpdatedTime:   now,
	}

	if err := s.vouchers.Create(ctx, voucher); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("creating voucher: %w", err))
	}

	encoded, err := lnurl.Encode(withdrawURL(baseURL, secret))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encoding lnurl: %w", err))
	}

	s.audit.Record(ctx, &domain.AuditEvent{
		Wallet:       terminal.Wallet,
		Action:       domain.EventVoucherMinted,
		ResourceType: "voucher",
		ResourceID:   voucher.ID,
	})
	s.log.Info().
		Str("voucher_id", voucher.ID).
		Str("terminal_id", terminal.ID).
		Int32("uses", uses).
		Msg("voucher minted")

	return &ports.MintResult{Voucher: voucher, Secret: secret, Lnurl: encoded}, nil
}

// MintSigned serves a device mint request: an HMAC-signed query carrying the
// terminal's key id, a replay nonce and the fiat amount to load onto the
// voucher. The fiat amount is converted at the live exchange rate and the
// terminal fee is deducted, producing fixed bounds (min == max) and a
// single use.
func (s *VoucherService) MintSigned(ctx context.Context, query url.Values, baseURL string) (*ports.MintResult, error) {
	apiKeyID := query.Get("id")
	nonce := query.Get("nonce")
	signature := query.Get("signature")
	if apiKeyID == "" || nonce == "" || signature == "" {
		return nil, apperror.Validation("Missing required field: id, nonce and signature are required")
	}

	terminal, err := s.terminals.GetByAPIKeyID(ctx, apiKeyID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetching terminal by key id: %w", err))
	}
	if terminal == nil {
		return nil, apperror.ErrInvalidAPIKey()
	}

	key, err := s.deviceKey(terminal)
	if err != nil {
		return nil, err
	}

	fresh, err := s.nonces.CheckAndSet(ctx, apiKeyID, nonce, nonceTTL)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("checking nonce: %w", err))
	}
	if !fresh {
		return nil, apperror.ErrNonceUsed()
	}

	payload := s.signatures.BuildQueryPayload(query)
	if !s.signatures.Verify(key, payload, signature) {
		return nil, apperror.ErrInvalidSignature()
	}

	if query.Get("tag") != domain.TagWithdrawRequest {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported tag: %q", query.Get("tag")))
	}
	fiat, err := strconv.ParseFloat(query.Get("f"), 64)
	if err != nil || fiat <= 0 {
		return nil, apperror.Validation("Invalid fiat amount")
	}

	rate, err := s.rates.FetchRate(ctx, terminal.FiatCurrency, terminal.ExchangeRateProvider)
	if err != nil {
		return nil, err
	}

	amountMsat := int64(math.Round(fiat / rate * msatPerBTC))
	amountMsat, err = domain.FeeSpec(terminal.Fee).Apply(amountMsat)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("Invalid fee: %v", err))
	}
	if amountMsat < 1 {
		return nil, apperror.Validation("Amount after fees is below 1 msat")
	}

	params := domain.WithdrawParams{
		MinWithdrawable:    amountMsat,
		MaxWithdrawable:    amountMsat,
		DefaultDescription: terminal.Name,
	}
	return s.Mint(ctx, terminal, domain.TagWithdrawRequest, params, 1, baseURL)
}

// ResolveInfo serves the first redemption phase: the wallet follows the
// decoded LNURL and learns what it may withdraw. callbackBase is the live
// request origin; callback URLs are derived per request, never stored, so
// the service survives domain moves.
func (s *VoucherService) ResolveInfo(ctx context.Context, secret string, callbackBase string) (map[string]interface{}, error) {
	voucher, err := s.lookup(ctx, secret)
	if err != nil {
		return nil, err
	}
	params, err := voucher.WithdrawParams()
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return map[string]interface{}{
		"tag":                voucher.Tag,
		"callback":           withdrawURL(callbackBase, secret) + "/action",
		"k1":                 secret,
		"minWithdrawable":    params.MinWithdrawable,
		"maxWithdrawable":    params.MaxWithdrawable,
		"defaultDescription": params.DefaultDescription,
	}, nil
}

// Execute serves the second redemption phase: validate the submitted
// invoice, consume one use, forward the payment. Consumption happens before
// payment and is final; a failed payment does not refund the use, it burns
// it. That bias keeps a flaky wallet from redeeming more than its share
// under retries.
func (s *VoucherService) Execute(ctx context.Context, secret string, fields url.Values) error {
	voucher, err := s.lookup(ctx, secret)
	if err != nil {
		return err
	}
	pr, err := s.validate(voucher, fields)
	if err != nil {
		return err
	}

	if !voucher.IsUnlimited() {
		consumed, err := s.vouchers.ConsumeUse(ctx, voucher.ID, time.Now().Unix())
		if err != nil {
			return apperror.InternalError(fmt.Errorf("consuming voucher use: %w", err))
		}
		if !consumed {
			return apperror.ErrVoucherExhausted()
		}
	}

	if err := s.payments.Pay(ctx, voucher.Wallet, pr); err != nil {
		return s.classifyPaymentError(voucher, err)
	}

	s.audit.Record(ctx, &domain.AuditEvent{
		Wallet:       voucher.Wallet,
		Action:       domain.EventVoucherRedeemed,
		ResourceType: "voucher",
		ResourceID:   voucher.ID,
	})
	s.log.Info().
		Str("voucher_id", voucher.ID).
		Str("wallet", voucher.Wallet).
		Msg("voucher redeemed")

	return nil
}

// lookup maps a redemption secret to its voucher. Unknown secrets are a
// plain not-found; the digest is the credential.
func (s *VoucherService) lookup(ctx context.Context, secret string) (*domain.Voucher, error) {
	voucher, err := s.vouchers.GetByHash(ctx, s.secrets.Hash(secret))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetching voucher: %w", err))
	}
	if voucher == nil {
		return nil, apperror.ErrNotFound("Voucher")
	}
	return voucher, nil
}

// validate checks the action submission against the voucher's bounds and
// returns the payment request to forward.
func (s *VoucherService) validate(voucher *domain.Voucher, fields url.Values) (string, error) {
	pr := fields.Get("pr")
	if pr == "" {
		return "", apperror.Validation("Missing required field: pr")
	}
	if strings.Contains(pr, ",") {
		return "", apperror.Validation("Multiple payment requests are not supported")
	}

	invoice, err := s.invoices.Decode(pr)
	if err != nil {
		return "", apperror.Validation("Invalid payment request")
	}
	params, err := voucher.WithdrawParams()
	if err != nil {
		return "", apperror.InternalError(err)
	}
	if invoice.MilliSat < params.MinWithdrawable || invoice.MilliSat > params.MaxWithdrawable {
		return "", apperror.Validation(fmt.Sprintf(
			"Invoice amount must be between %d and %d msat, got %d",
			params.MinWithdrawable, params.MaxWithdrawable, invoice.MilliSat))
	}
	return pr, nil
}

func (s *VoucherService) classifyPaymentError(voucher *domain.Voucher, err error) error {
	switch {
	case errors.Is(err, ports.ErrInsufficientBalance):
		return apperror.ErrPaymentFailed("insufficient balance", err)
	case errors.Is(err, ports.ErrPaymentRejected):
		return apperror.ErrPaymentFailed("payment rejected", err)
	default:
		s.log.Error().Err(err).Str("voucher_id", voucher.ID).Msg("payment failed")
		return apperror.InternalError(err)
	}
}

// deviceKey recovers the raw signing key a terminal's device holds.
func (s *VoucherService) deviceKey(terminal *domain.Terminal) ([]byte, error) {
	plaintext, err := s.encryption.Decrypt(terminal.APIKeySecretEnc)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}
	switch terminal.APIKeyEncoding {
	case domain.APIKeyEncodingHex:
		key, err := decodeHexKey(plaintext)
		if err != nil {
			return nil, apperror.InternalError(err)
		}
		return key, nil
	default:
		return nil, apperror.InternalError(fmt.Errorf("unknown key encoding %q", terminal.APIKeyEncoding))
	}
}

func decodeHexKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding device key: %w", err)
	}
	return key, nil
}

func withdrawURL(baseURL, secret string) string {
	return strings.TrimRight(baseURL, "/") + "/lnurl/" + secret
}
