package ports

import (
	"context"
	"errors"
	"net/url"
	"time"

	"lnurl-voucher-gateway/internal/core/domain"
)

// Payment failure classes a PaymentClient may report. Failures in these
// classes carry an operator-safe reason; anything else is surfaced as an
// unexpected error.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPaymentRejected     = errors.New("payment rejected")
)

// SecretService generates redemption secrets and maps them to lookup keys.
// The digest must be deterministic: it is computed once at mint time and
// again on every redemption to find the voucher.
type SecretService interface {
	NewSecret() (string, error)
	Hash(secret string) string
}

// SignatureService signs and verifies the HMAC-SHA256 payloads that POS
// devices attach to mint requests.
type SignatureService interface {
	Sign(key []byte, payload string) string
	Verify(key []byte, payload string, signature string) bool
	// BuildQueryPayload canonicalizes query parameters for signing:
	// keys sorted, "signature" excluded, joined as key=value with '&'.
	BuildQueryPayload(query url.Values) string
}

// EncryptionService handles AES-256-GCM encryption of API key secrets at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// ExchangeRateService fetches the current BTC price in a fiat currency from
// a named provider registry.
type ExchangeRateService interface {
	// FetchRate returns the BTC price in the given currency. Unknown
	// providers or currencies and upstream failures surface as
	// apperror PRV_* errors.
	FetchRate(ctx context.Context, currency, provider string) (float64, error)
	HasProvider(name string) bool
	HasCurrency(code string) bool
	ProviderNames() []string
	CurrencyCodes() []string
}

// RateCache is a read-through cache for fetched exchange rates.
type RateCache interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, rate float64, ttl time.Duration) error
}

// PaymentClient is the external capability that settles a bolt11 invoice
// against a host wallet balance. Implementations wrap classifiable failures
// with ErrInsufficientBalance or ErrPaymentRejected.
type PaymentClient interface {
	Pay(ctx context.Context, walletID, paymentRequest string) error
}

// WalletClient resolves an operator-supplied admin credential to the wallet
// it is scoped to.
type WalletClient interface {
	ResolveWallet(ctx context.Context, adminKey string) (string, error)
}

// InvoiceDecoder decodes a bolt11 payment request.
type InvoiceDecoder interface {
	Decode(paymentRequest string) (*DecodedInvoice, error)
}

// DecodedInvoice carries the invoice fields the engine validates against.
type DecodedInvoice struct {
	MilliSat    int64
	PaymentHash string
	Description string
}

// NonceStore manages nonce uniqueness for device mint replay protection.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// AuditService records audit events (fire-and-forget).
type AuditService interface {
	Record(ctx context.Context, event *domain.AuditEvent)
}

// --- Service Ports (Business Logic) ---

// TerminalInput holds validated operator input for terminal create/update.
type TerminalInput struct {
	Name                 string
	FiatCurrency         string
	ExchangeRateProvider string
	Fee                  string
}

// TerminalService manages operator terminal configurations.
type TerminalService interface {
	Create(ctx context.Context, walletID string, in TerminalInput) (*domain.Terminal, error)
	Get(ctx context.Context, walletID, id string) (*domain.Terminal, error)
	List(ctx context.Context, walletIDs []string) ([]domain.Terminal, error)
	Update(ctx context.Context, walletID, id string, in TerminalInput) (*domain.Terminal, error)
	Delete(ctx context.Context, walletID, id string) error
	Stats(ctx context.Context, walletID, id string) (*VoucherStats, error)
}

// MintResult is returned by admin mints; Secret and Lnurl exist only in this
// response, never in storage.
type MintResult struct {
	Voucher *domain.Voucher
	Secret  string
	Lnurl   string
}

// VoucherService is the withdraw-link protocol engine.
type VoucherService interface {
	// Mint creates a voucher for the terminal and returns the plaintext
	// secret alongside it. baseURL is the public origin vouchers are
	// served from, used to build the encoded LNURL.
	Mint(ctx context.Context, terminal *domain.Terminal, tag string, params domain.WithdrawParams, uses int32, baseURL string) (*MintResult, error)
	// MintSigned serves a device-signed mint request (HMAC over the query).
	MintSigned(ctx context.Context, query url.Values, baseURL string) (*MintResult, error)
	// ResolveInfo serves the first redemption phase. callbackBase is the
	// live request origin; the callback URL is derived from it, never
	// stored.
	ResolveInfo(ctx context.Context, secret string, callbackBase string) (map[string]interface{}, error)
	// Execute serves the second redemption phase: validate, consume one
	// use, forward payment. The consumed use is not refunded if payment
	// fails.
	Execute(ctx context.Context, secret string, fields url.Values) error
}
