package integration

import (
	"context"
	"fmt"
	"sync"

	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports"
)

// --- In-Memory Terminal Repo ---

type inMemoryTerminalRepo struct {
	mu        sync.RWMutex
	terminals map[string]*domain.Terminal
}

func newInMemoryTerminalRepo() *inMemoryTerminalRepo {
	return &inMemoryTerminalRepo{terminals: make(map[string]*domain.Terminal)}
}

func (r *inMemoryTerminalRepo) Create(ctx context.Context, t *domain.Terminal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.terminals[t.ID]; ok {
		return fmt.Errorf("terminal already exists")
	}
	cp := *t
	r.terminals[t.ID] = &cp
	return nil
}

func (r *inMemoryTerminalRepo) GetByID(ctx context.Context, id string) (*domain.Terminal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.terminals[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTerminalRepo) GetByAPIKeyID(ctx context.Context, apiKeyID string) (*domain.Terminal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.terminals {
		if t.APIKeyID == apiKeyID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTerminalRepo) ListByWallets(ctx context.Context, walletIDs []string) ([]domain.Terminal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallets := make(map[string]bool, len(walletIDs))
	for _, w := range walletIDs {
		wallets[w] = true
	}
	var out []domain.Terminal
	for _, t := range r.terminals {
		if wallets[t.Wallet] {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *inMemoryTerminalRepo) Update(ctx context.Context, t *domain.Terminal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.terminals[t.ID]; !ok {
		return fmt.Errorf("terminal not found")
	}
	cp := *t
	r.terminals[t.ID] = &cp
	return nil
}

func (r *inMemoryTerminalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.terminals, id)
	return nil
}

// --- In-Memory Voucher Repo ---

type inMemoryVoucherRepo struct {
	mu       sync.Mutex
	vouchers map[string]*domain.Voucher
	byHash   map[string]string
}

func newInMemoryVoucherRepo() *inMemoryVoucherRepo {
	return &inMemoryVoucherRepo{
		vouchers: make(map[string]*domain.Voucher),
		byHash:   make(map[string]string),
	}
}

func (r *inMemoryVoucherRepo) Create(ctx context.Context, v *domain.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byHash[v.Hash]; ok {
		return fmt.Errorf("voucher hash already exists")
	}
	cp := *v
	r.vouchers[v.ID] = &cp
	r.byHash[v.Hash] = v.ID
	return nil
}

func (r *inMemoryVoucherRepo) GetByHash(ctx context.Context, hash string) (*domain.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byHash[hash]
	if !ok {
		return nil, nil
	}
	cp := *r.vouchers[id]
	return &cp, nil
}

// ConsumeUse mirrors the conditional UPDATE: decrement only while uses
// remain, report whether a row matched. The mutex stands in for the
// database's row-level atomicity.
func (r *inMemoryVoucherRepo) ConsumeUse(ctx context.Context, id string, now int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vouchers[id]
	if !ok || v.RemainingUses <= 0 {
		return false, nil
	}
	v.RemainingUses--
	v.UpdatedTime = now
	return true, nil
}

func (r *inMemoryVoucherRepo) Stats(ctx context.Context, terminalID string) (*ports.VoucherStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &ports.VoucherStats{}
	for _, v := range r.vouchers {
		if v.TerminalID != terminalID {
			continue
		}
		stats.Total++
		switch {
		case v.InitialUses == 0:
			stats.Unlimited++
			stats.Active++
		case v.RemainingUses > 0:
			stats.Active++
		default:
			stats.Exhausted++
		}
	}
	return stats, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu     sync.Mutex
	events []*domain.AuditEvent
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// --- Stub payment client ---

// stubPaymentClient records every forwarded payment.
type stubPaymentClient struct {
	mu   sync.Mutex
	paid []string
}

func (c *stubPaymentClient) Pay(ctx context.Context, walletID, paymentRequest string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paid = append(c.paid, paymentRequest)
	return nil
}

func (c *stubPaymentClient) paidCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paid)
}

// --- Stub wallet client ---

type stubWalletClient struct {
	adminKey string
	walletID string
}

func (c *stubWalletClient) ResolveWallet(ctx context.Context, adminKey string) (string, error) {
	if adminKey != c.adminKey {
		return "", fmt.Errorf("unknown admin key")
	}
	return c.walletID, nil
}

// --- Stub invoice decoder ---

// stubInvoiceDecoder treats any string starting with "lnbc" as a valid
// invoice for the configured amount, so tests can exercise redemption
// without signing real invoices.
type stubInvoiceDecoder struct {
	amountMsat int64
}

func (d *stubInvoiceDecoder) Decode(paymentRequest string) (*ports.DecodedInvoice, error) {
	if len(paymentRequest) < 4 || paymentRequest[:4] != "lnbc" {
		return nil, fmt.Errorf("not a bolt11 invoice")
	}
	return &ports.DecodedInvoice{MilliSat: d.amountMsat, PaymentHash: "00", Description: "test"}, nil
}
