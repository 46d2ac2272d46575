package ports

import (
	"context"

	"lnurl-voucher-gateway/internal/core/domain"
)

// TerminalRepository defines persistence operations for terminals.
type TerminalRepository interface {
	Create(ctx context.Context, terminal *domain.Terminal) error
	GetByID(ctx context.Context, id string) (*domain.Terminal, error)
	GetByAPIKeyID(ctx context.Context, apiKeyID string) (*domain.Terminal, error)
	ListByWallets(ctx context.Context, walletIDs []string) ([]domain.Terminal, error)
	Update(ctx context.Context, terminal *domain.Terminal) error
	Delete(ctx context.Context, id string) error
}

// VoucherRepository defines persistence operations for withdraw vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, voucher *domain.Voucher) error
	// GetByHash fetches a voucher by its secret hash, the only lookup path.
	// Returns nil, nil when the hash is unknown.
	GetByHash(ctx context.Context, hash string) (*domain.Voucher, error)
	// ConsumeUse performs the single atomic conditional decrement:
	//
	//	UPDATE ... SET remaining_uses = remaining_uses - 1, updated_time = now
	//	WHERE id = $id AND remaining_uses > 0
	//
	// and reports whether a row matched. This is the system's only
	// concurrency-correctness guarantee; callers must not wrap it in
	// application-level locking.
	ConsumeUse(ctx context.Context, id string, now int64) (bool, error)
	Stats(ctx context.Context, terminalID string) (*VoucherStats, error)
}

// VoucherStats aggregates voucher counts for a terminal.
type VoucherStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Exhausted int64 `json:"exhausted"`
	Unlimited int64 `json:"unlimited"`
}

// AuditRepository persists audit trail events.
type AuditRepository interface {
	Create(ctx context.Context, event *domain.AuditEvent) error
}
