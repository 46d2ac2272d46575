package postgres

import (
	"context"
	"errors"
	"fmt"

	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// VoucherRepo implements ports.VoucherRepository.
type VoucherRepo struct {
	pool Pool
}

// NewVoucherRepo creates a new VoucherRepo.
func NewVoucherRepo(pool Pool) *VoucherRepo {
	return &VoucherRepo{pool: pool}
}

const voucherColumns = `id, terminal_id, wallet, hash, tag, params, api_key_id, initial_uses, remaining_uses, created_time, updated_time`

// Create inserts a new voucher.
func (r *VoucherRepo) Create(ctx context.Context, v *domain.Voucher) error {
	query := `INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.TerminalID, v.Wallet, v.Hash, v.Tag, v.Params,
		v.APIKeyID, v.InitialUses, v.RemainingUses,
		v.CreatedTime, v.UpdatedTime,
	)
	if err != nil {
		return fmt.Errorf("insert voucher: %w", err)
	}
	return nil
}

// GetByHash fetches a voucher by its secret hash. Returns nil, nil when the
// hash is unknown.
func (r *VoucherRepo) GetByHash(ctx context.Context, hash string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE hash = $1`

	v := &domain.Voucher{}
	err := r.pool.QueryRow(ctx, query, hash).Scan(
		&v.ID, &v.TerminalID, &v.Wallet, &v.Hash, &v.Tag, &v.Params,
		&v.APIKeyID, &v.InitialUses, &v.RemainingUses,
		&v.CreatedTime, &v.UpdatedTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get voucher by hash: %w", err)
	}
	return v, nil
}

// ConsumeUse atomically takes one use off the voucher. The WHERE clause is
// the whole concurrency story: under N concurrent redemptions of a voucher
// with k uses left, exactly k of these statements match a row.
func (r *VoucherRepo) ConsumeUse(ctx context.Context, id string, now int64) (bool, error) {
	query := `UPDATE vouchers
		SET remaining_uses = remaining_uses - 1, updated_time = $1
		WHERE id = $2 AND remaining_uses > 0`

	tag, err := r.pool.Exec(ctx, query, now, id)
	if err != nil {
		return false, fmt.Errorf("consume voucher use: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Stats aggregates voucher counts for a terminal.
func (r *VoucherRepo) Stats(ctx context.Context, terminalID string) (*ports.VoucherStats, error) {
	query := `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE initial_uses = 0 OR remaining_uses > 0),
		COUNT(*) FILTER (WHERE initial_uses > 0 AND remaining_uses = 0),
		COUNT(*) FILTER (WHERE initial_uses = 0)
		FROM vouchers WHERE terminal_id = $1`

	stats := &ports.VoucherStats{}
	err := r.pool.QueryRow(ctx, query, terminalID).Scan(
		&stats.Total, &stats.Active, &stats.Exhausted, &stats.Unlimited,
	)
	if err != nil {
		return nil, fmt.Errorf("voucher stats: %w", err)
	}
	return stats, nil
}
