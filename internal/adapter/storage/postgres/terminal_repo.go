package postgres

import (
	"context"
	"errors"
	"fmt"

	"lnurl-voucher-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TerminalRepo implements ports.TerminalRepository.
type TerminalRepo struct {
	pool Pool
}

// NewTerminalRepo creates a new TerminalRepo.
func NewTerminalRepo(pool Pool) *TerminalRepo {
	return &TerminalRepo{pool: pool}
}

const terminalColumns = `id, wallet, name, fiat_currency, exchange_rate_provider, fee, api_key_id, api_key_secret_enc, api_key_encoding, created_time, updated_time`

// Create inserts a new terminal.
func (r *TerminalRepo) Create(ctx context.Context, t *domain.Terminal) error {
	query := `INSERT INTO terminals (` + terminalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Wallet, t.Name, t.FiatCurrency, t.ExchangeRateProvider,
		t.Fee, t.APIKeyID, t.APIKeySecretEnc, t.APIKeyEncoding,
		t.CreatedTime, t.UpdatedTime,
	)
	if err != nil {
		return fmt.Errorf("insert terminal: %w", err)
	}
	return nil
}

// GetByID fetches a terminal by record id.
func (r *TerminalRepo) GetByID(ctx context.Context, id string) (*domain.Terminal, error) {
	query := `SELECT ` + terminalColumns + ` FROM terminals WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "id")
}

// GetByAPIKeyID fetches a terminal by its public API key id.
func (r *TerminalRepo) GetByAPIKeyID(ctx context.Context, apiKeyID string) (*domain.Terminal, error) {
	query := `SELECT ` + terminalColumns + ` FROM terminals WHERE api_key_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, apiKeyID), "api_key_id")
}

// ListByWallets fetches all terminals owned by the given wallets.
func (r *TerminalRepo) ListByWallets(ctx context.Context, walletIDs []string) ([]domain.Terminal, error) {
	query := `SELECT ` + terminalColumns + ` FROM terminals WHERE wallet = ANY($1) ORDER BY created_time DESC`

	rows, err := r.pool.Query(ctx, query, walletIDs)
	if err != nil {
		return nil, fmt.Errorf("list terminals: %w", err)
	}
	defer rows.Close()

	var terminals []domain.Terminal
	for rows.Next() {
		var t domain.Terminal
		if err := rows.Scan(
			&t.ID, &t.Wallet, &t.Name, &t.FiatCurrency, &t.ExchangeRateProvider,
			&t.Fee, &t.APIKeyID, &t.APIKeySecretEnc, &t.APIKeyEncoding,
			&t.CreatedTime, &t.UpdatedTime,
		); err != nil {
			return nil, fmt.Errorf("scan terminal: %w", err)
		}
		terminals = append(terminals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list terminals: %w", err)
	}
	return terminals, nil
}

// Update replaces the mutable terminal fields.
func (r *TerminalRepo) Update(ctx context.Context, t *domain.Terminal) error {
	query := `UPDATE terminals
		SET name=$1, fiat_currency=$2, exchange_rate_provider=$3, fee=$4, updated_time=$5
		WHERE id=$6`
	_, err := r.pool.Exec(ctx, query,
		t.Name, t.FiatCurrency, t.ExchangeRateProvider, t.Fee, t.UpdatedTime, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update terminal: %w", err)
	}
	return nil
}

// Delete removes a terminal. Vouchers are intentionally left behind; they
// stay redeemable after their terminal is retired.
func (r *TerminalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM terminals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete terminal: %w", err)
	}
	return nil
}

func (r *TerminalRepo) scanOne(row pgx.Row, by string) (*domain.Terminal, error) {
	t := &domain.Terminal{}
	err := row.Scan(
		&t.ID, &t.Wallet, &t.Name, &t.FiatCurrency, &t.ExchangeRateProvider,
		&t.Fee, &t.APIKeyID, &t.APIKeySecretEnc, &t.APIKeyEncoding,
		&t.CreatedTime, &t.UpdatedTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get terminal by %s: %w", by, err)
	}
	return t, nil
}
