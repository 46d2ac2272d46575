package postgres

import (
	"context"
	"fmt"

	"lnurl-voucher-gateway/internal/core/domain"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Create inserts an audit event.
func (r *AuditRepo) Create(ctx context.Context, e *domain.AuditEvent) error {
	query := `INSERT INTO audit_events (id, wallet, action, resource_type, resource_id, ip_address, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Wallet, e.Action, e.ResourceType, e.ResourceID,
		e.IPAddress, e.Details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
