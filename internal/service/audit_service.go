package service

import (
	"context"
	"time"

	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const auditWriteTimeout = 5 * time.Second

// DBAuditService implements ports.AuditService. Writes happen in a
// background goroutine so the request path never waits on the trail; a lost
// audit row is logged, never surfaced.
type DBAuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates an audit service.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *DBAuditService {
	return &DBAuditService{repo: repo, log: log}
}

// Record persists an audit event asynchronously. The event is detached from
// the request context so cancellation does not drop the row.
func (s *DBAuditService) Record(_ context.Context, event *domain.AuditEvent) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := s.repo.Create(ctx, event); err != nil {
			s.log.Warn().
				Err(err).
				Str("action", string(event.Action)).
				Str("resource_id", event.ResourceID).
				Msg("failed to persist audit event")
		}
	}()
}
