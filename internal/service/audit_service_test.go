package service

import (
	"context"
	"testing"
	"time"

	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(repo, zerolog.Nop())

	done := make(chan *domain.AuditEvent, 1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.AuditEvent) error {
			done <- event
			return nil
		})

	svc.Record(context.Background(), &domain.AuditEvent{
		Wallet:       "wallet-1",
		Action:       domain.EventVoucherMinted,
		ResourceType: "voucher",
		ResourceID:   "voucher-1",
	})

	select {
	case event := <-done:
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.False(t, event.CreatedAt.IsZero())
		assert.Equal(t, domain.EventVoucherMinted, event.Action)
	case <-time.After(2 * time.Second):
		t.Fatal("audit event was never written")
	}
}

func TestAuditService_RecordSurvivesCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(repo, zerolog.Nop())

	done := make(chan struct{}, 1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *domain.AuditEvent) error {
			require.NoError(t, ctx.Err())
			done <- struct{}{}
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, &domain.AuditEvent{Action: domain.EventTerminalDeleted})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit event was never written")
	}
}
