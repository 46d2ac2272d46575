package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventAction classifies an audit event.
type EventAction string

const (
	EventTerminalCreated EventAction = "TERMINAL_CREATED"
	EventTerminalUpdated EventAction = "TERMINAL_UPDATED"
	EventTerminalDeleted EventAction = "TERMINAL_DELETED"
	EventVoucherMinted   EventAction = "VOUCHER_MINTED"
	EventVoucherRedeemed EventAction = "VOUCHER_REDEEMED"
)

// AuditEvent is a fire-and-forget trail entry for admin writes and
// redemptions.
type AuditEvent struct {
	ID           uuid.UUID   `json:"id"`
	Wallet       string      `json:"wallet,omitempty"`
	Action       EventAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	IPAddress    string      `json:"ip_address,omitempty"`
	Details      string      `json:"details,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
