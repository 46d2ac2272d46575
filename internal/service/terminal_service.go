package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports"
	"lnurl-voucher-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	terminalIDBytes   = 16 // 32-char hex record id
	apiKeyIDBytes     = 8
	apiKeySecretBytes = 32
)

// TerminalService implements ports.TerminalService. Every read and write is
// scoped to the caller's wallet; a terminal owned by another wallet is
// indistinguishable from a missing one.
type TerminalService struct {
	terminals  ports.TerminalRepository
	vouchers   ports.VoucherRepository
	rates      ports.ExchangeRateService
	encryption ports.EncryptionService
	audit      ports.AuditService
	log        zerolog.Logger
}

// NewTerminalService creates a terminal service.
func NewTerminalService(
	terminals ports.TerminalRepository,
	vouchers ports.VoucherRepository,
	rates ports.ExchangeRateService,
	encryption ports.EncryptionService,
	audit ports.AuditService,
	log zerolog.Logger,
) *TerminalService {
	return &TerminalService{
		terminals:  terminals,
		vouchers:   vouchers,
		rates:      rates,
		encryption: encryption,
		audit:      audit,
		log:        log,
	}
}

// Create validates the input, issues an API key pair and persists the
// terminal. The exchange-rate configuration is exercised with a live fetch
// before anything is written, so a misconfigured terminal is rejected while
// the operator is still looking at the form.
func (s *TerminalService) Create(ctx context.Context, walletID string, in ports.TerminalInput) (*domain.Terminal, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	id, err := randomHex(terminalIDBytes)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	apiKeyID, err := randomHex(apiKeyIDBytes)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	apiKeySecret, err := randomHex(apiKeySecretBytes)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	secretEnc, err := s.encryption.Encrypt(apiKeySecret)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := time.Now().Unix()
	terminal := &domain.Terminal{
		ID:                   id,
		Wallet:               walletID,
		Name:                 in.Name,
		FiatCurrency:         in.FiatCurrency,
		ExchangeRateProvider: in.ExchangeRateProvider,
		Fee:                  in.Fee,
		APIKeyID:             apiKeyID,
		APIKeySecretEnc:      secretEnc,
		APIKeySecret:         apiKeySecret,
		APIKeyEncoding:       domain.APIKeyEncodingHex,
		CreatedTime:          now,
		UpdatedTime:          now,
	}

	if err := s.terminals.Create(ctx, terminal); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("creating terminal: %w", err))
	}

	s.audit.Record(ctx, &domain.AuditEvent{
		Wallet:       walletID,
		Action:       domain.EventTerminalCreated,
		ResourceType: "terminal",
		ResourceID:   terminal.ID,
	})
	s.log.Info().
		Str("terminal_id", terminal.ID).
		Str("wallet", walletID).
		Str("provider", terminal.ExchangeRateProvider).
		Msg("terminal created")

	return terminal, nil
}

// Get fetches a terminal owned by walletID, with the plaintext API key
// secret restored for device configuration.
func (s *TerminalService) Get(ctx context.Context, walletID, id string) (*domain.Terminal, error) {
	terminal, err := s.owned(ctx, walletID, id)
	if err != nil {
		return nil, err
	}
	if err := s.revealSecret(terminal); err != nil {
		return nil, err
	}
	return terminal, nil
}

// List returns all terminals owned by the given wallets.
func (s *TerminalService) List(ctx context.Context, walletIDs []string) ([]domain.Terminal, error) {
	terminals, err := s.terminals.ListByWallets(ctx, walletIDs)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("listing terminals: %w", err))
	}
	for i := range terminals {
		if err := s.revealSecret(&terminals[i]); err != nil {
			return nil, err
		}
	}
	return terminals, nil
}

// Update replaces the mutable terminal fields. The API key pair survives
// updates; rotating it means deleting and recreating the terminal.
func (s *TerminalService) Update(ctx context.Context, walletID, id string, in ports.TerminalInput) (*domain.Terminal, error) {
	terminal, err := s.owned(ctx, walletID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	terminal.Name = in.Name
	terminal.FiatCurrency = in.FiatCurrency
	terminal.ExchangeRateProvider = in.ExchangeRateProvider
	terminal.Fee = in.Fee
	terminal.UpdatedTime = time.Now().Unix()

	if err := s.terminals.Update(ctx, terminal); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("updating terminal: %w", err))
	}

	s.audit.Record(ctx, &domain.AuditEvent{
		Wallet:       walletID,
		Action:       domain.EventTerminalUpdated,
		ResourceType: "terminal",
		ResourceID:   terminal.ID,
	})

	if err := s.revealSecret(terminal); err != nil {
		return nil, err
	}
	return terminal, nil
}

// Delete removes a terminal. Vouchers already minted for it stay redeemable.
func (s *TerminalService) Delete(ctx context.Context, walletID, id string) error {
	terminal, err := s.owned(ctx, walletID, id)
	if err != nil {
		return err
	}

	if err := s.terminals.Delete(ctx, terminal.ID); err != nil {
		return apperror.InternalError(fmt.Errorf("deleting terminal: %w", err))
	}

	s.audit.Record(ctx, &domain.AuditEvent{
		Wallet:       walletID,
		Action:       domain.EventTerminalDeleted,
		ResourceType: "terminal",
		ResourceID:   terminal.ID,
	})
	s.log.Info().Str("terminal_id", terminal.ID).Str("wallet", walletID).Msg("terminal deleted")

	return nil
}

// Stats aggregates voucher counts for a terminal.
func (s *TerminalService) Stats(ctx context.Context, walletID, id string) (*ports.VoucherStats, error) {
	terminal, err := s.owned(ctx, walletID, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.vouchers.Stats(ctx, terminal.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("aggregating voucher stats: %w", err))
	}
	return stats, nil
}

func (s *TerminalService) validateInput(ctx context.Context, in ports.TerminalInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.Validation("Terminal name is required")
	}
	if !s.rates.HasCurrency(in.FiatCurrency) {
		return apperror.ErrUnknownCurrency(in.FiatCurrency)
	}
	if !s.rates.HasProvider(in.ExchangeRateProvider) {
		return apperror.ErrUnknownProvider(in.ExchangeRateProvider)
	}
	if _, err := domain.FeeSpec(in.Fee).Apply(1_000_000); err != nil {
		return apperror.Validation(fmt.Sprintf("Invalid fee: %v", err))
	}
	// Prove the pair is actually quotable before saving anything.
	if _, err := s.rates.FetchRate(ctx, in.FiatCurrency, in.ExchangeRateProvider); err != nil {
		return err
	}
	return nil
}

// owned fetches a terminal and enforces wallet ownership. Wrong-wallet
// access reads as not found.
func (s *TerminalService) owned(ctx context.Context, walletID, id string) (*domain.Terminal, error) {
	terminal, err := s.terminals.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetching terminal: %w", err))
	}
	if terminal == nil || terminal.Wallet != walletID {
		return nil, apperror.ErrNotFound("Terminal")
	}
	return terminal, nil
}

func (s *TerminalService) revealSecret(terminal *domain.Terminal) error {
	secret, err := s.encryption.Decrypt(terminal.APIKeySecretEnc)
	if err != nil {
		return apperror.ErrEncryptionFailure(err)
	}
	terminal.APIKeySecret = secret
	return nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
