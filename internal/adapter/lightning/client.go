package lightning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lnurl-voucher-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// Client talks to the backing Lightning wallet node over its REST API. One
// service API key authorizes the gateway; the wallet to debit travels in the
// request body.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a wallet node client.
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type payRequest struct {
	Out      bool   `json:"out"`
	WalletID string `json:"wallet_id"`
	Bolt11   string `json:"bolt11"`
}

type walletResponse struct {
	ID string `json:"id"`
}

type nodeError struct {
	Detail string `json:"detail"`
}

// Pay submits a bolt11 payment request for payment out of walletID. It
// blocks until the node accepts or rejects the payment.
func (c *Client) Pay(ctx context.Context, walletID, paymentRequest string) error {
	body, err := json.Marshal(payRequest{Out: true, WalletID: walletID, Bolt11: paymentRequest})
	if err != nil {
		return fmt.Errorf("encoding payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/payments", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", ports.ErrInsufficientBalance, readDetail(resp.Body))
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ports.ErrPaymentRejected, readDetail(resp.Body))
	default:
		detail := readDetail(resp.Body)
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("wallet_id", walletID).
			Str("detail", detail).
			Msg("unexpected wallet node response")
		return fmt.Errorf("wallet node returned status %d: %s", resp.StatusCode, detail)
	}
}

// ResolveWallet looks up the wallet id belonging to an admin API key. The
// admin surface uses this to scope every read and write to the caller's
// wallet.
func (c *Client) ResolveWallet(ctx context.Context, adminKey string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/wallet", nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Api-Key", adminKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wallet lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ports.ErrPaymentRejected
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wallet node returned status %d: %s",
			resp.StatusCode, readDetail(resp.Body))
	}

	var wallet walletResponse
	if err := json.NewDecoder(resp.Body).Decode(&wallet); err != nil {
		return "", fmt.Errorf("decoding wallet response: %w", err)
	}
	if wallet.ID == "" {
		return "", fmt.Errorf("wallet node returned empty wallet id")
	}
	return wallet.ID, nil
}

func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var ne nodeError
	if json.Unmarshal(raw, &ne) == nil && ne.Detail != "" {
		return ne.Detail
	}
	return string(bytes.TrimSpace(raw))
}
