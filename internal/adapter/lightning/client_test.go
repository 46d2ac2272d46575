package lightning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lnurl-voucher-gateway/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "service-key", 2*time.Second, zerolog.Nop())
}

func TestClient_Pay_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/payments", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("X-Api-Key"))

		var body payRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.Out)
		assert.Equal(t, "w1", body.WalletID)
		assert.Equal(t, "lnbc1...", body.Bolt11)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"payment_hash":"abc"}`))
	})

	err := c.Pay(context.Background(), "w1", "lnbc1...")
	assert.NoError(t, err)
}

func TestClient_Pay_InsufficientBalance(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"detail":"Insufficient balance."}`))
	})

	err := c.Pay(context.Background(), "w1", "lnbc1...")
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "Insufficient balance.")
}

func TestClient_Pay_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Payment would exceed wallet limit."}`))
	})

	err := c.Pay(context.Background(), "w1", "lnbc1...")
	assert.ErrorIs(t, err, ports.ErrPaymentRejected)
}

func TestClient_Pay_NodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	err := c.Pay(context.Background(), "w1", "lnbc1...")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_ResolveWallet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/wallet", r.URL.Path)
		assert.Equal(t, "admin-key-123", r.Header.Get("X-Api-Key"))
		w.Write([]byte(`{"id":"wallet-42","name":"till","balance":1000}`))
	})

	id, err := c.ResolveWallet(context.Background(), "admin-key-123")
	require.NoError(t, err)
	assert.Equal(t, "wallet-42", id)
}

func TestClient_ResolveWallet_BadKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.ResolveWallet(context.Background(), "bogus")
	assert.Error(t, err)
}

func TestClient_ResolveWallet_EmptyID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.ResolveWallet(context.Background(), "admin-key-123")
	assert.Error(t, err)
}
