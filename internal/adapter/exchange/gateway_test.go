package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"lnurl-voucher-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateCache struct {
	mu    sync.Mutex
	rates map[string]float64
	sets  int
}

func newFakeRateCache() *fakeRateCache {
	return &fakeRateCache{rates: map[string]float64{}}
}

func (c *fakeRateCache) Get(_ context.Context, key string) (float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rate, ok := c.rates[key]
	return rate, ok, nil
}

func (c *fakeRateCache) Set(_ context.Context, key string, rate float64, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[key] = rate
	c.sets++
	return nil
}

func newTestGateway(t *testing.T, providerName string, handler http.HandlerFunc, opts ...Option) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append(opts, WithProviderBaseURL(providerName, srv.URL))
	return NewGateway(2*time.Second, zerolog.Nop(), opts...)
}

func TestGateway_FetchRate_Binance(t *testing.T) {
	g := newTestGateway(t, "binance", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "BTCEUR", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"BTCEUR","price":"58123.45"}`))
	})

	rate, err := g.FetchRate(context.Background(), "EUR", "binance")
	require.NoError(t, err)
	assert.Equal(t, 58123.45, rate)
}

func TestGateway_FetchRate_Bitfinex(t *testing.T) {
	g := newTestGateway(t, "bitfinex", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/pubticker/btcusd", r.URL.Path)
		w.Write([]byte(`{"mid":"60000.5","last_price":"60001.0"}`))
	})

	rate, err := g.FetchRate(context.Background(), "USD", "bitfinex")
	require.NoError(t, err)
	assert.Equal(t, 60001.0, rate)
}

func TestGateway_FetchRate_Bitstamp(t *testing.T) {
	g := newTestGateway(t, "bitstamp", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/ticker/btceur/", r.URL.Path)
		w.Write([]byte(`{"last":"57999.01","high":"58200"}`))
	})

	rate, err := g.FetchRate(context.Background(), "EUR", "bitstamp")
	require.NoError(t, err)
	assert.Equal(t, 57999.01, rate)
}

func TestGateway_FetchRate_Coinbase(t *testing.T) {
	g := newTestGateway(t, "coinbase", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/exchange-rates", r.URL.Path)
		assert.Equal(t, "BTC", r.URL.Query().Get("currency"))
		w.Write([]byte(`{"data":{"currency":"BTC","rates":{"EUR":"58000.12","USD":"61000.34"}}}`))
	})

	rate, err := g.FetchRate(context.Background(), "USD", "coinbase")
	require.NoError(t, err)
	assert.Equal(t, 61000.34, rate)
}

func TestGateway_FetchRate_Kraken(t *testing.T) {
	g := newTestGateway(t, "kraken", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/0/public/Ticker", r.URL.Path)
		assert.Equal(t, "XBTEUR", r.URL.Query().Get("pair"))
		w.Write([]byte(`{"error":[],"result":{"XXBTZEUR":{"c":["58500.2","0.01"]}}}`))
	})

	rate, err := g.FetchRate(context.Background(), "EUR", "kraken")
	require.NoError(t, err)
	assert.Equal(t, 58500.2, rate)
}

func TestGateway_FetchRate_KrakenError(t *testing.T) {
	g := newTestGateway(t, "kraken", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":["EQuery:Unknown asset pair"],"result":{}}`))
	})

	_, err := g.FetchRate(context.Background(), "EUR", "kraken")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "PRV_001", appErr.Code)
}

func TestGateway_FetchRate_UnknownProvider(t *testing.T) {
	g := NewGateway(time.Second, zerolog.Nop())

	_, err := g.FetchRate(context.Background(), "EUR", "mtgox")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "PRV_002", appErr.Code)
}

func TestGateway_FetchRate_UnknownCurrency(t *testing.T) {
	g := NewGateway(time.Second, zerolog.Nop())

	_, err := g.FetchRate(context.Background(), "XXX", "kraken")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "PRV_003", appErr.Code)
}

func TestGateway_FetchRate_UpstreamFailure(t *testing.T) {
	g := newTestGateway(t, "binance", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := g.FetchRate(context.Background(), "EUR", "binance")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "PRV_001", appErr.Code)
}

func TestGateway_FetchRate_NonPositiveRate(t *testing.T) {
	g := newTestGateway(t, "binance", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"BTCEUR","price":"0"}`))
	})

	_, err := g.FetchRate(context.Background(), "EUR", "binance")
	assert.Error(t, err)
}

func TestGateway_FetchRate_CacheHitSkipsUpstream(t *testing.T) {
	var calls int
	cache := newFakeRateCache()
	g := newTestGateway(t, "kraken", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"error":[],"result":{"XXBTZEUR":{"c":["58500.2","0.01"]}}}`))
	}, WithCache(cache, time.Minute))

	rate, err := g.FetchRate(context.Background(), "EUR", "kraken")
	require.NoError(t, err)
	assert.Equal(t, 58500.2, rate)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.sets)

	rate, err = g.FetchRate(context.Background(), "EUR", "kraken")
	require.NoError(t, err)
	assert.Equal(t, 58500.2, rate)
	assert.Equal(t, 1, calls, "second fetch should be served from cache")
}

func TestGateway_Registry(t *testing.T) {
	g := NewGateway(time.Second, zerolog.Nop())

	assert.Equal(t, []string{"binance", "bitfinex", "bitstamp", "coinbase", "kraken"}, g.ProviderNames())
	assert.True(t, g.HasProvider("coinbase"))
	assert.False(t, g.HasProvider("mtgox"))
	assert.True(t, g.HasCurrency("EUR"))
	assert.False(t, g.HasCurrency("BTC"))
	assert.Contains(t, g.CurrencyCodes(), "USD")
}
