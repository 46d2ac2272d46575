// Package exchange implements the pluggable fiat exchange-rate gateway.
// Providers are polymorphic over one capability — given a currency code,
// return the current BTC price — and live in a fixed registry keyed by name.
// Adding a provider means adding an adapter function plus a registry entry;
// calling code never changes.
package exchange

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"lnurl-voucher-gateway/internal/core/ports"
	"lnurl-voucher-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// provider is one registry entry. baseURL is swappable so tests can point
// adapters at a local server.
type provider struct {
	baseURL string
	fetch   func(ctx context.Context, client *http.Client, baseURL, currency string) (float64, error)
}

// Gateway implements ports.ExchangeRateService.
type Gateway struct {
	client    *http.Client
	providers map[string]provider
	cache     ports.RateCache // nil = caching disabled
	cacheTTL  time.Duration
	log       zerolog.Logger
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithCache enables the read-through rate cache.
func WithCache(cache ports.RateCache, ttl time.Duration) Option {
	return func(g *Gateway) {
		g.cache = cache
		g.cacheTTL = ttl
	}
}

// WithProviderBaseURL overrides a provider's endpoint (tests).
func WithProviderBaseURL(name, baseURL string) Option {
	return func(g *Gateway) {
		if p, ok := g.providers[name]; ok {
			p.baseURL = baseURL
			g.providers[name] = p
		}
	}
}

// NewGateway creates the exchange-rate gateway with the full provider
// registry. timeout bounds every provider HTTP call.
func NewGateway(timeout time.Duration, log zerolog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		client: &http.Client{Timeout: timeout},
		providers: map[string]provider{
			"binance":  {baseURL: "https://api.binance.com", fetch: fetchBinance},
			"bitfinex": {baseURL: "https://api.bitfinex.com", fetch: fetchBitfinex},
			"bitstamp": {baseURL: "https://www.bitstamp.net", fetch: fetchBitstamp},
			"coinbase": {baseURL: "https://api.coinbase.com", fetch: fetchCoinbase},
			"kraken":   {baseURL: "https://api.kraken.com", fetch: fetchKraken},
		},
		log: log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FetchRate returns the current BTC price in the given fiat currency from
// the named provider. Rates pass through the cache when one is configured;
// cache failures degrade to a live fetch, never to an error.
func (g *Gateway) FetchRate(ctx context.Context, currency, providerName string) (float64, error) {
	if !g.HasCurrency(currency) {
		return 0, apperror.ErrUnknownCurrency(currency)
	}
	p, ok := g.providers[providerName]
	if !ok {
		return 0, apperror.ErrUnknownProvider(providerName)
	}

	cacheKey := fmt.Sprintf("%s:%s", providerName, currency)
	if g.cache != nil {
		rate, hit, err := g.cache.Get(ctx, cacheKey)
		if err != nil {
			g.log.Warn().Err(err).Str("key", cacheKey).Msg("rate cache read failed, fetching live")
		} else if hit {
			return rate, nil
		}
	}

	rate, err := p.fetch(ctx, g.client, p.baseURL, currency)
	if err != nil {
		return 0, apperror.ErrProvider(currency, providerName, err)
	}
	if rate <= 0 {
		return 0, apperror.ErrProvider(currency, providerName,
			fmt.Errorf("non-positive rate %v", rate))
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, cacheKey, rate, g.cacheTTL); err != nil {
			g.log.Warn().Err(err).Str("key", cacheKey).Msg("rate cache write failed")
		}
	}

	g.log.Debug().
		Str("provider", providerName).
		Str("currency", currency).
		Float64("rate", rate).
		Msg("fetched exchange rate")

	return rate, nil
}

// HasProvider reports whether name is in the registry.
func (g *Gateway) HasProvider(name string) bool {
	_, ok := g.providers[name]
	return ok
}

// HasCurrency reports whether code is a supported fiat currency.
func (g *Gateway) HasCurrency(code string) bool {
	_, ok := fiatCurrencies[code]
	return ok
}

// ProviderNames returns the registry names, sorted.
func (g *Gateway) ProviderNames() []string {
	names := make([]string, 0, len(g.providers))
	for name := range g.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurrencyCodes returns the supported fiat currency codes, sorted.
func (g *Gateway) CurrencyCodes() []string {
	codes := make([]string, 0, len(fiatCurrencies))
	for code := range fiatCurrencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
