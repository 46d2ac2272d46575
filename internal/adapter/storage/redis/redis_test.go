package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	return goredis.NewClient(&goredis.Options{Addr: s.Addr()}), s
}

func TestNonceStore_CheckAndSet_NewNonce(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewNonceStore(client)

	ok, err := store.CheckAndSet(context.Background(), "6287eb1a94c9e075", "nonce-abc", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "new nonce should return true")
}

func TestNonceStore_CheckAndSet_ReplayNonce(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewNonceStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "6287eb1a94c9e075", "nonce-xyz", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.CheckAndSet(ctx, "6287eb1a94c9e075", "nonce-xyz", 5*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "replayed nonce should return false")
}

func TestNonceStore_CheckAndSet_ScopedPerTerminal(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewNonceStore(client)
	ctx := context.Background()

	// Same nonce from two different terminals must not collide.
	ok1, err := store.CheckAndSet(ctx, "terminal-a", "nonce-123", 5*time.Minute)
	require.NoError(t, err)
	ok2, err := store.CheckAndSet(ctx, "terminal-b", "nonce-123", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok1)
	assert.True(t, ok2)
}

func TestNonceStore_CheckAndSet_ExpiresAfterTTL(t *testing.T) {
	client, s := newTestClient(t)
	store := NewNonceStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "terminal-a", "nonce-1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	s.FastForward(2 * time.Minute)

	ok, err = store.CheckAndSet(ctx, "terminal-a", "nonce-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired nonce may be reused")
}

func TestRateCache_GetMissThenHit(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewRateCache(client)
	ctx := context.Background()

	_, hit, err := cache.Get(ctx, "kraken:EUR")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "kraken:EUR", 58123.45, time.Minute))

	rate, hit, err := cache.Get(ctx, "kraken:EUR")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 58123.45, rate)
}

func TestRateCache_EntryExpires(t *testing.T) {
	client, s := newTestClient(t)
	cache := NewRateCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "kraken:EUR", 58000.0, time.Minute))
	s.FastForward(2 * time.Minute)

	_, hit, err := cache.Get(ctx, "kraken:EUR")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRateCache_CorruptedEntryIsAMiss(t *testing.T) {
	client, s := newTestClient(t)
	cache := NewRateCache(client)

	s.Set("rate:kraken:EUR", "not-a-number")

	_, hit, err := cache.Get(context.Background(), "kraken:EUR")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRateLimitStore_AllowWithinLimit(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := store.Allow(ctx, "ip:10.0.0.1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
	}

	res, err := store.Allow(ctx, "ip:10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed, "sixth request should be blocked")
	assert.Equal(t, int64(0), res.Remaining)
}

func TestRateLimitStore_KeysAreIndependent(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)
	ctx := context.Background()

	_, err := store.Allow(ctx, "ip:10.0.0.1", 1, time.Minute)
	require.NoError(t, err)

	res, err := store.Allow(ctx, "ip:10.0.0.2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestHealthCheck_Ping(t *testing.T) {
	client, _ := newTestClient(t)
	hc := NewHealthCheck(client)

	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "redis", hc.Name())
}
