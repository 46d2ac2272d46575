package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	redisStore "lnurl-voucher-gateway/internal/adapter/storage/redis"
	"lnurl-voucher-gateway/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthedRouter(t *testing.T) (*gin.Engine, *mocks.MockWalletClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	wallets := mocks.NewMockWalletClient(ctrl)

	r := gin.New()
	r.GET("/protected", AdminAuth(wallets, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"wallet": c.GetString(CtxWalletID)})
	})
	return r, wallets
}

func TestAdminAuth_MissingKey(t *testing.T) {
	r, _ := newAuthedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_001")
}

func TestAdminAuth_RejectedKey(t *testing.T) {
	r, wallets := newAuthedRouter(t)
	wallets.EXPECT().ResolveWallet(gomock.Any(), "nope").Return("", errors.New("unauthorized"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderAPIKey, "nope")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_SetsWalletScope(t *testing.T) {
	r, wallets := newAuthedRouter(t)
	wallets.EXPECT().ResolveWallet(gomock.Any(), "good-key").Return("wallet-42", nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderAPIKey, "good-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wallet-42")
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestMaxBodySize_RejectsOversizedBody(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodySize(64))
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "body too large or malformed"})
			return
		}
		c.JSON(http.StatusOK, body)
	})

	small := []byte(`{"ok":true}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(small)))
	assert.Equal(t, http.StatusOK, w.Code)

	big := []byte(`{"pad":"` + strings.Repeat("x", 128) + `"}`)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(big)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func newRateLimitedRouter(t *testing.T, rule RateLimitRule) *gin.Engine {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redisStore.NewRateLimitStore(client)
	r := gin.New()
	r.GET("/ping", RateLimiter(store, "test", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	r := newRateLimitedRouter(t, RateLimitRule{Limit: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_SetsHeaders(t *testing.T) {
	r := newRateLimitedRouter(t, RateLimitRule{Limit: 10, Window: time.Minute})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_DegradedModeAllows(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redisStore.NewRateLimitStore(client)
	r := gin.New()
	r.GET("/ping", RateLimiter(store, "test", RateLimitRule{Limit: 1, Window: time.Minute}, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	// With the backing store down the limiter must fail open.
	s.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
