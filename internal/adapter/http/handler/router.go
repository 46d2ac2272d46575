package handler

import (
	"lnurl-voucher-gateway/internal/adapter/http/middleware"
	redisStore "lnurl-voucher-gateway/internal/adapter/storage/redis"
	"lnurl-voucher-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TerminalSvc    ports.TerminalService
	VoucherSvc     ports.VoucherService
	RateSvc        ports.ExchangeRateService
	WalletClient   ports.WalletClient
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	DefaultUses    int32
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Public LNURL protocol routes (no auth; the secret is the credential) ---
	lnurlHandler := NewLnurlHandler(deps.VoucherSvc, deps.Logger)
	r.GET("/lnurl", rl("device_mint"), lnurlHandler.DeviceMint)
	lnurl := r.Group("/lnurl")
	{
		lnurl.GET("/:secret", rl("lnurl"), lnurlHandler.Info)
		lnurl.GET("/:secret/action", rl("lnurl"), lnurlHandler.Action)
		lnurl.POST("/:secret/action", rl("lnurl"), lnurlHandler.Action)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Device mint (alias kept for devices configured with the API path) ---
	v1.GET("/lnurl", rl("device_mint"), lnurlHandler.DeviceMint)

	// --- Admin routes (host wallet admin key) ---
	adminAuth := middleware.AdminAuth(deps.WalletClient, deps.Logger)
	terminalHandler := NewTerminalHandler(deps.TerminalSvc, deps.VoucherSvc, deps.RateSvc, deps.DefaultUses)

	admin := v1.Group("", adminAuth)
	{
		admin.GET("/terminals", rl("admin"), terminalHandler.List)
		admin.POST("/terminals", rl("admin"), terminalHandler.Create)
		admin.GET("/terminals/:id", rl("admin"), terminalHandler.Get)
		admin.PUT("/terminals/:id", rl("admin"), terminalHandler.Update)
		admin.DELETE("/terminals/:id", rl("admin"), terminalHandler.Delete)
		admin.GET("/terminals/:id/stats", rl("admin"), terminalHandler.Stats)
		admin.POST("/terminals/:id/vouchers", rl("admin"), terminalHandler.Mint)
		admin.GET("/currencies", rl("admin"), terminalHandler.Currencies)
		admin.GET("/providers", rl("admin"), terminalHandler.Providers)
	}

	return r
}
