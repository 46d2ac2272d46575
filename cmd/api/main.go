package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lnurl-voucher-gateway/config"
	"lnurl-voucher-gateway/internal/adapter/exchange"
	httpHandler "lnurl-voucher-gateway/internal/adapter/http/handler"
	"lnurl-voucher-gateway/internal/adapter/lightning"
	pgStorage "lnurl-voucher-gateway/internal/adapter/storage/postgres"
	redisStorage "lnurl-voucher-gateway/internal/adapter/storage/redis"
	"lnurl-voucher-gateway/internal/core/ports"
	"lnurl-voucher-gateway/internal/service"
	"lnurl-voucher-gateway/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting LNURL Voucher Gateway")

	ctx := context.Background()

	// Initialize PostgreSQL pool and run migrations
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	if err := pgStorage.Migrate(cfg.Database, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	terminalRepo := pgStorage.NewTerminalRepo(pool)
	voucherRepo := pgStorage.NewVoucherRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)

	// Initialize Redis stores
	nonceStore := redisStorage.NewNonceStore(rdb)
	rateCache := redisStorage.NewRateCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	secretSvc := service.NewSHA256SecretService()
	sigSvc := service.NewHMACSignatureService()
	auditSvc := service.NewAuditService(auditRepo, log)

	// Exchange-rate gateway with Redis read-through cache
	rateOpts := []exchange.Option{}
	if cfg.Exchange.CacheTTL > 0 {
		rateOpts = append(rateOpts, exchange.WithCache(rateCache, cfg.Exchange.CacheTTL))
	}
	rateSvc := exchange.NewGateway(cfg.Exchange.Timeout, log, rateOpts...)

	// Lightning wallet adapters
	invoiceDecoder, err := lightning.NewBolt11Decoder(cfg.Lightning.Network)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize invoice decoder")
	}
	lnClient := lightning.NewClient(cfg.Lightning.BaseURL, cfg.Lightning.APIKey, cfg.Lightning.Timeout, log)

	// Initialize business services
	terminalSvc := service.NewTerminalService(terminalRepo, voucherRepo, rateSvc, encSvc, auditSvc, log)
	voucherSvc := service.NewVoucherService(
		voucherRepo,
		terminalRepo,
		secretSvc,
		sigSvc,
		encSvc,
		rateSvc,
		invoiceDecoder,
		lnClient,
		nonceStore,
		auditSvc,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TerminalSvc:    terminalSvc,
		VoucherSvc:     voucherSvc,
		RateSvc:        rateSvc,
		WalletClient:   lnClient,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		DefaultUses:    cfg.Lnurl.DefaultUses,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
