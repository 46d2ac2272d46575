package middleware

import (
	"net/http"
	"time"

	"lnurl-voucher-gateway/internal/core/ports"
	"lnurl-voucher-gateway/pkg/apperror"
	"lnurl-voucher-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// HeaderAPIKey carries the host wallet admin key on admin routes.
	HeaderAPIKey = "X-Api-Key"

	// Context keys
	CtxWalletID = "wallet_id"
)

// AdminAuth resolves the caller's admin key to a wallet id and scopes the
// request to it. The wallet service is the source of truth for credentials;
// this gateway never stores admin keys.
func AdminAuth(wallets ports.WalletClient, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminKey := c.GetHeader(HeaderAPIKey)
		if adminKey == "" {
			response.Error(c, apperror.ErrInvalidAPIKey())
			c.Abort()
			return
		}

		walletID, err := wallets.ResolveWallet(c.Request.Context(), adminKey)
		if err != nil {
			log.Warn().Err(err).Str("client_ip", c.ClientIP()).Msg("admin key rejected")
			response.Error(c, apperror.ErrInvalidAPIKey())
			c.Abort()
			return
		}

		c.Set(CtxWalletID, walletID)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
