package handler

import (
	"net/http"

	"lnurl-voucher-gateway/internal/core/ports"
	"lnurl-voucher-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LnurlHandler serves the public withdraw protocol surface. Responses here
// follow the LNURL wire envelope, not the admin API envelope: errors are
// {"status":"ERROR","reason":...} and the action endpoint always answers
// HTTP 200 so wallets render the reason instead of a transport error.
type LnurlHandler struct {
	vouchers ports.VoucherService
	log      zerolog.Logger
}

// NewLnurlHandler creates the public protocol handler.
func NewLnurlHandler(vouchers ports.VoucherService, log zerolog.Logger) *LnurlHandler {
	return &LnurlHandler{vouchers: vouchers, log: log}
}

// Info serves the first redemption phase.
// GET /lnurl/:secret
func (h *LnurlHandler) Info(c *gin.Context) {
	info, err := h.vouchers.ResolveInfo(c.Request.Context(), c.Param("secret"), callbackBase(c))
	if err != nil {
		status := http.StatusBadRequest
		if appErr, ok := apperror.AsAppError(err); ok {
			status = appErr.HTTPStatus
		}
		c.JSON(status, wireError(err))
		return
	}
	c.JSON(http.StatusOK, info)
}

// Action serves the second redemption phase. Wallets submit their invoice in
// the pr parameter, either on the callback query string or as a form field.
// GET|POST /lnurl/:secret/action
func (h *LnurlHandler) Action(c *gin.Context) {
	fields := c.Request.URL.Query()
	if err := c.Request.ParseForm(); err == nil && len(c.Request.Form) > 0 {
		fields = c.Request.Form
	}
	err := h.vouchers.Execute(c.Request.Context(), c.Param("secret"), fields)
	if err != nil {
		// Always HTTP 200: the envelope carries the failure.
		c.JSON(http.StatusOK, wireError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// DeviceMint serves signed mint requests from POS devices.
// GET /lnurl (also mounted at /api/v1/lnurl)
func (h *LnurlHandler) DeviceMint(c *gin.Context) {
	result, err := h.vouchers.MintSigned(c.Request.Context(), c.Request.URL.Query(), callbackBase(c))
	if err != nil {
		status := http.StatusBadRequest
		if appErr, ok := apperror.AsAppError(err); ok {
			status = appErr.HTTPStatus
		}
		c.JSON(status, wireError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "lnurl": result.Lnurl})
}

// wireError maps an error onto the LNURL envelope. AppError messages are
// written to be safe on the wire; anything else is masked.
func wireError(err error) gin.H {
	reason := "Unexpected error"
	if appErr, ok := apperror.AsAppError(err); ok {
		reason = appErr.Message
	}
	return gin.H{"status": "ERROR", "reason": reason}
}

// callbackBase reconstructs the public origin of the current request.
// Callback URLs are derived per request rather than stored, so moving the
// service behind a new domain does not strand minted vouchers.
func callbackBase(c *gin.Context) string {
	scheme := c.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		if c.Request.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return scheme + "://" + host
}
