package handler

import (
	"lnurl-voucher-gateway/internal/adapter/http/dto"
	"lnurl-voucher-gateway/internal/adapter/http/middleware"
	"lnurl-voucher-gateway/internal/core/domain"
	"lnurl-voucher-gateway/internal/core/ports"
	"lnurl-voucher-gateway/pkg/apperror"
	"lnurl-voucher-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// TerminalHandler serves the authenticated admin API.
type TerminalHandler struct {
	terminals   ports.TerminalService
	vouchers    ports.VoucherService
	rates       ports.ExchangeRateService
	defaultUses int32
}

// NewTerminalHandler creates the admin API handler. defaultUses applies to
// mint requests that omit the uses field.
func NewTerminalHandler(terminals ports.TerminalService, vouchers ports.VoucherService, rates ports.ExchangeRateService, defaultUses int32) *TerminalHandler {
	return &TerminalHandler{
		terminals:   terminals,
		vouchers:    vouchers,
		rates:       rates,
		defaultUses: defaultUses,
	}
}

func walletID(c *gin.Context) string {
	return c.GetString(middleware.CtxWalletID)
}

// Create handles POST /api/v1/terminals.
func (h *TerminalHandler) Create(c *gin.Context) {
	var req dto.TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	terminal, err := h.terminals.Create(c.Request.Context(), walletID(c), req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, terminal)
}

// Get handles GET /api/v1/terminals/:id.
func (h *TerminalHandler) Get(c *gin.Context) {
	terminal, err := h.terminals.Get(c.Request.Context(), walletID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, terminal)
}

// List handles GET /api/v1/terminals.
func (h *TerminalHandler) List(c *gin.Context) {
	terminals, err := h.terminals.List(c.Request.Context(), []string{walletID(c)})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, terminals)
}

// Update handles PUT /api/v1/terminals/:id.
func (h *TerminalHandler) Update(c *gin.Context) {
	var req dto.TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	terminal, err := h.terminals.Update(c.Request.Context(), walletID(c), c.Param("id"), req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, terminal)
}

// Delete handles DELETE /api/v1/terminals/:id.
func (h *TerminalHandler) Delete(c *gin.Context) {
	if err := h.terminals.Delete(c.Request.Context(), walletID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats handles GET /api/v1/terminals/:id/stats.
func (h *TerminalHandler) Stats(c *gin.Context) {
	stats, err := h.terminals.Stats(c.Request.Context(), walletID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Mint handles POST /api/v1/terminals/:id/vouchers.
func (h *TerminalHandler) Mint(c *gin.Context) {
	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	terminal, err := h.terminals.Get(c.Request.Context(), walletID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	tag := req.Tag
	if tag == "" {
		tag = domain.TagWithdrawRequest
	}
	uses := h.defaultUses
	if req.Uses != nil {
		uses = *req.Uses
	}

	result, err := h.vouchers.Mint(c.Request.Context(), terminal, tag, domain.WithdrawParams{
		MinWithdrawable:    req.MinWithdrawable,
		MaxWithdrawable:    req.MaxWithdrawable,
		DefaultDescription: req.DefaultDescription,
	}, uses, callbackBase(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.MintResponse{
		Voucher: result.Voucher,
		Secret:  result.Secret,
		Lnurl:   result.Lnurl,
	})
}

// Currencies handles GET /api/v1/currencies.
func (h *TerminalHandler) Currencies(c *gin.Context) {
	response.OK(c, dto.RegistryResponse{Items: h.rates.CurrencyCodes()})
}

// Providers handles GET /api/v1/providers.
func (h *TerminalHandler) Providers(c *gin.Context) {
	response.OK(c, dto.RegistryResponse{Items: h.rates.ProviderNames()})
}
