package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// AsAppError unwraps err into an *AppError if one is in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ---- Resources (RES) ----

// ErrNotFound reports an unknown voucher secret, terminal id or similar.
func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Validation (VAL) ----

// Validation reports a malformed or out-of-bounds submission. The message is
// safe to surface to the caller, including over the LNURL wire envelope.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Security & Authentication (SEC) ----

func ErrInvalidAPIKey() *AppError {
	return New("SEC_001", "Invalid API key", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrNonceUsed() *AppError {
	return New("SEC_003", "Nonce has already been used", http.StatusForbidden)
}

// ---- Exchange rate providers (PRV) ----

// ErrProvider reports an exchange-rate fetch failure. The message is
// operator-facing and safe to surface verbatim.
func ErrProvider(currency, provider string, err error) *AppError {
	return Wrap(
		"PRV_001",
		fmt.Sprintf("Failed to fetch BTC/%s rate from %q", currency, provider),
		http.StatusBadGateway,
		err,
	)
}

func ErrUnknownProvider(provider string) *AppError {
	return New("PRV_002", fmt.Sprintf("Unknown exchange rate provider: %q", provider), http.StatusBadRequest)
}

func ErrUnknownCurrency(currency string) *AppError {
	return New("PRV_003", fmt.Sprintf("Unsupported fiat currency: %q", currency), http.StatusBadRequest)
}

// ---- Payments (PAY) ----

// ErrPaymentFailed carries a reason safe to show the redeeming wallet.
func ErrPaymentFailed(reason string, err error) *AppError {
	return Wrap("PAY_001", "Failed to pay invoice: "+reason, http.StatusBadGateway, err)
}

// ErrVoucherExhausted reports a redemption against a voucher with no uses
// left.
func ErrVoucherExhausted() *AppError {
	return New("PAY_002", "Maximum number of uses already reached", http.StatusBadRequest)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an unclassified internal error. The wrapped detail is
// logged server-side only; callers see the generic message.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_002", "Encryption service failure", http.StatusInternalServerError, err)
}
