package httpapi

import (
	"context"
	"errors"
	"net/http"

	catalogapp "github.com/artvista/marketplace/internal/catalog/app"
	checkoutapp "github.com/artvista/marketplace/internal/checkout/app"
	identityapp "github.com/artvista/marketplace/internal/identity/app"
	"github.com/artvista/marketplace/pkg/httpx"
)

// httpStatusFromError classifies a core error into a status and a stable
// machine-readable code. Unrecognized errors are internal.
func httpStatusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, identityapp.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, identityapp.ErrPasswordMismatch):
		return http.StatusBadRequest, "PASSWORD_MISMATCH"
	case errors.Is(err, identityapp.ErrEmailAlreadyInUse):
		return http.StatusConflict, "EMAIL_IN_USE"
	case errors.Is(err, identityapp.ErrPhoneAlreadyRegistered):
		return http.StatusConflict, "PHONE_REGISTERED"
	case errors.Is(err, identityapp.ErrInvalidOTP):
		return http.StatusUnprocessableEntity, "INVALID_OTP"
	case errors.Is(err, identityapp.ErrOTPExpired):
		return http.StatusUnprocessableEntity, "OTP_EXPIRED"
	case errors.Is(err, identityapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusConflict, "EMPTY_CART"
	case errors.Is(err, checkoutapp.ErrNotForSale):
		return http.StatusConflict, "NOT_FOR_SALE"
	case errors.Is(err, checkoutapp.ErrMixedCurrency):
		return http.StatusConflict, "MIXED_CURRENCY"
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := httpStatusFromError(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
		httpx.Error(w, status, code, "internal error")
		return
	}
	httpx.Error(w, status, code, err.Error())
}
