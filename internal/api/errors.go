package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ms-storefront/internal/auth"
	"ms-storefront/internal/catalog"
	"ms-storefront/internal/navigation"
	"ms-storefront/internal/outreach"
	"ms-storefront/internal/purchase"
	"ms-storefront/internal/purchase/qr"
	"ms-storefront/internal/session"
	"ms-storefront/internal/submission"
	"ms-storefront/internal/utils"
)

var (
	errBadRequest      = errors.New("invalid request body")
	errSessionRequired = errors.New("session required")
	errLoginRequired   = errors.New("login required")
	errNoFlow          = errors.New("no purchase in progress")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, errLoginRequired),
		errors.Is(err, errSessionRequired):
		return http.StatusUnauthorized
	case errors.Is(err, errBadRequest),
		errors.Is(err, navigation.ErrUnknownPage),
		errors.Is(err, qr.ErrInvalidCode),
		auth.IsValidationError(err),
		submission.IsValidationError(err),
		purchase.IsValidationError(err),
		outreach.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrEventNotFound),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, errNoFlow):
		return http.StatusNotFound
	case errors.Is(err, purchase.ErrSoldOut),
		errors.Is(err, purchase.ErrNoTicketInfo),
		errors.Is(err, session.ErrRSVPUnavailable),
		purchase.IsStateError(err):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("API", fmt.Sprintf("Request failed: %v", err))
	} else {
		h.Logger.Debug("API", fmt.Sprintf("Request rejected (%d): %v", status, err))
	}
	if encErr := utils.WriteJSON(w, status, utils.ErrorResponse(http.StatusText(status), err.Error())); encErr != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to encode error response: %v", encErr))
	}
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) error {
	return utils.WriteJSON(w, status, utils.SuccessResponse(message, data))
}
