package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps operation errors onto HTTP statuses. Unknown errors
// become an opaque 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
		message = "Server error"
	}
	writeJSON(w, status, map[string]string{"message": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidBikeID),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrAlreadySold),
		errors.Is(err, service.ErrBrandRequired),
		errors.Is(err, service.ErrBrandAndModel),
		errors.Is(err, service.ErrNoFiles),
		errors.Is(err, service.ErrBikeIDRequired),
		errors.Is(err, service.ErrEmailPasswordRequired),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrNoProfileFields),
		errors.Is(err, service.ErrPasswordFieldsMissing),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrEmailFieldsMissing),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWrongCurrentEmail),
		errors.Is(err, service.ErrSameEmail),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrMessageRequired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrOwnPurchase):
		return http.StatusForbidden
	case errors.Is(err, service.ErrBikeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
