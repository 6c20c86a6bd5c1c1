package handlers

import (
	"errors"
	"net/http"

	"github.com/contacthub/contacthub-backend/internal/response"
	"github.com/contacthub/contacthub-backend/internal/services"
)

func respondJSON(w http.ResponseWriter, status int, message string, data any) {
	response.JSON(w, status, message, data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	response.Error(w, status, message)
}

// respondServiceError translates store/service sentinel errors into HTTP
// statuses. Unknown errors become generic 500s with no detail leaked.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrContactNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyShared):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrShareWithSelf),
		errors.Is(err, services.ErrInvalidResetToken):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, services.ErrMailDelivery):
		respondError(w, http.StatusInternalServerError, "Failed to send reset link.")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
