package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contacthub/contacthub-backend/internal/response"
	"github.com/contacthub/contacthub-backend/internal/services"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{services.ErrUserNotFound, http.StatusNotFound, services.ErrUserNotFound.Error()},
		{services.ErrContactNotFound, http.StatusNotFound, services.ErrContactNotFound.Error()},
		{services.ErrEmailTaken, http.StatusConflict, services.ErrEmailTaken.Error()},
		{services.ErrAlreadyShared, http.StatusConflict, services.ErrAlreadyShared.Error()},
		{services.ErrNotOwner, http.StatusForbidden, services.ErrNotOwner.Error()},
		{services.ErrShareWithSelf, http.StatusBadRequest, services.ErrShareWithSelf.Error()},
		{services.ErrInvalidResetToken, http.StatusBadRequest, services.ErrInvalidResetToken.Error()},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
		{services.ErrMailDelivery, http.StatusInternalServerError, "Failed to send reset link."},
		{errors.New("mongo: network timeout"), http.StatusInternalServerError, "Internal server error"},
		// Wrapped sentinels map to the same status.
		{fmt.Errorf("sharing: %w", services.ErrNotOwner), http.StatusForbidden, "sharing: " + services.ErrNotOwner.Error()},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		respondServiceError(rec, tt.err)

		if rec.Code != tt.wantStatus {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.wantStatus)
		}
		var body response.Envelope
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%v: decode: %v", tt.err, err)
		}
		if body.Success {
			t.Errorf("%v: success = true", tt.err)
		}
		if body.Message != tt.wantMsg {
			t.Errorf("%v: message = %q, want %q", tt.err, body.Message, tt.wantMsg)
		}
	}
}
