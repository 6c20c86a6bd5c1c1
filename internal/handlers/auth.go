package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/contacthub/contacthub-backend/internal/middleware"
	"github.com/contacthub/contacthub-backend/internal/models"
	"github.com/contacthub/contacthub-backend/internal/services"
)

// AuthHandler serves signup, signin and the password-reset flow.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup runs behind middleware.ValidateSignup; the payload in context has
// already passed field validation and the email-taken check.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := middleware.SignupFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.auth.Signup(r.Context(), &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		ProfilePhoto:  req.ProfilePhoto,
	}, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Signup successful!", map[string]any{"user": user})
}

// Signin runs behind middleware.ValidateSignin, which loaded the account and
// verified it is active, not deleted and approved.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	req, user, ok := middleware.SigninFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.auth.Signin(r.Context(), user, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Signin successful!", map[string]any{"token": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset token and mails the reset link.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Password reset link sent to email.", nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword exchanges an unexpired reset token for a new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		respondError(w, http.StatusBadRequest, "Token is required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Password reset successfully!", nil)
}

// Me returns the authenticated user attached by the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, "User retrieved successfully", map[string]any{"user": user})
}
