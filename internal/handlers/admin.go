package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contacthub/contacthub-backend/internal/models"
	"github.com/contacthub/contacthub-backend/internal/services"
)

// AdminHandler serves the role-gated user-management endpoints.
type AdminHandler struct {
	users *services.UserStore
}

func NewAdminHandler(users *services.UserStore) *AdminHandler {
	return &AdminHandler{users: users}
}

type adminCreateUserRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	ProfilePhoto  string `json:"profilePhoto,omitempty"`
	Password      string `json:"password"`
	Role          string `json:"role"`
}

// CreateUser lets an admin provision an account with an explicit role.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req adminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.ContactNumber == "" {
		respondError(w, http.StatusBadRequest, "First name, last name, email, and contact number are required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	user := &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		ProfilePhoto:  req.ProfilePhoto,
		Role:          req.Role,
		IsActive:      true,
	}
	if err := h.users.Create(r.Context(), user, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusCreated, "User created successfully!", map[string]any{"user": user})
}

// GetUsers lists every non-deleted, non-admin account.
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "Users retrieved successfully!", map[string]any{"users": users})
}

// GetUserByID returns a single user.
func (h *AdminHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "User retrieved successfully!", map[string]any{"user": user})
}

type adminUpdateUserRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contactNumber"`
	ProfilePhoto  *string `json:"profilePhoto"`
	Role          *string `json:"role"`
	IsApproved    *bool   `json:"isApproved"`
	IsActive      *bool   `json:"isActive"`
}

func (r *adminUpdateUserRequest) patch() bson.M {
	patch := bson.M{}
	if r.FirstName != nil {
		patch["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		patch["last_name"] = *r.LastName
	}
	if r.Email != nil {
		patch["email"] = *r.Email
	}
	if r.ContactNumber != nil {
		patch["contact_number"] = *r.ContactNumber
	}
	if r.ProfilePhoto != nil {
		patch["profile_photo"] = *r.ProfilePhoto
	}
	if r.Role != nil {
		patch["role"] = *r.Role
	}
	if r.IsApproved != nil {
		patch["is_approved"] = *r.IsApproved
	}
	if r.IsActive != nil {
		patch["is_active"] = *r.IsActive
	}
	return patch
}

// message infers the confirmation from which lifecycle flags the patch
// touched: approval grant, approval revoke, deactivation, or a plain update.
func (r *adminUpdateUserRequest) message() string {
	switch {
	case r.IsApproved != nil && *r.IsApproved:
		return "User approved successfully!"
	case r.IsApproved != nil:
		return "User approval revoked!"
	case r.IsActive != nil && !*r.IsActive:
		return "User deactivated successfully!"
	}
	return "User updated successfully!"
}

// UpdateUser patches a user; the success message reflects approval and
// activation toggles.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req adminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	patch := req.patch()
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	user, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, req.message(), map[string]any{"user": user})
}

// DeleteUser soft-deletes an account; the document stays in the collection
// and its email remains reserved.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.users.SoftDelete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "User deleted successfully!", nil)
}
