package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contacthub/contacthub-backend/internal/services"
)

// UsersHandler serves the non-admin user queries.
type UsersHandler struct {
	users *services.UserStore
}

func NewUsersHandler(users *services.UserStore) *UsersHandler {
	return &UsersHandler{users: users}
}

// OtherUsers lists every other approved, active "user"-role account. The
// frontend uses it as the share-candidate picker.
func (h *UsersHandler) OtherUsers(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	users, err := h.users.ListOtherUsers(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Users retrieved successfully!", users)
}
