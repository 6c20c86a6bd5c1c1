package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contacthub/contacthub-backend/internal/middleware"
	"github.com/contacthub/contacthub-backend/internal/models"
	"github.com/contacthub/contacthub-backend/internal/services"
)

// ContactsHandler serves contact CRUD and the share/unshare operations.
type ContactsHandler struct {
	contacts *services.ContactStore
}

func NewContactsHandler(contacts *services.ContactStore) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

type contactRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	ProfilePhoto  string `json:"profilePhoto,omitempty"`
}

func objectIDParam(r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	return id, err == nil
}

// Create inserts a contact owned by the route user. Any owner the caller
// put in the body is ignored.
func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := objectIDParam(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.ContactNumber == "" {
		respondError(w, http.StatusBadRequest, "First name, last name, email, and contact number are required")
		return
	}

	contact := &models.Contact{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		ProfilePhoto:  req.ProfilePhoto,
		Owner:         userID,
	}
	if err := h.contacts.Create(r.Context(), contact); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Contact created successfully!", map[string]any{"contact": contact})
}

// List returns contacts the route user owns or has shared access to.
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := objectIDParam(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	contacts, err := h.contacts.ListForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contacts retrieved successfully!", map[string]any{"contacts": contacts})
}

// Get returns one contact when the route user is its owner or a shared user.
func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := objectIDParam(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	contactID, ok := objectIDParam(r, "contactId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := h.contacts.GetForViewer(r.Context(), contactID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact retrieved successfully!", map[string]any{"contact": contact})
}

// Update merges patch fields into an owned contact.
func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := objectIDParam(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	contactID, ok := objectIDParam(r, "contactId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var req struct {
		FirstName     *string `json:"firstName"`
		LastName      *string `json:"lastName"`
		Email         *string `json:"email"`
		ContactNumber *string `json:"contactNumber"`
		ProfilePhoto  *string `json:"profilePhoto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := bson.M{}
	if req.FirstName != nil {
		patch["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		patch["last_name"] = *req.LastName
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.ContactNumber != nil {
		patch["contact_number"] = *req.ContactNumber
	}
	if req.ProfilePhoto != nil {
		patch["profile_photo"] = *req.ProfilePhoto
	}
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	contact, err := h.contacts.Update(r.Context(), contactID, userID, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact updated successfully", map[string]any{"contact": contact})
}

// Delete removes an owned contact.
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := objectIDParam(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	contactID, ok := objectIDParam(r, "contactId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	if err := h.contacts.Delete(r.Context(), contactID, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact deleted successfully", nil)
}

// Share grants the route user read access to a contact the caller owns.
// The response resolves sharedUsers to name/email display fields.
func (h *ContactsHandler) Share(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
		return
	}
	contactID, ok := objectIDParam(r, "contactId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}
	userID, ok := objectIDParam(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	contact, err := h.contacts.Share(r.Context(), contactID, userID, actor.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact shared successfully", contact)
}

// Unshare revokes the route user's access. Unsharing a user who was never
// shared is a no-op success.
func (h *ContactsHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
		return
	}
	contactID, ok := objectIDParam(r, "contactId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}
	userID, ok := objectIDParam(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	contact, err := h.contacts.Unshare(r.Context(), contactID, userID, actor.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Contact unshared successfully", contact)
}
