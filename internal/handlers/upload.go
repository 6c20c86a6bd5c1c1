package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/contacthub/contacthub-backend/internal/services"
)

// maxUploadSize caps uploads at 5MB, matching the blob-storage policy.
const maxUploadSize = 5 << 20

// UploadHandler proxies multipart uploads to Cloudinary.
type UploadHandler struct {
	cloud *services.CloudinaryService
}

func NewUploadHandler(cloud *services.CloudinaryService) *UploadHandler {
	return &UploadHandler{cloud: cloud}
}

// Upload accepts a single "file" part and returns its public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.cloud == nil {
		respondError(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	// Unique object name, original filename preserved for readability.
	base := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	publicID := uuid.NewString() + "-" + base

	fileURL, err := h.cloud.Upload(r.Context(), file, "uploads", publicID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusOK, "File uploaded successfully", map[string]any{"fileUrl": fileURL})
}
