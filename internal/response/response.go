package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON shape every endpoint returns. Errors carries
// field-level detail for validation failures only.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

// FieldErrors writes a 400 failure envelope with one entry per violation.
func FieldErrors(w http.ResponseWriter, errs []FieldError) {
	write(w, http.StatusBadRequest, Envelope{Success: false, Message: "Validation error", Errors: errs})
}

func write(w http.ResponseWriter, status int, e Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(e)
}
