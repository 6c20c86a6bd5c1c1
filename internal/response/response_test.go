package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, "Created!", map[string]any{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var e Envelope
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatal(err)
	}
	if !e.Success || e.Message != "Created!" {
		t.Errorf("envelope = %+v", e)
	}
	if e.Errors != nil {
		t.Errorf("success envelope carries errors: %v", e.Errors)
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusForbidden, "Forbidden: Insufficient permissions")

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	var e Envelope
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatal(err)
	}
	if e.Success || e.Message != "Forbidden: Insufficient permissions" {
		t.Errorf("envelope = %+v", e)
	}
	if e.Data != nil {
		t.Errorf("error envelope carries data: %v", e.Data)
	}
}

func TestFieldErrorsEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	FieldErrors(rec, []FieldError{
		{Field: "email", Message: "Invalid email format"},
		{Field: "password", Message: "Password must be at least 6 characters"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var e Envelope
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatal(err)
	}
	if e.Success || e.Message != "Validation error" {
		t.Errorf("envelope = %+v", e)
	}
	if len(e.Errors) != 2 || e.Errors[0].Field != "email" || e.Errors[1].Field != "password" {
		t.Errorf("errors = %v", e.Errors)
	}
}
