package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler("development")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Status      string  `json:"status"`
		Timestamp   string  `json:"timestamp"`
		Uptime      float64 `json:"uptime"`
		Environment string  `json:"environment"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.Status != "OK" {
		t.Errorf("status = %q, want OK", body.Status)
	}
	if body.Environment != "development" {
		t.Errorf("environment = %q", body.Environment)
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", body.Timestamp, err)
	}
	if body.Uptime < 0 {
		t.Errorf("uptime = %f", body.Uptime)
	}
}
