package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-qr-keeper/models"
)

func TestWriteJSON(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "health", data: map[string]string{"status": "ok"}, status: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "toggle", data: models.ToggleResponse{ID: 4, IsActive: true}, status: http.StatusOK, wantBody: `{"id":4,"is_active":true}`},
		{name: "page", data: models.ShortLinkPage{Links: []models.ShortLink{}, Limit: 20}, status: http.StatusOK,
			wantBody: `{"links":[],"total":0,"limit":20,"offset":0,"has_more":false}`},
		{name: "created link", data: models.ShortLink{ID: 1, Code: "abc", OriginalURL: "https://example.com", IsActive: true, CreatedAt: created, UpdatedAt: created},
			status: http.StatusCreated,
			wantBody: `{"id":1,"code":"abc","is_custom_alias":false,"original_url":"https://example.com","click_count":0,"is_active":true,` +
				`"created_at":"2026-01-02T03:04:05Z","updated_at":"2026-01-02T03:04:05Z"}`},
		{name: "nil", data: nil, status: http.StatusOK, wantBody: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if n != len(tt.wantBody) {
				t.Errorf("expected %d bytes written, got %d", len(tt.wantBody), n)
			}
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("expected body %s, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, "link has expired", http.StatusGone)

	if w.Code != http.StatusGone {
		t.Errorf("expected status %d, got %d", http.StatusGone, w.Code)
	}
	if w.Body.String() != `{"error":"link has expired"}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}
