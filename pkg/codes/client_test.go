package codes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"codeName": "SPEED", "code": "B", "description": "high"},
			{"codeName": "IMPACT", "code": "F", "description": "front"},
			{"codeName": "SPEED", "code": "A", "description": "low"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL})
	records, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Fetch() returned %d records, want 3", len(records))
	}
	// Sorted by (CodeName, Code).
	if records[0].CodeName != "IMPACT" || records[1].Code != "A" || records[2].Code != "B" {
		t.Errorf("Fetch() order = %+v, want IMPACT/F, SPEED/A, SPEED/B", records)
	}
}

func TestClientProbeErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, "boom", http.StatusInternalServerError},
		{"not json", http.StatusOK, "<html>nope</html>", http.StatusOK},
		{"missing results", http.StatusOK, `{"data": []}`, http.StatusOK},
		{"empty results", http.StatusOK, `{"results": []}`, http.StatusOK},
		{"record without code", http.StatusOK, `{"results": [{"codeName": "SPEED"}]}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(ClientConfig{URL: server.URL}).Probe(context.Background())
			if err == nil {
				t.Fatal("Probe() expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Probe() error type = %T, want *APIError", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	_, err := NewClient(ClientConfig{URL: server.URL}).Probe(context.Background())
	if err == nil {
		t.Fatal("Probe() expected error for unreachable server, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Probe() error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", apiErr.StatusCode)
	}
}

func TestClientDefaults(t *testing.T) {
	c := NewClient(ClientConfig{})
	if c.config.URL != DefaultCatalogURL {
		t.Errorf("URL = %q, want default", c.config.URL)
	}
	if c.config.Timeout <= 0 {
		t.Errorf("Timeout = %v, want positive default", c.config.Timeout)
	}
}
