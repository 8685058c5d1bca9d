package openstreetmap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"geolocator/internal/providers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Reverse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantStatus  int
		wantCity    string
		wantTown    string
		wantCountry string
	}{
		{
			name:        "city and country",
			status:      http.StatusOK,
			body:        `{"place_id":1,"display_name":"Paris, France","address":{"city":"Paris","country":"France","country_code":"fr"}}`,
			wantCity:    "Paris",
			wantCountry: "France",
		},
		{
			name:        "town only",
			status:      http.StatusOK,
			body:        `{"address":{"town":"Aspen","country":"United States"}}`,
			wantTown:    "Aspen",
			wantCountry: "United States",
		},
		{
			name:   "unable to geocode",
			status: http.StatusOK,
			body:   `{"error":"Unable to geocode"}`,
		},
		{
			name:       "server error",
			status:     http.StatusServiceUnavailable,
			body:       "overloaded",
			wantErr:    true,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"address":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL, providers.HTTPOptions{}, discardLogger())
			got, err := client.Reverse(context.Background(), 48.8566, 2.3522)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Reverse() expected error but got none")
				}
				if tt.wantStatus != 0 {
					var statusErr *providers.StatusError
					if !errors.As(err, &statusErr) {
						t.Fatalf("Reverse() error = %v, want *providers.StatusError", err)
					}
					if statusErr.StatusCode != tt.wantStatus {
						t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.wantStatus)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("Reverse() unexpected error = %v", err)
			}
			if got.Address.City != tt.wantCity {
				t.Errorf("Address.City = %q, want %q", got.Address.City, tt.wantCity)
			}
			if got.Address.Town != tt.wantTown {
				t.Errorf("Address.Town = %q, want %q", got.Address.Town, tt.wantTown)
			}
			if got.Address.Country != tt.wantCountry {
				t.Errorf("Address.Country = %q, want %q", got.Address.Country, tt.wantCountry)
			}
		})
	}
}

func TestClient_Reverse_RequestShape(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `{"address":{}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, providers.HTTPOptions{UserAgent: "geolocator-test"}, discardLogger())
	if _, err := client.Reverse(context.Background(), 48.8566, 2.3522); err != nil {
		t.Fatalf("Reverse() unexpected error = %v", err)
	}

	if gotPath != "/reverse" {
		t.Errorf("path = %q, want /reverse", gotPath)
	}
	if want := "format=json&lat=48.8566&lon=2.3522"; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if gotUA != "geolocator-test" {
		t.Errorf("User-Agent = %q, want geolocator-test", gotUA)
	}
}

func TestClient_Reverse_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"address":{}}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, providers.HTTPOptions{}, discardLogger())
	_, err := client.Reverse(ctx, 1, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Reverse() error = %v, want context.Canceled", err)
	}
}
