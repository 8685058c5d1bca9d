package ipinfo

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

func TestClient_LookupPlace(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantStatus  int
		wantCity    string
		wantCountry string
	}{
		{
			name:        "city and country",
			status:      http.StatusOK,
			body:        `{"ip":"203.0.113.7","city":"Berlin","region":"Berlin","country":"DE","timezone":"Europe/Berlin"}`,
			wantCity:    "Berlin",
			wantCountry: "DE",
		},
		{
			name:        "bogon address without location",
			status:      http.StatusOK,
			body:        `{"ip":"10.0.0.1","bogon":true}`,
			wantCity:    "",
			wantCountry: "",
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       "Too Many Requests",
			wantErr:    true,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    "<html></html>",
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

			client := NewClient(server.URL, "", providers.HTTPOptions{}, discardLogger())
			got, err := client.LookupPlace(context.Background(), "")

			if tt.wantErr {
				if err == nil {
					t.Fatal("LookupPlace() expected error but got none")
				}
				if tt.wantStatus != 0 {
					var statusErr *providers.StatusError
					if !errors.As(err, &statusErr) {
						t.Fatalf("LookupPlace() error = %v, want *providers.StatusError", err)
					}
					if statusErr.StatusCode != tt.wantStatus {
						t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.wantStatus)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("LookupPlace() unexpected error = %v", err)
			}
			if got.City != tt.wantCity {
				t.Errorf("City = %q, want %q", got.City, tt.wantCity)
			}
			if got.Country != tt.wantCountry {
				t.Errorf("Country = %q, want %q", got.Country, tt.wantCountry)
			}
		})
	}
}

func TestClient_Lookup_RequestShape(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		ip        string
		wantPath  string
		wantQuery string
	}{
		{"own address without token", "", "", "/json", "token="},
		{"own address with token", "abc123", "", "/json", "token=abc123"},
		{"explicit address", "abc123", "203.0.113.7", "/203.0.113.7/json", "token=abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				_, _ = io.WriteString(w, `{"city":"Berlin","country":"DE"}`)
			}))
			defer server.Close()

			client := NewClient(server.URL, tt.token, providers.HTTPOptions{}, discardLogger())
			if _, err := client.Lookup(context.Background(), tt.ip); err != nil {
				t.Fatalf("Lookup() unexpected error = %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("query = %q, want %q", gotQuery, tt.wantQuery)
			}
		})
	}
}

func TestClient_Lookup_InvalidAddress(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", providers.HTTPOptions{}, discardLogger())

	for _, ip := range []string{"not-an-ip", "../admin", "203.0.113.7/json?x="} {
		if _, err := client.Lookup(context.Background(), ip); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidAddress", ip, err)
		}
	}
	if calls != 0 {
		t.Errorf("server received %d requests, want 0", calls)
	}
}
