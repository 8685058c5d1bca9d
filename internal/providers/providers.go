// Package providers holds what the upstream location provider clients share.
package providers

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultUserAgent identifies this application to upstream services.
// Nominatim rejects requests without a meaningful User-Agent.
const DefaultUserAgent = "geolocator/1.0"

// HTTPOptions configures the HTTP clients used by provider packages
type HTTPOptions struct {
	UserAgent string
	// Timeout of zero leaves requests bounded only by their context
	Timeout time.Duration
}

// NewHTTPClient builds an http.Client honoring the options
func (o HTTPOptions) NewHTTPClient() *http.Client {
	return &http.Client{Timeout: o.Timeout}
}

// SetHeaders applies the common request headers
func (o HTTPOptions) SetHeaders(req *http.Request) {
	ua := o.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")
}

// StatusError is returned when a provider answers with a non-2xx status
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// IsSuccess reports whether code is in the 2xx range
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
