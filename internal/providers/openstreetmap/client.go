package openstreetmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"geolocator/internal/providers"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Reverse/
// Sample request: https://nominatim.openstreetmap.org/reverse?format=json&lat=48.8566&lon=2.3522
const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	providerName   = "nominatim"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	opts       providers.HTTPOptions
	logger     *slog.Logger
}

func NewClient(baseURL string, opts providers.HTTPOptions, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: opts.NewHTTPClient(),
		baseURL:    baseURL,
		opts:       opts,
		logger:     logger.With("component", "nominatim-client"),
	}
}

// Reverse looks up the address closest to the given coordinates
func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*LookupAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("reverse")

	q := u.Query()
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.opts.SetHeaders(req)

	c.logger.Debug("reverse geocoding", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if !providers.IsSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Debug("reverse geocode returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var apiResp LookupAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &apiResp, nil
}
