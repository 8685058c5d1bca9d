package ipinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"geolocator/internal/providers"
	"geolocator/internal/types"
)

// API Docs: https://ipinfo.io/developers
// Sample request: https://ipinfo.io/json?token=
const (
	DefaultBaseURL = "https://ipinfo.io"
	providerName   = "ipinfo"
)

// ErrInvalidAddress is returned for an ip that is neither IPv4 nor IPv6
var ErrInvalidAddress = errors.New("invalid IP address")

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	opts       providers.HTTPOptions
	logger     *slog.Logger
}

// NewClient creates an ipinfo client. The token is optional; without one
// requests fall under the anonymous rate limit.
func NewClient(baseURL, token string, opts providers.HTTPOptions, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: opts.NewHTTPClient(),
		baseURL:    baseURL,
		token:      token,
		opts:       opts,
		logger:     logger.With("component", "ipinfo-client"),
	}
}

// Lookup geolocates ip, or the address the request originates from when ip is empty
func (c *Client) Lookup(ctx context.Context, ip string) (*LookupAPIResponse, error) {
	if ip != "" && net.ParseIP(ip) == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, ip)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if ip != "" {
		u = u.JoinPath(ip, "json")
	} else {
		u = u.JoinPath("json")
	}

	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.opts.SetHeaders(req)

	c.logger.Debug("looking up IP location", "ip", ip)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if !providers.IsSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ipinfo API returned error",
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

// LookupPlace is Lookup reduced to a city/country pair
func (c *Client) LookupPlace(ctx context.Context, ip string) (types.Place, error) {
	resp, err := c.Lookup(ctx, ip)
	if err != nil {
		return types.Place{}, err
	}
	return types.Place{City: resp.City, Country: resp.Country}, nil
}
