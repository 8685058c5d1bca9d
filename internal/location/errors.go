package location

import (
	"errors"
	"fmt"

	"geolocator/internal/providers"
)

// Messages below are shown to users verbatim.

// ErrProviderDataIncomplete means the IP provider answered without a city or country
var ErrProviderDataIncomplete = errors.New("Location data not found in the IP-based response.")

const unknownIPErrorMessage = "An unknown error occurred while fetching your location via IP."

// ProviderHTTPError is a non-2xx answer from the IP provider
type ProviderHTTPError struct {
	Status int
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("The location service responded with an error: %d", e.Status)
}

// NetworkOrParseError is a transport or decoding failure of the IP lookup
type NetworkOrParseError struct {
	Err error
}

func (e *NetworkOrParseError) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return unknownIPErrorMessage
	}
	return e.Err.Error()
}

func (e *NetworkOrParseError) Unwrap() error {
	return e.Err
}

// classifyIPError maps an IP provider failure onto the user-visible taxonomy
func classifyIPError(err error) error {
	var statusErr *providers.StatusError
	if errors.As(err, &statusErr) {
		return &ProviderHTTPError{Status: statusErr.StatusCode}
	}
	return &NetworkOrParseError{Err: err}
}
