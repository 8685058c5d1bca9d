// Package sensor models the device location capability a browser exposes.
//
// A nil Sensor means the capability is absent. Otherwise CurrentPosition
// yields coordinates or an *Error carrying the W3C geolocation code.
package sensor

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"geolocator/internal/types"
)

// Sensor requests the current position of the device
type Sensor interface {
	CurrentPosition(ctx context.Context) (types.Coords, error)
}

// Code is a W3C GeolocationPositionError code
type Code int

const (
	CodePermissionDenied    Code = 1
	CodePositionUnavailable Code = 2
	CodeTimeout             Code = 3
)

func (c Code) String() string {
	switch c {
	case CodePermissionDenied:
		return "PERMISSION_DENIED"
	case CodePositionUnavailable:
		return "POSITION_UNAVAILABLE"
	case CodeTimeout:
		return "TIMEOUT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(c))
	}
}

// Error is a failure reported by the sensor
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("geolocation error (%d): %s", int(e.Code), e.Message)
}

// Available reports whether s can be asked for a position
func Available(s Sensor) bool {
	return s != nil
}

type fixed struct {
	coords types.Coords
}

// Fixed returns a sensor that always yields coords
func Fixed(coords types.Coords) Sensor {
	return fixed{coords: coords}
}

func (f fixed) CurrentPosition(ctx context.Context) (types.Coords, error) {
	if err := ctx.Err(); err != nil {
		return types.Coords{}, err
	}
	return f.coords, nil
}

type failing struct {
	err *Error
}

// Failing returns a sensor that always fails with the given code
func Failing(code Code, message string) Sensor {
	return failing{err: &Error{Code: code, Message: message}}
}

func (f failing) CurrentPosition(ctx context.Context) (types.Coords, error) {
	if err := ctx.Err(); err != nil {
		return types.Coords{}, err
	}
	return types.Coords{}, f.err
}

var (
	ErrIncompleteCoordinates = errors.New("latitude and longitude must be given together")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
	ErrInvalidErrorCode      = errors.New("invalid error code")
)

// Report is what a browser tells us about its geolocation attempt.
// All fields are raw strings as received.
type Report struct {
	Latitude     string
	Longitude    string
	ErrorCode    string
	ErrorMessage string
}

// FromReport builds the sensor matching what the browser saw.
// An empty report means the browser has no geolocation capability and
// yields a nil Sensor. Coordinates win over an error code if both are set.
func FromReport(r Report) (Sensor, error) {
	switch {
	case r.Latitude != "" || r.Longitude != "":
		if r.Latitude == "" || r.Longitude == "" {
			return nil, ErrIncompleteCoordinates
		}
		lat, err := strconv.ParseFloat(r.Latitude, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinates, r.Latitude)
		}
		lon, err := strconv.ParseFloat(r.Longitude, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinates, r.Longitude)
		}
		coords := types.NewCoords(lat, lon)
		if err := coords.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
		}
		return Fixed(coords), nil
	case r.ErrorCode != "":
		code, err := strconv.Atoi(r.ErrorCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidErrorCode, r.ErrorCode)
		}
		return Failing(Code(code), r.ErrorMessage), nil
	default:
		return nil, nil
	}
}
