package location

import (
	"errors"
	"fmt"

	"geolocator/internal/types"
)

type phase int

const (
	phaseStart phase = iota
	phaseAwaitingDevicePermission
	phaseAwaitingReverseGeocode
	phaseAwaitingIPLookup
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseStart:
		return "start"
	case phaseAwaitingDevicePermission:
		return "awaiting-device-permission"
	case phaseAwaitingReverseGeocode:
		return "awaiting-reverse-geocode"
	case phaseAwaitingIPLookup:
		return "awaiting-ip-lookup"
	case phaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type event interface{ isEvent() }

type (
	requested struct {
		sensorAvailable bool
	}
	sensorFailed struct {
		err error
	}
	positionObtained struct {
		coords types.Coords
	}
	placeFound struct {
		place  types.Place
		coords types.Coords
	}
	reverseGeocodeFailed struct {
		err error
	}
	ipPlaceFound struct {
		place types.Place
	}
	ipLookupFailed struct {
		err error
	}
)

func (requested) isEvent()            {}
func (sensorFailed) isEvent()         {}
func (positionObtained) isEvent()     {}
func (placeFound) isEvent()           {}
func (reverseGeocodeFailed) isEvent() {}
func (ipPlaceFound) isEvent()         {}
func (ipLookupFailed) isEvent()       {}

type effect int

const (
	effectNone effect = iota
	effectRequestPosition
	effectReverseGeocode
	effectLookupIP
)

// Fallback reasons, used as metric labels
const (
	fallbackSensorUnavailable = "sensor_unavailable"
	fallbackSensorFailed      = "sensor_failed"
	fallbackReverseGeocode    = "reverse_geocode"
)

// step is the outcome of one transition
type step struct {
	phase  phase
	state  State
	effect effect
	// coords to reverse geocode when effect is effectReverseGeocode
	coords types.Coords
	// fallback is set when the step moves to IP lookup
	fallback string
}

var errInvalidTransition = errors.New("invalid transition")

func ipLookupStep(reason string) step {
	return step{
		phase:    phaseAwaitingIPLookup,
		state:    Pending{Status: StatusUsingIP},
		effect:   effectLookupIP,
		fallback: reason,
	}
}

// transition is the whole resolution policy: given the current phase and
// what just happened it returns what to publish and what to do next.
func transition(p phase, ev event) (step, error) {
	switch p {
	case phaseStart:
		if e, ok := ev.(requested); ok {
			if !e.sensorAvailable {
				return ipLookupStep(fallbackSensorUnavailable), nil
			}
			return step{
				phase:  phaseAwaitingDevicePermission,
				state:  Pending{Status: StatusRequestingPermission},
				effect: effectRequestPosition,
			}, nil
		}

	case phaseAwaitingDevicePermission:
		switch e := ev.(type) {
		case sensorFailed:
			return ipLookupStep(fallbackSensorFailed), nil
		case positionObtained:
			return step{
				phase:  phaseAwaitingReverseGeocode,
				state:  Pending{Status: StatusFetchingPrecise},
				effect: effectReverseGeocode,
				coords: e.coords,
			}, nil
		}

	case phaseAwaitingReverseGeocode:
		switch e := ev.(type) {
		case placeFound:
			if !e.place.Complete() {
				return ipLookupStep(fallbackReverseGeocode), nil
			}
			coords := e.coords
			return step{
				phase: phaseDone,
				state: Resolved{
					Location: types.ResolvedLocation{
						City:    e.place.City,
						Country: e.place.Country,
						Source:  types.SourceDevice,
					},
					Position: &coords,
				},
			}, nil
		case reverseGeocodeFailed:
			return ipLookupStep(fallbackReverseGeocode), nil
		}

	case phaseAwaitingIPLookup:
		switch e := ev.(type) {
		case ipPlaceFound:
			if !e.place.Complete() {
				return step{
					phase: phaseDone,
					state: Failed{Reason: ErrProviderDataIncomplete.Error(), Err: ErrProviderDataIncomplete},
				}, nil
			}
			return step{
				phase: phaseDone,
				state: Resolved{Location: types.ResolvedLocation{
					City:    e.place.City,
					Country: e.place.Country,
					Source:  types.SourceNetwork,
				}},
			}, nil
		case ipLookupFailed:
			err := classifyIPError(e.err)
			return step{
				phase: phaseDone,
				state: Failed{Reason: err.Error(), Err: err},
			}, nil
		}
	}

	return step{}, fmt.Errorf("%w: %T in phase %s", errInvalidTransition, ev, p)
}
