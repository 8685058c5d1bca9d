package location

import (
	"errors"
	"testing"

	"geolocator/internal/providers"
	"geolocator/internal/types"
)

func TestTransition(t *testing.T) {
	paris := types.NewCoords(48.8566, 2.3522)

	tests := []struct {
		name         string
		phase        phase
		event        event
		wantPhase    phase
		wantState    State
		wantEffect   effect
		wantFallback string
	}{
		{
			name:       "start with sensor requests permission",
			phase:      phaseStart,
			event:      requested{sensorAvailable: true},
			wantPhase:  phaseAwaitingDevicePermission,
			wantState:  Pending{Status: StatusRequestingPermission},
			wantEffect: effectRequestPosition,
		},
		{
			name:         "start without sensor goes to IP lookup",
			phase:        phaseStart,
			event:        requested{sensorAvailable: false},
			wantPhase:    phaseAwaitingIPLookup,
			wantState:    Pending{Status: StatusUsingIP},
			wantEffect:   effectLookupIP,
			wantFallback: fallbackSensorUnavailable,
		},
		{
			name:         "sensor denied falls back",
			phase:        phaseAwaitingDevicePermission,
			event:        sensorFailed{err: errors.New("denied")},
			wantPhase:    phaseAwaitingIPLookup,
			wantState:    Pending{Status: StatusUsingIP},
			wantEffect:   effectLookupIP,
			wantFallback: fallbackSensorFailed,
		},
		{
			name:       "coordinates trigger reverse geocode",
			phase:      phaseAwaitingDevicePermission,
			event:      positionObtained{coords: paris},
			wantPhase:  phaseAwaitingReverseGeocode,
			wantState:  Pending{Status: StatusFetchingPrecise},
			wantEffect: effectReverseGeocode,
		},
		{
			name:      "complete place resolves from device",
			phase:     phaseAwaitingReverseGeocode,
			event:     placeFound{place: types.Place{City: "Paris", Country: "France"}, coords: paris},
			wantPhase: phaseDone,
			wantState: Resolved{
				Location: types.ResolvedLocation{City: "Paris", Country: "France", Source: types.SourceDevice},
				Position: &paris,
			},
			wantEffect: effectNone,
		},
		{
			name:         "place without city falls back",
			phase:        phaseAwaitingReverseGeocode,
			event:        placeFound{place: types.Place{Country: "Spain"}, coords: paris},
			wantPhase:    phaseAwaitingIPLookup,
			wantState:    Pending{Status: StatusUsingIP},
			wantEffect:   effectLookupIP,
			wantFallback: fallbackReverseGeocode,
		},
		{
			name:         "reverse geocode failure falls back",
			phase:        phaseAwaitingReverseGeocode,
			event:        reverseGeocodeFailed{err: errors.New("connection refused")},
			wantPhase:    phaseAwaitingIPLookup,
			wantState:    Pending{Status: StatusUsingIP},
			wantEffect:   effectLookupIP,
			wantFallback: fallbackReverseGeocode,
		},
		{
			name:       "complete IP place resolves from network",
			phase:      phaseAwaitingIPLookup,
			event:      ipPlaceFound{place: types.Place{City: "Berlin", Country: "Germany"}},
			wantPhase:  phaseDone,
			wantState:  Resolved{Location: types.ResolvedLocation{City: "Berlin", Country: "Germany", Source: types.SourceNetwork}},
			wantEffect: effectNone,
		},
		{
			name:       "incomplete IP place fails",
			phase:      phaseAwaitingIPLookup,
			event:      ipPlaceFound{place: types.Place{City: "Berlin"}},
			wantPhase:  phaseDone,
			wantState:  Failed{Reason: "Location data not found in the IP-based response.", Err: ErrProviderDataIncomplete},
			wantEffect: effectNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transition(tt.phase, tt.event)
			if err != nil {
				t.Fatalf("transition() unexpected error = %v", err)
			}
			if got.phase != tt.wantPhase {
				t.Errorf("phase = %s, want %s", got.phase, tt.wantPhase)
			}
			if got.effect != tt.wantEffect {
				t.Errorf("effect = %d, want %d", got.effect, tt.wantEffect)
			}
			if got.fallback != tt.wantFallback {
				t.Errorf("fallback = %q, want %q", got.fallback, tt.wantFallback)
			}
			assertState(t, got.state, tt.wantState)
		})
	}
}

func TestTransition_IPLookupFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason string
		check      func(*testing.T, error)
	}{
		{
			name:       "rate limited",
			err:        &providers.StatusError{Provider: "ipinfo", StatusCode: 429},
			wantReason: "The location service responded with an error: 429",
			check: func(t *testing.T, err error) {
				var httpErr *ProviderHTTPError
				if !errors.As(err, &httpErr) || httpErr.Status != 429 {
					t.Errorf("Err = %v, want *ProviderHTTPError{429}", err)
				}
			},
		},
		{
			name:       "wrapped status error",
			err:        errors.Join(errors.New("outer"), &providers.StatusError{StatusCode: 503}),
			wantReason: "The location service responded with an error: 503",
		},
		{
			name:       "network failure",
			err:        errors.New("failed to fetch: connection refused"),
			wantReason: "failed to fetch: connection refused",
			check: func(t *testing.T, err error) {
				var netErr *NetworkOrParseError
				if !errors.As(err, &netErr) {
					t.Errorf("Err = %v, want *NetworkOrParseError", err)
				}
			},
		},
		{
			name:       "error without message",
			err:        errors.New(""),
			wantReason: "An unknown error occurred while fetching your location via IP.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transition(phaseAwaitingIPLookup, ipLookupFailed{err: tt.err})
			if err != nil {
				t.Fatalf("transition() unexpected error = %v", err)
			}
			failed, ok := got.state.(Failed)
			if !ok {
				t.Fatalf("state = %#v, want Failed", got.state)
			}
			if failed.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", failed.Reason, tt.wantReason)
			}
			if tt.check != nil {
				tt.check(t, failed.Err)
			}
		})
	}
}

func TestTransition_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		phase phase
		event event
	}{
		{"ip result before start", phaseStart, ipPlaceFound{}},
		{"coordinates during IP lookup", phaseAwaitingIPLookup, positionObtained{}},
		{"anything after done", phaseDone, requested{sensorAvailable: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := transition(tt.phase, tt.event); !errors.Is(err, errInvalidTransition) {
				t.Errorf("transition() error = %v, want errInvalidTransition", err)
			}
		})
	}
}

func assertState(t *testing.T, got, want State) {
	t.Helper()

	switch w := want.(type) {
	case Pending:
		g, ok := got.(Pending)
		if !ok || g != w {
			t.Errorf("state = %#v, want %#v", got, want)
		}
	case Resolved:
		g, ok := got.(Resolved)
		if !ok {
			t.Fatalf("state = %#v, want Resolved", got)
		}
		if g.Location != w.Location {
			t.Errorf("Location = %+v, want %+v", g.Location, w.Location)
		}
		if (g.Position == nil) != (w.Position == nil) {
			t.Errorf("Position = %v, want %v", g.Position, w.Position)
		} else if g.Position != nil && *g.Position != *w.Position {
			t.Errorf("Position = %v, want %v", *g.Position, *w.Position)
		}
	case Failed:
		g, ok := got.(Failed)
		if !ok {
			t.Fatalf("state = %#v, want Failed", got)
		}
		if g.Reason != w.Reason {
			t.Errorf("Reason = %q, want %q", g.Reason, w.Reason)
		}
		if w.Err != nil && !errors.Is(g.Err, w.Err) {
			t.Errorf("Err = %v, want %v", g.Err, w.Err)
		}
	default:
		t.Fatalf("unexpected want state %#v", want)
	}
}
