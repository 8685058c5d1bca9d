package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"geolocator/internal/metrics"
	"geolocator/internal/providers/openstreetmap"
	"geolocator/internal/sensor"
	"geolocator/internal/types"
)

// ReverseGeocodeProvider turns coordinates into an address
type ReverseGeocodeProvider interface {
	Reverse(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

// IPLookupProvider estimates a place from an IP address. An empty ip means
// the address the provider sees the request coming from.
type IPLookupProvider interface {
	LookupPlace(ctx context.Context, ip string) (types.Place, error)
}

// Observer receives every state a run publishes, in order
type Observer interface {
	Observe(State)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(State)

func (f ObserverFunc) Observe(s State) { f(s) }

// Request describes one resolution run
type Request struct {
	// Sensor is nil when the device has no location capability
	Sensor sensor.Sensor
	// IP optionally pins the address used for the IP lookup
	IP string
}

// Service resolves the approximate location of a user
type Service interface {
	// Resolve runs the fallback chain once and returns its terminal state.
	// The error is non-nil only when ctx ends the run early, in which case
	// the returned state is the last one published.
	Resolve(ctx context.Context, req Request, observers ...Observer) (State, error)
}

type locationService struct {
	reverseProvider ReverseGeocodeProvider
	ipProvider      IPLookupProvider
	logger          *slog.Logger
}

// NewLocationService creates a location service with custom providers
func NewLocationService(
	reverseProvider ReverseGeocodeProvider,
	ipProvider IPLookupProvider,
	logger *slog.Logger,
) Service {
	return &locationService{
		reverseProvider: reverseProvider,
		ipProvider:      ipProvider,
		logger:          logger.With("component", "location-service"),
	}
}

func (s *locationService) Resolve(ctx context.Context, req Request, observers ...Observer) (State, error) {
	started := time.Now()

	var current State = Pending{Status: StatusDetecting}
	st, err := transition(phaseStart, requested{sensorAvailable: sensor.Available(req.Sensor)})

	for {
		if err != nil {
			// only reachable through a bug in transition
			return current, fmt.Errorf("resolution aborted: %w", err)
		}

		current = st.state
		for _, o := range observers {
			o.Observe(current)
		}
		if st.fallback != "" {
			metrics.FallbacksTotal.WithLabelValues(st.fallback).Inc()
			s.logger.Debug("falling back to IP lookup", "reason", st.fallback)
		}

		if st.effect == effectNone {
			s.finish(current, time.Since(started))
			return current, nil
		}

		ev := s.perform(ctx, st, req)
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.CancelledTotal.Inc()
			s.logger.Debug("resolution cancelled", "phase", st.phase, "error", ctxErr)
			return current, ctxErr
		}

		st, err = transition(st.phase, ev)
	}
}

// perform runs the side effect of a step and reports what happened
func (s *locationService) perform(ctx context.Context, st step, req Request) event {
	switch st.effect {
	case effectRequestPosition:
		coords, err := req.Sensor.CurrentPosition(ctx)
		if err != nil {
			var sensorErr *sensor.Error
			if errors.As(err, &sensorErr) {
				s.logger.Warn("geolocation error",
					"code", int(sensorErr.Code),
					"message", sensorErr.Message,
				)
			} else {
				s.logger.Warn("geolocation error", "error", err)
			}
			return sensorFailed{err: err}
		}
		return positionObtained{coords: coords}

	case effectReverseGeocode:
		resp, err := s.reverseProvider.Reverse(ctx, st.coords.Latitude, st.coords.Longitude)
		if err != nil {
			metrics.ProviderRequestsTotal.WithLabelValues("reverse_geocode", "error").Inc()
			s.logger.Debug("reverse geocode failed",
				"latitude", st.coords.Latitude,
				"longitude", st.coords.Longitude,
				"error", err,
			)
			return reverseGeocodeFailed{err: err}
		}
		metrics.ProviderRequestsTotal.WithLabelValues("reverse_geocode", "ok").Inc()
		return placeFound{place: translatePlace(resp), coords: st.coords}

	case effectLookupIP:
		place, err := s.ipProvider.LookupPlace(ctx, req.IP)
		if err != nil {
			metrics.ProviderRequestsTotal.WithLabelValues("ip_lookup", "error").Inc()
			s.logger.Error("error fetching location by IP", "error", err)
			return ipLookupFailed{err: err}
		}
		metrics.ProviderRequestsTotal.WithLabelValues("ip_lookup", "ok").Inc()
		return ipPlaceFound{place: place}
	}

	// effectNone never reaches perform
	return nil
}

func (s *locationService) finish(final State, elapsed time.Duration) {
	metrics.ResolutionDuration.Observe(elapsed.Seconds())

	switch st := final.(type) {
	case Resolved:
		metrics.ResolutionsTotal.WithLabelValues("resolved", string(st.Location.Source)).Inc()
		s.logger.Info("location resolved",
			"city", st.Location.City,
			"country", st.Location.Country,
			"source", st.Location.Source,
			"elapsed", elapsed,
		)
	case Failed:
		metrics.ResolutionsTotal.WithLabelValues("failed", "").Inc()
		s.logger.Warn("location unavailable", "reason", st.Reason, "elapsed", elapsed)
	}
}

// translatePlace converts a Nominatim reverse lookup into a place. The
// city name prefers city, then town, then village.
func translatePlace(resp *openstreetmap.LookupAPIResponse) types.Place {
	if resp == nil {
		return types.Place{}
	}

	city := resp.Address.City
	if city == "" {
		city = resp.Address.Town
	}
	if city == "" {
		city = resp.Address.Village
	}

	return types.Place{
		City:    city,
		Country: resp.Address.Country,
	}
}
