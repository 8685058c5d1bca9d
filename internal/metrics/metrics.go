package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geolocator_resolutions_total",
		Help: "Completed resolution runs by outcome and source",
	}, []string{"outcome", "source"})
	ResolutionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geolocator_resolution_duration_seconds",
		Help:    "Resolution run duration in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2, 5},
	})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geolocator_provider_requests_total",
		Help: "Upstream calls by provider and result",
	}, []string{"provider", "result"})
	FallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geolocator_fallbacks_total",
		Help: "Falls back to IP lookup by reason",
	}, []string{"reason"})
	CancelledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geolocator_cancelled_total",
		Help: "Resolution runs abandoned because the caller went away",
	})
)

// Registry holds the application collectors plus the Go runtime ones
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		ResolutionsTotal,
		ResolutionDuration,
		ProviderRequestsTotal,
		FallbacksTotal,
		CancelledTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
