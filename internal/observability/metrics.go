package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the REST
// backend and the fetch pipeline.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: route, method, status
	HTTPDuration *prometheus.HistogramVec // labels: route

	ForecastFetches *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration   prometheus.Histogram

	SamplesScored  prometheus.Counter
	SamplesSkipped prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ForecastFetches,
		m.FetchDuration,
		m.SamplesScored,
		m.SamplesSkipped,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry, avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surf",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),
		ForecastFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf",
			Name:      "forecast_fetches_total",
			Help:      "Forecast fetch attempts by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surf",
			Name:      "forecast_fetch_duration_seconds",
			Help:      "Duration of a complete fetch-merge-score cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SamplesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surf",
			Name:      "samples_scored_total",
			Help:      "Total hourly samples scored.",
		}),
		SamplesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surf",
			Name:      "samples_skipped_total",
			Help:      "Total hourly samples skipped for missing swell or wind fields.",
		}),
	}
}
