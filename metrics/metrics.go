package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes recorded in MemeFetchesTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeHTTPError    = "http_error"
	OutcomeParseError   = "parse_error"
)

var (
	// Ops endpoint traffic; path is the matched gin route.
	OpsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests served by the health and metrics endpoints",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	OpsRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of the health and metrics endpoints in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"method", "path", "service"},
	)

	MemeFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meme_fetches_total",
			Help: "Total number of recent meme fetches by outcome",
		},
		[]string{"outcome"},
	)

	MemeFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meme_fetch_duration_seconds",
			Help:    "Recent meme fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	MemeResultsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meme_results_published_total",
			Help: "Total number of fetch results handed to the publisher",
		},
		[]string{"status"},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version"},
	)
)

// Init initializes metrics with default values
func Init(serviceName, version string) {
	ApplicationInfo.WithLabelValues(serviceName, version).Set(1)
}
