package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plx_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plx_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "plx_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Store metrics
var (
	EntityMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plx_entity_mutations_total",
			Help: "Total number of create, update and delete operations",
		},
		[]string{"resource", "operation", "status"},
	)
)

// Import metrics
var (
	ImportItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plx_import_items_total",
			Help: "Total number of lines processed by the item importer",
		},
		[]string{"status"}, // "created", "failed", "skipped"
	)

	ImportRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "plx_import_running",
			Help: "Whether an item import is currently running (1 = running, 0 = idle)",
		},
	)
)

// RecordMutation counts one store mutation. status is "ok" or "error".
func RecordMutation(resource, operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EntityMutationsTotal.WithLabelValues(resource, operation, status).Inc()
}
