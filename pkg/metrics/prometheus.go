// Package metrics provides Prometheus metrics for the SwimMeet API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Collection sizes
	swimmerCount prometheus.Gauge
	raceCount    prometheus.Gauge
	eventCount   prometheus.Gauge

	// Domain activity
	personalBests   prometheus.Counter
	rankingQueries  prometheus.Counter
	rankingLatency  prometheus.Histogram

	// Snapshot persistence
	snapshotWrites        prometheus.Counter
	snapshotWriteErrors   prometheus.Counter
	snapshotWriteDuration prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swimmeet",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of error responses by endpoint and method",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.swimmerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "swimmers_total",
		Help:      "Current number of registered swimmers",
	})

	m.raceCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "races_total",
		Help:      "Current number of recorded race results",
	})

	m.eventCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_total",
		Help:      "Number of swim events in the catalogue",
	})

	m.personalBests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "personal_bests_total",
		Help:      "Total number of race submissions flagged as personal bests",
	})

	m.rankingQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_queries_total",
		Help:      "Total number of rankings queries served",
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_latency_milliseconds",
		Help:      "Rankings derivation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_writes_total",
		Help:      "Total number of snapshot files rewritten after mutations",
	})

	m.snapshotWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_write_errors_total",
		Help:      "Total number of failed snapshot writes (mutations rolled back)",
	})

	m.snapshotWriteDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_write_duration_milliseconds",
		Help:      "Snapshot write duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the registry backing the global manager, for serving
// via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSwimmerCount sets the registered swimmer gauge.
func UpdateSwimmerCount(n int) {
	if globalManager.enabled {
		globalManager.swimmerCount.Set(float64(n))
	}
}

// UpdateRaceCount sets the recorded race gauge.
func UpdateRaceCount(n int) {
	if globalManager.enabled {
		globalManager.raceCount.Set(float64(n))
	}
}

// UpdateEventCount sets the event catalogue gauge.
func UpdateEventCount(n int) {
	if globalManager.enabled {
		globalManager.eventCount.Set(float64(n))
	}
}

// RecordPersonalBest counts a race submission flagged as a PB.
func RecordPersonalBest() {
	if globalManager.enabled {
		globalManager.personalBests.Inc()
	}
}

// RecordRankingQuery counts one served rankings query.
func RecordRankingQuery() {
	if globalManager.enabled {
		globalManager.rankingQueries.Inc()
	}
}

// RecordRankingLatency observes one rankings derivation duration.
func RecordRankingLatency(durationMs float64) {
	if globalManager.enabled {
		globalManager.rankingLatency.Observe(durationMs)
	}
}

// RecordSnapshotWrite counts one successful snapshot rewrite.
func RecordSnapshotWrite() {
	if globalManager.enabled {
		globalManager.snapshotWrites.Inc()
	}
}

// RecordSnapshotWriteError counts one failed snapshot write.
func RecordSnapshotWriteError() {
	if globalManager.enabled {
		globalManager.snapshotWriteErrors.Inc()
	}
}

// RecordSnapshotWriteDuration observes one snapshot write duration.
func RecordSnapshotWriteDuration(durationMs float64) {
	if globalManager.enabled {
		globalManager.snapshotWriteDuration.Observe(durationMs)
	}
}
