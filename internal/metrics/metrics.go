package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builderclub_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "builderclub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Upstream providers (calendar, github, anthropic, sendgrid, firebase)
	UpstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builderclub_upstream_calls_total",
			Help: "Calls to third-party providers by outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)

	// Circuit breakers
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "builderclub_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builderclub_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builderclub_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builderclub_cache_hits_total",
			Help: "Proxy cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builderclub_cache_misses_total",
			Help: "Proxy cache misses",
		},
		[]string{"cache"},
	)

	// Jobs
	EventsMirrored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "builderclub_events_mirrored_total",
			Help: "Events written by the calendar mirror sync",
		},
	)

	EventSyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "builderclub_event_sync_duration_seconds",
			Help:    "Duration of a full calendar mirror sync",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ChatStreams = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "builderclub_chat_streams_total",
			Help: "Chat completions streamed by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordUpstream counts a provider call as success or failure.
func RecordUpstream(provider, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	UpstreamCalls.WithLabelValues(provider, operation, outcome).Inc()
}
