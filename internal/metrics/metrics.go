package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream catalog search
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wb_search_requests_total",
			Help: "Total number of catalog search calls by outcome",
		},
		[]string{"outcome"}, // "success", "error", "rate_limited", "circuit_open"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wb_search_duration_seconds",
			Help:    "Duration of catalog search calls including retries",
			Buckets: prometheus.DefBuckets,
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Candidate collection and assembly
	CandidatesAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capsule_candidates_accepted_total",
			Help: "Candidates accepted into a pool by category",
		},
		[]string{"category"},
	)

	CandidatesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capsule_candidates_rejected_total",
			Help: "Candidates rejected by the relevance filter by category",
		},
		[]string{"category"},
	)

	CollectorQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capsule_collector_query_failures_total",
			Help: "Planned queries whose search call failed",
		},
		[]string{"category"},
	)

	CapsulesAssembled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capsules_assembled_total",
			Help: "Total number of capsules assembled",
		},
	)

	FallbackPicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capsule_fallback_picks_total",
			Help: "Complements added by the backfill pass by category",
		},
		[]string{"category"},
	)

	// Enrichment
	EnrichmentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_requests_total",
			Help: "Feature enrichment calls by outcome",
		},
		[]string{"outcome"}, // "success", "error", "malformed", "rate_limited", "disabled"
	)

	EnrichmentCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_cache_hits_total",
			Help: "Enrichment cache hits",
		},
	)

	EnrichmentCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_cache_misses_total",
			Help: "Enrichment cache misses",
		},
	)

	// Images
	ImageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_fetches_total",
			Help: "Product image fetches by outcome",
		},
		[]string{"outcome"}, // "success", "not_found", "error"
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordAPIRequest records a completed API request
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSearch records one logical search call
func RecordSearch(outcome string, duration time.Duration) {
	SearchRequests.WithLabelValues(outcome).Inc()
	SearchDuration.Observe(duration.Seconds())
}

// SetCircuitBreakerState exports a breaker state as 0 (closed), 1 (half-open) or 2 (open)
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
