package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the OpenAlex explorer service.
// Metrics are organized by subsystem: searches, lookups, upstream API
// requests, and record normalization. All counters and histograms are
// registered via promauto for automatic registration with the default
// Prometheus registry.
type Metrics struct {
	// SearchesStarted counts searches initiated, labeled by entity type.
	SearchesStarted *prometheus.CounterVec

	// SearchesCompleted counts successful searches, labeled by entity type.
	SearchesCompleted *prometheus.CounterVec

	// SearchesFailed counts failed searches, labeled by entity type.
	SearchesFailed *prometheus.CounterVec

	// SearchDuration observes search duration in seconds, labeled by entity type.
	SearchDuration *prometheus.HistogramVec

	// ResultsPerSearch observes the distribution of records returned per search.
	ResultsPerSearch *prometheus.HistogramVec

	// LookupsStarted counts by-identifier lookups initiated, labeled by entity type.
	LookupsStarted *prometheus.CounterVec

	// LookupsCompleted counts successful lookups, labeled by entity type.
	LookupsCompleted *prometheus.CounterVec

	// LookupsFailed counts failed lookups, labeled by entity type.
	LookupsFailed *prometheus.CounterVec

	// LookupDuration observes lookup duration in seconds, labeled by entity type.
	LookupDuration *prometheus.HistogramVec

	// UpstreamRequestsTotal counts requests to the OpenAlex API, labeled by endpoint.
	UpstreamRequestsTotal *prometheus.CounterVec

	// UpstreamRequestsFailed counts failed requests to the OpenAlex API,
	// labeled by endpoint and error type.
	UpstreamRequestsFailed *prometheus.CounterVec

	// UpstreamRequestDuration observes OpenAlex API request duration in seconds.
	UpstreamRequestDuration *prometheus.HistogramVec

	// UpstreamRateLimited counts requests that exhausted retries on rate limiting.
	UpstreamRateLimited prometheus.Counter

	// NormalizationFailures counts raw records skipped because they could not
	// be normalized, labeled by entity type.
	NormalizationFailures *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// Searches
		SearchesStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of searches started by entity type",
		}, []string{"entity"}),
		SearchesCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_completed_total",
			Help:      "Total number of searches completed by entity type",
		}, []string{"entity"}),
		SearchesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of searches that failed by entity type",
		}, []string{"entity"}),
		SearchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of searches in seconds by entity type",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"entity"}),
		ResultsPerSearch: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "results_per_search",
			Help:      "Number of records returned per search by entity type",
			Buckets:   []float64{0, 1, 3, 5, 10, 25, 50},
		}, []string{"entity"}),

		// Lookups
		LookupsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_started_total",
			Help:      "Total number of by-identifier lookups started by entity type",
		}, []string{"entity"}),
		LookupsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_completed_total",
			Help:      "Total number of by-identifier lookups completed by entity type",
		}, []string{"entity"}),
		LookupsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_failed_total",
			Help:      "Total number of by-identifier lookups that failed by entity type",
		}, []string{"entity"}),
		LookupDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Duration of by-identifier lookups in seconds by entity type",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"entity"}),

		// Upstream API
		UpstreamRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to the OpenAlex API",
		}, []string{"endpoint"}),
		UpstreamRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_failed_total",
			Help:      "Total number of failed requests to the OpenAlex API",
		}, []string{"endpoint", "error_type"}),
		UpstreamRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of requests to the OpenAlex API in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		UpstreamRateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_rate_limited_total",
			Help:      "Total number of requests that exhausted retries on rate limiting",
		}),

		// Normalization
		NormalizationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalization_failures_total",
			Help:      "Total number of raw records skipped during normalization",
		}, []string{"entity"}),
	}
}

// RecordSearchStarted records that a search has started.
func (m *Metrics) RecordSearchStarted(entity string) {
	m.SearchesStarted.WithLabelValues(entity).Inc()
}

// RecordSearchCompleted records that a search has completed.
func (m *Metrics) RecordSearchCompleted(entity string, resultCount int, durationSeconds float64) {
	m.SearchesCompleted.WithLabelValues(entity).Inc()
	m.SearchDuration.WithLabelValues(entity).Observe(durationSeconds)
	m.ResultsPerSearch.WithLabelValues(entity).Observe(float64(resultCount))
}

// RecordSearchFailed records that a search has failed.
func (m *Metrics) RecordSearchFailed(entity string, durationSeconds float64) {
	m.SearchesFailed.WithLabelValues(entity).Inc()
	m.SearchDuration.WithLabelValues(entity).Observe(durationSeconds)
}

// RecordLookupStarted records that a by-identifier lookup has started.
func (m *Metrics) RecordLookupStarted(entity string) {
	m.LookupsStarted.WithLabelValues(entity).Inc()
}

// RecordLookupCompleted records that a by-identifier lookup has completed.
func (m *Metrics) RecordLookupCompleted(entity string, durationSeconds float64) {
	m.LookupsCompleted.WithLabelValues(entity).Inc()
	m.LookupDuration.WithLabelValues(entity).Observe(durationSeconds)
}

// RecordLookupFailed records that a by-identifier lookup has failed.
func (m *Metrics) RecordLookupFailed(entity string, durationSeconds float64) {
	m.LookupsFailed.WithLabelValues(entity).Inc()
	m.LookupDuration.WithLabelValues(entity).Observe(durationSeconds)
}

// RecordUpstreamRequest records a request to the OpenAlex API.
func (m *Metrics) RecordUpstreamRequest(endpoint string, durationSeconds float64) {
	m.UpstreamRequestsTotal.WithLabelValues(endpoint).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordUpstreamRequestFailed records a failed request to the OpenAlex API.
func (m *Metrics) RecordUpstreamRequestFailed(endpoint, errorType string) {
	m.UpstreamRequestsFailed.WithLabelValues(endpoint, errorType).Inc()
}

// RecordUpstreamRateLimited records a request that exhausted retries on
// rate limiting.
func (m *Metrics) RecordUpstreamRateLimited() {
	m.UpstreamRateLimited.Inc()
}

// RecordNormalizationFailure records a raw record skipped during normalization.
func (m *Metrics) RecordNormalizationFailure(entity string) {
	m.NormalizationFailures.WithLabelValues(entity).Inc()
}
