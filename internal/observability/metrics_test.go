package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: prometheus/promauto registers metrics globally, so we need to use
// unique namespaces per test to avoid registration conflicts.

func TestNewMetrics(t *testing.T) {
	// Use unique namespace to avoid conflicts with other tests
	m := NewMetrics("test_openalex_explorer_new")

	assert.NotNil(t, m.SearchesStarted)
	assert.NotNil(t, m.SearchesCompleted)
	assert.NotNil(t, m.SearchesFailed)
	assert.NotNil(t, m.SearchDuration)
	assert.NotNil(t, m.ResultsPerSearch)
	assert.NotNil(t, m.LookupsStarted)
	assert.NotNil(t, m.LookupsCompleted)
	assert.NotNil(t, m.LookupsFailed)
	assert.NotNil(t, m.LookupDuration)
	assert.NotNil(t, m.UpstreamRequestsTotal)
	assert.NotNil(t, m.UpstreamRequestsFailed)
	assert.NotNil(t, m.UpstreamRequestDuration)
	assert.NotNil(t, m.UpstreamRateLimited)
	assert.NotNil(t, m.NormalizationFailures)
}

func TestRecordSearchStarted(t *testing.T) {
	m := NewMetrics("test_search_started")

	m.RecordSearchStarted("publications")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchesStarted.WithLabelValues("publications")))
}

func TestRecordSearchCompleted(t *testing.T) {
	m := NewMetrics("test_search_completed")

	m.RecordSearchCompleted("authors", 5, 0.3)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchesCompleted.WithLabelValues("authors")))

	histCount, err := getHistogramSampleCount(m.SearchDuration.WithLabelValues("authors").(prometheus.Histogram))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), histCount)
}

func TestRecordSearchFailed(t *testing.T) {
	m := NewMetrics("test_search_failed")

	m.RecordSearchFailed("concepts", 1.0)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SearchesFailed.WithLabelValues("concepts")))
}

func TestRecordLookupStarted(t *testing.T) {
	m := NewMetrics("test_lookup_started")

	m.RecordLookupStarted("publications")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LookupsStarted.WithLabelValues("publications")))
}

func TestRecordLookupCompleted(t *testing.T) {
	m := NewMetrics("test_lookup_completed")

	m.RecordLookupCompleted("publications", 0.25)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LookupsCompleted.WithLabelValues("publications")))

	histCount, err := getHistogramSampleCount(m.LookupDuration.WithLabelValues("publications").(prometheus.Histogram))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), histCount)
}

func TestRecordLookupFailed(t *testing.T) {
	m := NewMetrics("test_lookup_failed")

	m.RecordLookupFailed("authors", 0.5)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LookupsFailed.WithLabelValues("authors")))
}

func TestRecordUpstreamRequest(t *testing.T) {
	m := NewMetrics("test_upstream_request")

	m.RecordUpstreamRequest("works_search", 0.5)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("works_search")))
}

func TestRecordUpstreamRequestFailed(t *testing.T) {
	m := NewMetrics("test_upstream_request_failed")

	m.RecordUpstreamRequestFailed("works_get", "not_found")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UpstreamRequestsFailed.WithLabelValues("works_get", "not_found")))
}

func TestRecordUpstreamRateLimited(t *testing.T) {
	m := NewMetrics("test_upstream_rate_limited")

	initial := testutil.ToFloat64(m.UpstreamRateLimited)
	m.RecordUpstreamRateLimited()
	assert.Equal(t, initial+1, testutil.ToFloat64(m.UpstreamRateLimited))
}

func TestRecordNormalizationFailure(t *testing.T) {
	m := NewMetrics("test_normalization_failure")

	m.RecordNormalizationFailure("work")
	m.RecordNormalizationFailure("work")
	assert.Equal(t, float64(2), testutil.ToFloat64(m.NormalizationFailures.WithLabelValues("work")))
}

// Helper to get histogram sample count
func getHistogramSampleCount(h prometheus.Histogram) (uint64, error) {
	ch := make(chan prometheus.Metric, 1)
	h.Collect(ch)
	close(ch)

	var m prometheus.Metric
	for m = range ch {
		break
	}

	var dto = &dto.Metric{}
	if err := m.Write(dto); err != nil {
		return 0, err
	}

	return dto.Histogram.GetSampleCount(), nil
}
