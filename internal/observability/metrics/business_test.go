package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	h, ok := o.(prometheus.Histogram)
	if !ok {
		t.Fatalf("observer %T is not a histogram", o)
	}
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordFeedFetch(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		success    bool
		wantResult string
	}{
		{name: "success", url: "https://example.com/a.rss", success: true, wantResult: "success"},
		{name: "failure", url: "https://example.com/b.rss", success: false, wantResult: "failure"},
		{name: "empty url", url: "", success: true, wantResult: "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := FeedFetchDuration.WithLabelValues(tt.url, tt.wantResult)
			before := histogramCount(t, obs)

			RecordFeedFetch(tt.url, 150*time.Millisecond, tt.success)

			assert.Equal(t, before+1, histogramCount(t, obs))
		})
	}
}

func TestRecordFeedFetchError(t *testing.T) {
	counter := FeedFetchErrors.WithLabelValues("https://example.com/err.rss", "timeout")
	before := testutil.ToFloat64(counter)

	RecordFeedFetchError("https://example.com/err.rss", "timeout")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordNewsItem(t *testing.T) {
	for _, outcome := range []string{OutcomeAdmitted, OutcomeDuplicate, OutcomeSkipped} {
		t.Run(outcome, func(t *testing.T) {
			counter := NewsItemsTotal.WithLabelValues(outcome)
			before := testutil.ToFloat64(counter)

			RecordNewsItem(outcome)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordDateParseFallback(t *testing.T) {
	before := testutil.ToFloat64(DateParseFallbacksTotal)
	RecordDateParseFallback()
	assert.Equal(t, before+1, testutil.ToFloat64(DateParseFallbacksTotal))
}

func TestRecordAggregationRun(t *testing.T) {
	before := testutil.ToFloat64(AggregationRunsTotal)

	RecordAggregationRun(2*time.Second, 3)

	assert.Equal(t, before+1, testutil.ToFloat64(AggregationRunsTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(SourcesFailedLastRun))
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET", "/api/news", "200", 30*time.Millisecond, 2048)
		RecordHTTPRequest("GET", "/", "200", time.Millisecond, 0)
	})
}

func TestRecordRateLimit(t *testing.T) {
	allowedBefore := testutil.ToFloat64(RateLimitRequestsTotal.WithLabelValues("allowed"))
	deniedBefore := testutil.ToFloat64(RateLimitRequestsTotal.WithLabelValues("denied"))

	RecordRateLimit(true)
	RecordRateLimit(true)
	RecordRateLimit(false)

	assert.Equal(t, allowedBefore+2, testutil.ToFloat64(RateLimitRequestsTotal.WithLabelValues("allowed")))
	assert.Equal(t, deniedBefore+1, testutil.ToFloat64(RateLimitRequestsTotal.WithLabelValues("denied")))

	SetRateLimitActiveKeys(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(RateLimitActiveKeys))
}
