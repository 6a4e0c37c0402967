package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/report"
)

func TestRecorder_ObserveReport(t *testing.T) {
	validations := testutil.ToFloat64(ValidationsTotal.WithLabelValues("dissertation"))
	critical := testutil.ToFloat64(IssuesTotal.WithLabelValues("critical"))
	low := testutil.ToFloat64(IssuesTotal.WithLabelValues("low"))

	Recorder{}.ObserveReport(model.Dissertation, report.Summary{TotalIssues: 3, Critical: 2, Low: 1})

	assert.Equal(t, validations+1, testutil.ToFloat64(ValidationsTotal.WithLabelValues("dissertation")))
	assert.Equal(t, critical+2, testutil.ToFloat64(IssuesTotal.WithLabelValues("critical")))
	assert.Equal(t, low+1, testutil.ToFloat64(IssuesTotal.WithLabelValues("low")))
}

func TestRecorder_ObserveExtraction(t *testing.T) {
	failures := testutil.ToFloat64(ExtractionFailures)

	Recorder{}.ObserveExtraction(0, errors.New("bad zip"))
	Recorder{}.ObserveExtraction(10*time.Millisecond, nil)

	assert.Equal(t, failures+1, testutil.ToFloat64(ExtractionFailures))
}

func TestRecorder_ObserveRule(t *testing.T) {
	Recorder{}.ObserveRule("headings", time.Millisecond, 2)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(RuleDuration, "stylecheck_rule_duration_seconds"), 1)
}

func TestMiddleware(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	health := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/health", "200"))
	other := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "other", "404"))

	for _, path := range []string{"/api/health", "/nope/1", "/metrics"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, health+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/health", "200")))
	assert.Equal(t, other+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "other", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestHandler(t *testing.T) {
	Recorder{}.ObserveReport(model.Assignment, report.Summary{TotalIssues: 1, Medium: 1})

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stylecheck_validations_total")
}
