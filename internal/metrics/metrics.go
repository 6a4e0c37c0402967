// Package metrics defines the Prometheus collectors of the service and a
// recorder that feeds them from validation runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tsawler/stylecheck/model"
	"github.com/tsawler/stylecheck/report"
	"github.com/tsawler/stylecheck/rules"
)

const namespace = "stylecheck"

// Validation metrics
var (
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total number of completed validations",
		},
		[]string{"document_type"},
	)

	IssuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issues_total",
			Help:      "Total number of issues reported",
		},
		[]string{"severity"},
	)

	RuleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rule_duration_seconds",
			Help:      "Rule evaluation time distribution",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"rule"},
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Document model extraction time distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	ExtractionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Total number of documents that could not be read",
		},
	)
)

// Recorder feeds validation measurements into the package collectors.
type Recorder struct{}

// ObserveRule records one rule evaluation.
func (Recorder) ObserveRule(rule string, took time.Duration, _ int) {
	RuleDuration.WithLabelValues(rule).Observe(took.Seconds())
}

// ObserveReport records a finished validation and its issue counts.
func (Recorder) ObserveReport(dt model.DocumentType, s report.Summary) {
	ValidationsTotal.WithLabelValues(string(dt)).Inc()
	for _, sev := range rules.Severities {
		if n := s.Count(sev); n > 0 {
			IssuesTotal.WithLabelValues(string(sev)).Add(float64(n))
		}
	}
}

// ObserveExtraction records a model extraction or a failure to read.
func (Recorder) ObserveExtraction(took time.Duration, err error) {
	if err != nil {
		ExtractionFailures.Inc()
		return
	}
	ExtractionDuration.Observe(took.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
