// Package metrics exposes Prometheus counters for the submission
// pipeline.
//
// WHY METRICS WHEN WE ALREADY LOG?
// ────────────────────────────────
// Logs answer "what happened to this one request"; counters answer
// "how often does this happen". A dashboard on the rejected counter is
// how you notice that a client started sending broken submissions —
// without grepping a single log line.
//
// promauto.NewCounterVec registers each metric with the default
// Prometheus registry as a package-initialisation side effect; the
// Handler below serves that registry's state on GET /metrics in the
// standard exposition format.
package metrics

import (
	"net/http"

	"github.com/GeoSauer/courses-api/internal/rules"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values for the outcome dimension. Two values only — a counter
// label is not a place for free-form text (every distinct value becomes
// its own time series).
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

var (
	// submissionsTotal counts evaluated submissions by entity type and
	// outcome: courses_api_submissions_total{entity="course",outcome="rejected"}.
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courses_api",
		Name:      "submissions_total",
		Help:      "Submissions evaluated against the rule registry, by entity type and outcome.",
	}, []string{"entity", "outcome"})

	// violationsTotal counts individual rule violations by entity type
	// and rule kind. One rejected submission can increment this several
	// times — once per failed (field, rule) pair.
	violationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courses_api",
		Name:      "violations_total",
		Help:      "Rule violations seen in rejected submissions, by entity type and rule kind.",
	}, []string{"entity", "kind"})
)

// ObserveReport records the outcome of one evaluated submission.
// Call it exactly once per rule-registry check in a handler.
func ObserveReport(report rules.Report) {
	if report.OK() {
		submissionsTotal.WithLabelValues(report.EntityType, OutcomeAccepted).Inc()
		return
	}

	submissionsTotal.WithLabelValues(report.EntityType, OutcomeRejected).Inc()
	for _, v := range report.Violations {
		violationsTotal.WithLabelValues(report.EntityType, string(v.Kind)).Inc()
	}
}

// Handler returns the HTTP handler serving the Prometheus exposition
// endpoint. Mount it on GET /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
