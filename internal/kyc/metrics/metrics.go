// Package metrics provides observability for the verification pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the KYC module. All methods
// are nil-safe so callers can run without metrics wired.
type Metrics struct {
	// Verdicts by final status
	Verdicts *prometheus.CounterVec

	// Individual rule failures by reason
	Failures *prometheus.CounterVec

	// Per-stage pipeline latency
	StageDuration *prometheus.HistogramVec

	// Full verification latency
	VerifyDuration prometheus.Histogram
}

// New creates and registers all KYC metrics.
func New() *Metrics {
	return &Metrics{
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridoc_kyc_verdicts_total",
			Help: "Total verification verdicts by status",
		}, []string{"status"}),

		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridoc_kyc_rule_failures_total",
			Help: "Total rule failures by reason",
		}, []string{"reason"}),

		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veridoc_kyc_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"stage"}), // stage: "ocr", "pdf_text", "sharpness"

		VerifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veridoc_kyc_verify_duration_seconds",
			Help:    "Duration of full verifications",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementVerdict records one final verdict.
func (m *Metrics) IncrementVerdict(status string) {
	if m != nil {
		m.Verdicts.WithLabelValues(status).Inc()
	}
}

// IncrementFailure records one failed rule.
func (m *Metrics) IncrementFailure(reason string) {
	if m != nil {
		m.Failures.WithLabelValues(reason).Inc()
	}
}

// ObserveStage records the duration of one pipeline stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// ObserveVerify records the total verification duration.
func (m *Metrics) ObserveVerify(d time.Duration) {
	if m != nil {
		m.VerifyDuration.Observe(d.Seconds())
	}
}
