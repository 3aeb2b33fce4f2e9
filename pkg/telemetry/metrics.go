// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the risk engine.
//
// Metrics are registered against an injected registry so tests can use
// an isolated prometheus.NewRegistry(). All Metrics methods are nil-safe;
// a nil *Metrics records nothing.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

const metricsNamespace = "georisk"

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	// AssessmentsTotal counts completed assessments.
	// Labels: tier_class (free, premium), level (LOW, MEDIUM, HIGH)
	AssessmentsTotal *prometheus.CounterVec

	// AssessmentDurationSeconds measures end-to-end assessment latency.
	// Labels: tier_class
	AssessmentDurationSeconds *prometheus.HistogramVec

	// ProviderCallsTotal counts external signal lookups by result.
	// Labels: provider (sanctions, weather), status (ok, degraded), reason
	ProviderCallsTotal *prometheus.CounterVec

	// UnauthorizedTotal counts refused assessments.
	UnauthorizedTotal prometheus.Counter

	// QuickChecksTotal counts zone-only quick checks by level.
	QuickChecksTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AssessmentsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "assessments_total",
			Help:      "Route risk assessments by tier class and severity level",
		}, []string{"tier_class", "level"}),
		AssessmentDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "assessment_duration_seconds",
			Help:      "Route risk assessment latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"tier_class"}),
		ProviderCallsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "provider_calls_total",
			Help:      "External signal lookups by provider, status and degrade reason",
		}, []string{"provider", "status", "reason"}),
		UnauthorizedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "unauthorized_total",
			Help:      "Assessments refused for missing caller identity",
		}),
		QuickChecksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "quick_checks_total",
			Help:      "Zone-only quick checks by severity level",
		}, []string{"level"}),
	}
}

func tierClass(premium bool) string {
	if premium {
		return "premium"
	}
	return "free"
}

// ObserveAssessment records one completed assessment.
func (m *Metrics) ObserveAssessment(premium bool, level models.Level, d time.Duration) {
	if m == nil {
		return
	}
	m.AssessmentsTotal.WithLabelValues(tierClass(premium), string(level)).Inc()
	m.AssessmentDurationSeconds.WithLabelValues(tierClass(premium)).Observe(d.Seconds())
}

// ObserveProvider records one external lookup outcome.
func (m *Metrics) ObserveProvider(provider string, status models.OutcomeStatus, reason models.DegradeReason) {
	if m == nil {
		return
	}
	m.ProviderCallsTotal.WithLabelValues(provider, string(status), string(reason)).Inc()
}

// ObserveUnauthorized records a refused assessment.
func (m *Metrics) ObserveUnauthorized() {
	if m == nil {
		return
	}
	m.UnauthorizedTotal.Inc()
}

// ObserveQuickCheck records a quick check.
func (m *Metrics) ObserveQuickCheck(level models.Level) {
	if m == nil {
		return
	}
	m.QuickChecksTotal.WithLabelValues(string(level)).Inc()
}
