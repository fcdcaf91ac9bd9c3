// Package metrics provides Prometheus metrics for the verification flow and
// the registry lookup cache.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage labels.
const (
	StageLookup     = "lookup"
	StageAssessment = "assessment"
	StageTotal      = "total"
)

// Metrics holds verification and registry collectors.
type Metrics struct {
	OutcomesTotal      *prometheus.CounterVec   // completed verifications by band
	FailuresTotal      *prometheus.CounterVec   // failed verifications by error kind
	StageDuration      *prometheus.HistogramVec // latency by stage
	Scores             prometheus.Histogram
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter
	RegistryErrors     *prometheus.CounterVec // lookup errors by category
	BreakerTransitions *prometheus.CounterVec // breaker state changes by target state
}

// New registers all collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OutcomesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_verification_outcomes_total",
			Help: "Completed verifications by score band",
		}, []string{"band"}),
		FailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_verification_failures_total",
			Help: "Verifications that ended without a score, by error kind",
		}, []string{"kind"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthsphere_verification_stage_duration_seconds",
			Help:    "Latency of each verification stage",
			Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		Scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthsphere_verification_score",
			Help:    "Distribution of final verification scores",
			Buckets: []float64{10, 25, 49, 60, 70, 75, 90, 95, 100},
		}),
		CacheHitsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "healthsphere_registry_cache_hits_total",
			Help: "Registry lookups served from cache",
		}),
		CacheMissesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "healthsphere_registry_cache_misses_total",
			Help: "Registry lookups that missed the cache",
		}),
		RegistryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_registry_errors_total",
			Help: "Registry lookup failures by category",
		}, []string{"category"}),
		BreakerTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_registry_breaker_transitions_total",
			Help: "Registry circuit breaker state changes",
		}, []string{"state"}),
	}
}

// ObserveOutcome records a completed verification.
func (m *Metrics) ObserveOutcome(band string, score int) {
	if m == nil {
		return
	}
	m.OutcomesTotal.WithLabelValues(band).Inc()
	m.Scores.Observe(float64(score))
}

// IncrementFailure records a verification that ended in error.
func (m *Metrics) IncrementFailure(kind string) {
	if m == nil {
		return
	}
	m.FailuresTotal.WithLabelValues(kind).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// RecordCacheHit records a registry cache hit.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// RecordCacheMiss records a registry cache miss.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

// IncrementRegistryError records a categorized lookup failure.
func (m *Metrics) IncrementRegistryError(category string) {
	if m == nil {
		return
	}
	m.RegistryErrors.WithLabelValues(category).Inc()
}

// RecordBreakerTransition records the breaker entering state ("open" or "closed").
func (m *Metrics) RecordBreakerTransition(state string) {
	if m == nil {
		return
	}
	m.BreakerTransitions.WithLabelValues(state).Inc()
}
