package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
)

type Metrics struct {
	Signups          *prometheus.CounterVec
	Reverifications  *prometheus.CounterVec
	AdminDecisions   *prometheus.CounterVec
	ShardLockWait    prometheus.Histogram
	PendingReviewLen prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Signups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_doctor_signups_total",
			Help: "Doctor signups by result",
		}, []string{"result"}),
		Reverifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_doctor_reverifications_total",
			Help: "License resubmissions on existing profiles by result",
		}, []string{"result"}),
		AdminDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_doctor_admin_decisions_total",
			Help: "Manual review decisions by outcome",
		}, []string{"decision"}),
		ShardLockWait: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthsphere_doctor_shard_lock_wait_seconds",
			Help:    "Time spent waiting to acquire a doctor shard lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		PendingReviewLen: f.NewGauge(prometheus.GaugeOpts{
			Name: "healthsphere_doctor_pending_review",
			Help: "Profiles returned by the last review queue listing",
		}),
	}
}

func (m *Metrics) IncrementSignup(result string) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementReverification(result string) {
	if m == nil {
		return
	}
	m.Reverifications.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementAdminDecision(decision string) {
	if m == nil {
		return
	}
	m.AdminDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) ObserveLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.ShardLockWait.Observe(d.Seconds())
}

func (m *Metrics) SetPendingReview(n int) {
	if m == nil {
		return
	}
	m.PendingReviewLen.Set(float64(n))
}
