// Package metrics counts assistant flow calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeUpstreamFailure = "upstream_error"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "healthsphere_flow_requests_total",
			Help: "Assistant flow calls by flow and outcome",
		}, []string{"flow", "outcome"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthsphere_flow_duration_seconds",
			Help:    "Model latency of assistant flows",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"flow"}),
	}
}

func (m *Metrics) Observe(flow, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(flow, outcome).Inc()
	if outcome != OutcomeInvalidInput {
		m.Duration.WithLabelValues(flow).Observe(d.Seconds())
	}
}
