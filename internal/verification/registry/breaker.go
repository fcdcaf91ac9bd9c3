package registry

import (
	"context"
	"log/slog"

	"healthsphere/internal/verification/metrics"
	"healthsphere/internal/verification/models"
	id "healthsphere/pkg/domain"
	"healthsphere/pkg/platform/circuit"
)

// Guarded fails fast with an outage error while the breaker is open.
// Only transient failures count against the breaker.
type Guarded struct {
	inner   Registry
	breaker *circuit.Breaker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewGuarded wraps inner with breaker.
func NewGuarded(inner Registry, breaker *circuit.Breaker, m *metrics.Metrics, logger *slog.Logger) *Guarded {
	return &Guarded{inner: inner, breaker: breaker, metrics: m, logger: logger}
}

func (g *Guarded) Lookup(ctx context.Context, license id.LicenseNumber) (*models.LookupResult, error) {
	if !g.breaker.Allow() {
		return nil, NewLookupError(CategoryOutage, g.breaker.Name(), "circuit open", nil)
	}

	result, err := g.inner.Lookup(ctx, license)
	if err != nil {
		if IsTransient(err) {
			if _, change := g.breaker.RecordFailure(); change.Opened {
				g.metrics.RecordBreakerTransition(circuit.StateOpen.String())
				if g.logger != nil {
					g.logger.WarnContext(ctx, "registry circuit opened", "registry", g.breaker.Name(), "error", err)
				}
			}
		}
		return nil, err
	}

	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.metrics.RecordBreakerTransition(circuit.StateClosed.String())
		if g.logger != nil {
			g.logger.InfoContext(ctx, "registry circuit closed", "registry", g.breaker.Name())
		}
	}
	return result, nil
}

// Health delegates to the wrapped registry when it supports health checks.
func (g *Guarded) Health(ctx context.Context) error {
	if hc, ok := g.inner.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}
