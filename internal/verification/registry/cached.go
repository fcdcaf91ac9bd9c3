package registry

import (
	"context"
	"errors"
	"log/slog"

	"healthsphere/internal/verification/metrics"
	"healthsphere/internal/verification/models"
	"healthsphere/internal/verification/registry/cache"
	id "healthsphere/pkg/domain"
)

// Cache stores lookup results by license number.
type Cache interface {
	Get(ctx context.Context, license id.LicenseNumber) (*models.LookupResult, error)
	Set(ctx context.Context, result *models.LookupResult) error
}

// Cached serves repeated lookups from a cache. Both positive and negative
// answers are cached; failures never are. Cache errors degrade to a direct lookup.
type Cached struct {
	inner   Registry
	cache   Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCached wraps inner with cache.
func NewCached(inner Registry, c Cache, m *metrics.Metrics, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, cache: c, metrics: m, logger: logger}
}

func (c *Cached) Lookup(ctx context.Context, license id.LicenseNumber) (*models.LookupResult, error) {
	cached, err := c.cache.Get(ctx, license)
	switch {
	case err == nil:
		c.metrics.RecordCacheHit()
		return cached, nil
	case errors.Is(err, cache.ErrMiss):
		c.metrics.RecordCacheMiss()
	default:
		c.metrics.RecordCacheMiss()
		c.warn(ctx, "registry cache read failed", license, err)
	}

	result, err := c.inner.Lookup(ctx, license)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, result); err != nil {
		c.warn(ctx, "registry cache write failed", license, err)
	}
	return result, nil
}

// Health delegates to the wrapped registry when it supports health checks.
func (c *Cached) Health(ctx context.Context) error {
	if hc, ok := c.inner.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}

func (c *Cached) warn(ctx context.Context, msg string, license id.LicenseNumber, err error) {
	if c.logger == nil {
		return
	}
	c.logger.WarnContext(ctx, msg, "license", license.Redacted(), "error", err)
}
