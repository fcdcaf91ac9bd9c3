package registry

import (
	"fmt"
	"log/slog"
	"time"

	"healthsphere/internal/platform/config"
	"healthsphere/internal/verification/metrics"
	"healthsphere/pkg/platform/circuit"
)

// Options assembles a registry from configuration.
type Options struct {
	Config  config.RegistryConfig
	Cache   Cache // nil disables caching
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// HTTPClient overrides the client used in http mode.
	HTTPClient HTTPDoer
}

// New builds the configured adapter and wraps it: the networked adapter gets a
// circuit breaker, and any adapter gets the cache when one is supplied.
func New(opts Options) (Registry, error) {
	var reg Registry
	switch opts.Config.Mode {
	case config.RegistryModeAllowlist, "":
		reg = NewAllowlist(opts.Config.Allowlist)
	case config.RegistryModeHTTP:
		if opts.Config.URL == "" {
			return nil, fmt.Errorf("registry url is required in http mode")
		}
		httpReg := NewHTTP(HTTPConfig{
			BaseURL:    opts.Config.URL,
			APIKey:     opts.Config.APIKey,
			Timeout:    opts.Config.Timeout,
			HTTPClient: opts.HTTPClient,
		})
		breaker := circuit.New(DefaultName,
			circuit.WithFailureThreshold(5),
			circuit.WithSuccessThreshold(1),
			circuit.WithCooldown(15*time.Second),
		)
		reg = NewGuarded(httpReg, breaker, opts.Metrics, opts.Logger)
	default:
		return nil, fmt.Errorf("unknown registry mode %q", opts.Config.Mode)
	}

	if opts.Cache != nil {
		reg = NewCached(reg, opts.Cache, opts.Metrics, opts.Logger)
	}
	return reg, nil
}
