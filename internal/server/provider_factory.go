package server

import (
	"log/slog"

	"donbalon-gateway/internal/config"
	"donbalon-gateway/internal/metrics"
	"donbalon-gateway/internal/providers"
)

// providerFactory assembles the provider with shared wrappers
// (maintenance gate + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.BookingProvider {
	base := selectProvider(cfg, f.logger)
	// The gate keeps overlapping refresh cycles from hammering the
	// idempotent housekeeping endpoints.
	gated := providers.NewMaintenanceGate(base, maintenanceInterval, f.logger)
	return providers.NewRetryingProvider(gated, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}
