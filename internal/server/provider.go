package server

import (
	"log/slog"

	"donbalon-gateway/internal/config"
	"donbalon-gateway/internal/logging"
	"donbalon-gateway/internal/providers"
	"donbalon-gateway/internal/providers/donbalon"
	"donbalon-gateway/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.BookingProvider {
	switch cfg.Provider {
	case "fixture":
		return fixture.New()
	case "donbalon", "":
		return donbalon.NewClient(donbalon.Config{
			BaseURL: cfg.Upstream.BaseURL,
			Timeout: cfg.Upstream.Timeout,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture",
			slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

func normalizeProviderName(configured string, provider providers.BookingProvider) string {
	if configured != "" {
		return configured
	}
	if _, ok := provider.(*fixture.Provider); ok {
		return "fixture"
	}
	return donbalon.Name
}
