package config

// Config holds runtime configuration for the gateway.
type Config struct {
	Port            string
	RefreshInterval Duration
	Provider        string
	AdminToken      string
	Upstream        UpstreamConfig
	Metrics         MetricsConfig
	Reports         ReportsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Provider:        envOrDefault(envProvider, defaultProvider),
		AdminToken:      envOrDefault(envAdminToken, ""),
		Upstream:        loadUpstream(),
		Metrics:         loadMetrics(),
		Reports:         loadReports(),
	}
}
