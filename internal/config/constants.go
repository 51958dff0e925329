package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envAdminToken      = "ADMIN_TOKEN"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envReportsDir      = "REPORTS_DIR"
	envReportsDays     = "REPORTS_RETENTION_DAYS"

	defaultPort = "4000"
	// Reference data changes rarely outside mutations; mutations re-fetch on
	// their own, so the background cadence stays conservative.
	defaultRefreshInterval   = 5 * Duration(time.Minute)
	defaultProvider          = "donbalon"
	defaultMetricsPort       = "9090"
	defaultReportsDir        = "data/reports"
	defaultReportsRetention  = 30
	defaultUpstreamTimeoutMS = 10_000
)
