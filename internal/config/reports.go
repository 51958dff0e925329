package config

// ReportsConfig controls where downloaded PDF reports are stored.
type ReportsConfig struct {
	Dir           string
	RetentionDays int
}

func loadReports() ReportsConfig {
	return ReportsConfig{
		Dir:           envOrDefault(envReportsDir, defaultReportsDir),
		RetentionDays: intEnvOrDefault(envReportsDays, defaultReportsRetention),
	}
}
