package config

import "time"

const (
	envUpstreamBaseURL = "BOOKING_API_URL"
	envUpstreamTimeout = "BOOKING_API_TIMEOUT"

	defaultUpstreamBaseURL = "http://localhost:8000"
)

// UpstreamConfig controls how we talk to the booking API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		BaseURL: envOrDefault(envUpstreamBaseURL, defaultUpstreamBaseURL),
		Timeout: durationEnvOrDefault(envUpstreamTimeout, defaultUpstreamTimeoutMS*time.Millisecond),
	}
}
