package donbalon

import "time"

const (
	// Name identifies this provider in logs and metrics.
	Name = "donbalon"

	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 10 * time.Second

	// Upstream error bodies are small JSON documents; cap reads so a
	// misbehaving response cannot balloon memory.
	maxErrorBodyBytes = 4 << 10
)
