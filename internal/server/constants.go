package server

import "time"

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second

	// Housekeeping triggers run at most once per this interval, even
	// when several refresh cycles overlap it.
	maintenanceInterval = time.Minute
)
