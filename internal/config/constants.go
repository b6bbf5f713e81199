package config

import "time"

// Server
const (
	ServerReadTimeout    = 30 * time.Second
	ServerWriteTimeout   = 60 * time.Second
	ServerIdleTimeout    = 120 * time.Second
	ServerMaxHeaderBytes = 1 << 20
	ShutdownTimeout      = 10 * time.Second
	MaxRequestBodyBytes  = 4 << 10
)

// Logging
const (
	LogFilePrefix = "netbalance-"
	LogMaxAgeDays = 30
)

// Display
const (
	// BalanceDisplayPlaces is the number of fractional digits shown for the
	// display-unit balance. The raw smallest-unit value is never rounded.
	BalanceDisplayPlaces = 6
)

// RPC endpoint health
const (
	CircuitBreakerThreshold = 3
	HealthCheckTimeout      = 10 * time.Second
)

// Circuit breaker states
const (
	CircuitClosed = "closed"
	CircuitOpen   = "open"
)
