package chain

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// RateLimiter wraps a token bucket limiter for one RPC endpoint.
// It only spaces requests out; it never retries.
type RateLimiter struct {
	limiter *rate.Limiter
	name    string
}

// NewRateLimiter creates a rate limiter allowing rps requests per second.
func NewRateLimiter(name string, rps int) *RateLimiter {
	slog.Debug("rate limiter created",
		"network", name,
		"rps", rps,
	)
	return &RateLimiter{
		// Burst(1) keeps a held-down Enter key from bursting the endpoint.
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		name:    name,
	}
}

// Wait blocks until the limiter allows another request or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := rl.limiter.Wait(ctx); err != nil {
		slog.Warn("rate limiter wait cancelled",
			"network", rl.name,
			"error", err,
		)
		return err
	}
	return nil
}

// Name returns the network this limiter belongs to.
func (rl *RateLimiter) Name() string {
	return rl.name
}
