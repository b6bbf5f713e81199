package chain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/network"
)

// HealthCheckResult holds the outcome of probing one network endpoint.
type HealthCheckResult struct {
	Network network.ID
	OK      bool
	ChainID uint64
	Latency time.Duration
	Error   error
}

// CheckEndpoints asks every endpoint for its chain id and compares it with
// the profile. Failures are logged and returned, never fatal. Results keep
// the order of profiles.
func CheckEndpoints(ctx context.Context, profiles []network.Profile) []HealthCheckResult {
	slog.Info("running endpoint health checks", "networks", len(profiles))

	results := make([]HealthCheckResult, len(profiles))
	var wg sync.WaitGroup

	for i, p := range profiles {
		wg.Add(1)
		go func(i int, p network.Profile) {
			defer wg.Done()

			start := time.Now()
			chainID, err := probeChainID(ctx, p)
			latency := time.Since(start)

			results[i] = HealthCheckResult{
				Network: p.ID,
				OK:      err == nil,
				ChainID: chainID,
				Latency: latency,
				Error:   err,
			}

			if err != nil {
				slog.Warn("endpoint health check FAILED",
					"network", p.ID,
					"latency", latency.Round(time.Millisecond),
					"error", err,
				)
			} else {
				slog.Info("endpoint health check OK",
					"network", p.ID,
					"chainId", chainID,
					"latency", latency.Round(time.Millisecond),
				)
			}
		}(i, p)
	}

	wg.Wait()

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}

	slog.Info("endpoint health checks complete",
		"total", len(results),
		"ok", len(results)-failed,
		"failed", failed,
	)

	return results
}

func probeChainID(ctx context.Context, p network.Profile) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.HealthCheckTimeout)
	defer cancel()

	eth, err := ethclient.DialContext(ctx, p.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("dial: %w", err)
	}
	defer eth.Close()

	id, err := eth.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}

	if !id.IsUint64() || id.Uint64() != p.ChainID {
		return id.Uint64(), fmt.Errorf("%w: got %s, want %d", config.ErrChainIDMismatch, id, p.ChainID)
	}

	return id.Uint64(), nil
}
