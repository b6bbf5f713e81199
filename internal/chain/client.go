package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/metrics"
	"github.com/Fantasim/netbalance/internal/network"
)

// BalanceReader is a client handle bound to one network's endpoint.
type BalanceReader interface {
	// Profile returns the network the handle targets.
	Profile() network.Profile
	// NativeBalance returns the balance of addr in the chain's smallest unit.
	NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error)
}

// Dialer builds a client handle for a profile.
type Dialer func(ctx context.Context, profile network.Profile) (BalanceReader, error)

// Client fetches native balances via ethclient JSON-RPC.
type Client struct {
	eth     *ethclient.Client
	rl      *RateLimiter
	cb      *CircuitBreaker
	profile network.Profile
}

// dial creates a client for profile's endpoint. HTTP endpoints are dialled
// lazily, so no request leaves the process until the first balance call.
func dial(ctx context.Context, profile network.Profile, rl *RateLimiter, cb *CircuitBreaker) (*Client, error) {
	slog.Debug("rpc client dialing",
		"network", profile.ID,
		"chainId", profile.ChainID,
	)

	eth, err := ethclient.DialContext(ctx, profile.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s RPC: %w", profile.ID, err)
	}

	return &Client{
		eth:     eth,
		rl:      rl,
		cb:      cb,
		profile: profile,
	}, nil
}

// NewDialer returns a Dialer that creates rate-limited ethclient handles.
// The rate limiter and circuit breaker of a network outlive its handles, so
// switching away and back neither resets the budget nor forgets a failing
// endpoint.
func NewDialer(rps int) Dialer {
	var (
		mu       sync.Mutex
		limiters = make(map[network.ID]*RateLimiter)
		breakers = make(map[network.ID]*CircuitBreaker)
	)

	return func(ctx context.Context, profile network.Profile) (BalanceReader, error) {
		mu.Lock()
		rl, ok := limiters[profile.ID]
		if !ok {
			rl = NewRateLimiter(string(profile.ID), rps)
			limiters[profile.ID] = rl
		}
		cb, ok := breakers[profile.ID]
		if !ok {
			cb = NewCircuitBreaker(string(profile.ID), config.CircuitBreakerThreshold)
			breakers[profile.ID] = cb
		}
		mu.Unlock()

		return dial(ctx, profile, rl, cb)
	}
}

// Profile returns the network this client targets.
func (c *Client) Profile() network.Profile { return c.profile }

// NativeBalance fetches the latest balance with a single eth_getBalance call.
func (c *Client) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	start := time.Now()
	balance, err := c.eth.BalanceAt(ctx, addr, nil)
	metrics.RPCLatency.WithLabelValues(string(c.profile.ID)).Observe(time.Since(start).Seconds())
	c.record(ctx, err)

	if err != nil {
		metrics.RPCErrorsTotal.WithLabelValues(string(c.profile.ID)).Inc()
		slog.Warn("rpc balance error",
			"network", c.profile.ID,
			"address", addr.Hex(),
			"error", err,
		)
		return nil, fmt.Errorf("eth_getBalance on %s: %w", c.profile.ID, err)
	}

	slog.Debug("rpc native balance fetched",
		"network", c.profile.ID,
		"address", addr.Hex(),
		"balance", balance.String(),
		"elapsed", time.Since(start).String(),
	)

	return balance, nil
}

// record feeds the breaker. A JSON-RPC error means the endpoint answered,
// and a cancelled caller says nothing about the endpoint.
func (c *Client) record(ctx context.Context, err error) {
	var rpcErr rpc.Error
	switch {
	case err == nil, errors.As(err, &rpcErr):
		c.cb.RecordSuccess()
	case ctx.Err() != nil:
	default:
		c.cb.RecordFailure()
	}
}

// EndpointState reports the breaker state of this client's endpoint.
func (c *Client) EndpointState() string {
	return c.cb.State()
}
