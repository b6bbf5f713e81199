package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Fantasim/netbalance/internal/chain"
	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/metrics"
	"github.com/Fantasim/netbalance/internal/network"
	"github.com/Fantasim/netbalance/internal/validate"
)

// Session owns the active network and its client handle.
//
// The active client always targets the active profile's endpoint: both are
// replaced together under mu. Every switch bumps generation, and a query
// only renders its outcome if the generation it started under is still
// current.
type Session struct {
	registry *network.Registry
	dial     chain.Dialer
	render   Renderer
	now      func() time.Time

	mu         sync.Mutex
	active     network.Profile
	client     chain.BalanceReader
	generation uint64
}

// NewSession creates a session and switches it to the initial network.
func NewSession(ctx context.Context, registry *network.Registry, dial chain.Dialer, render Renderer, initial network.ID) (*Session, error) {
	s := &Session{
		registry: registry,
		dial:     dial,
		render:   render,
		now:      time.Now,
	}

	if err := s.Switch(ctx, initial); err != nil {
		return nil, fmt.Errorf("initial network %q: %w", initial, err)
	}

	return s, nil
}

// Active returns the currently selected network.
func (s *Session) Active() network.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// EndpointState reports the circuit state of the active network's endpoint,
// or "" when the client does not track one.
func (s *Session) EndpointState() string {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	if m, ok := client.(interface{ EndpointState() string }); ok {
		return m.EndpointState()
	}
	return ""
}

// Registry returns the registry the session selects from.
func (s *Session) Registry() *network.Registry {
	return s.registry
}

// Switch makes id the active network. The previous client handle is dropped
// without a teardown call; a query still holding it finishes against it but
// its response is discarded. On error the session is left unchanged.
func (s *Session) Switch(ctx context.Context, id network.ID) error {
	profile, err := s.registry.Lookup(id)
	if err != nil {
		slog.Warn("network switch rejected", "network", id, "error", err)
		return err
	}

	client, err := s.dial(ctx, profile)
	if err != nil {
		slog.Error("network switch dial failed", "network", id, "error", err)
		return fmt.Errorf("dial %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.active.ID
	s.active = profile
	s.client = client
	s.generation++

	s.render.ShowNetwork(profile)
	s.render.HideResult()
	s.render.HideError()

	metrics.NetworkSwitchesTotal.WithLabelValues(string(profile.ID)).Inc()

	slog.Info("network switched",
		"from", previous,
		"to", profile.ID,
		"chainId", profile.ChainID,
		"generation", s.generation,
	)

	return nil
}

// SwitchShortcut switches to the network bound to a 1-based shortcut digit.
func (s *Session) SwitchShortcut(ctx context.Context, digit int) error {
	profile, err := s.registry.ByShortcut(digit)
	if err != nil {
		slog.Warn("network shortcut rejected", "digit", digit, "error", err)
		return err
	}
	return s.Switch(ctx, profile.ID)
}

// Query looks up the native balance of rawAddress on the active network and
// renders the result or error. Every failure is returned as a *QueryError.
//
// The loading indicator is shown once input is non-empty and hidden on every
// exit path after that, including a recovered panic.
func (s *Session) Query(ctx context.Context, rawAddress string) (result *QueryResult, err error) {
	address := strings.TrimSpace(rawAddress)

	s.mu.Lock()
	profile, client, gen := s.active, s.client, s.generation
	s.mu.Unlock()

	if address == "" {
		slog.Warn("balance query rejected: empty input", "network", profile.ID)
		return nil, s.fail(gen, profile, KindEmptyInput, config.ErrEmptyInput)
	}

	s.render.ShowLoading()
	defer s.render.HideLoading()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("balance query panicked", "network", profile.ID, "panic", r)
			result = nil
			err = s.fail(gen, profile, KindUnexpected, fmt.Errorf("panic: %v", r))
		}
	}()

	s.render.HideError()
	s.render.HideResult()

	if err := validate.Address(address); err != nil {
		slog.Warn("balance query rejected: invalid address",
			"network", profile.ID,
			"address", address,
		)
		return nil, s.fail(gen, profile, KindInvalidAddress, err)
	}

	slog.Info("fetching balance",
		"network", profile.ID,
		"address", address,
	)

	start := time.Now()
	wei, err := client.NativeBalance(ctx, common.HexToAddress(address))
	if err != nil {
		return nil, s.fail(gen, profile, classify(err), err)
	}
	if wei == nil {
		return nil, s.fail(gen, profile, KindUnexpected, errors.New("node returned no balance"))
	}

	res := QueryResult{
		Address:   address,
		Wei:       wei.String(),
		Balance:   FormatUnits(wei, profile.Decimals, config.BalanceDisplayPlaces),
		Network:   profile,
		QueriedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return nil, s.stale(profile, address)
	}

	s.render.ShowResult(res)
	metrics.QueriesTotal.WithLabelValues(string(profile.ID), metrics.OutcomeSuccess).Inc()

	slog.Info("balance fetched",
		"network", profile.ID,
		"address", address,
		"wei", res.Wei,
		"balance", res.Balance,
		"elapsed", time.Since(start).String(),
	)

	return &res, nil
}

// fail renders the error for kind unless the session moved on to another
// network since gen, in which case the outcome is discarded as stale.
func (s *Session) fail(gen uint64, profile network.Profile, kind Kind, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return s.stale(profile, "")
	}

	qerr := &QueryError{Kind: kind, Network: profile, Err: cause}
	s.render.ShowError(qerr.Message())
	metrics.QueriesTotal.WithLabelValues(string(profile.ID), kind.outcome()).Inc()

	if kind == KindNetworkFailure || kind == KindUnexpected {
		slog.Error("balance query failed",
			"network", profile.ID,
			"kind", kind.String(),
			"error", cause,
		)
	}

	return qerr
}

// stale must be called with mu held.
func (s *Session) stale(profile network.Profile, address string) error {
	metrics.QueriesTotal.WithLabelValues(string(profile.ID), metrics.OutcomeStale).Inc()
	slog.Warn("discarding stale balance response",
		"queriedNetwork", profile.ID,
		"activeNetwork", s.active.ID,
		"address", address,
	)
	return &QueryError{Kind: KindStale, Network: profile, Err: config.ErrStaleResult}
}
