package chain

import (
	"log/slog"
	"sync"

	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/metrics"
)

// CircuitBreaker tracks whether a network endpoint is failing. It only
// observes: calls are never refused, so a recovered endpoint answers the
// very next query.
//
// State machine:
//   - Closed: the endpoint answers. threshold consecutive transport
//     failures open it.
//   - Open: the endpoint is considered down. The next success closes it.
type CircuitBreaker struct {
	name string

	mu               sync.Mutex
	state            string
	consecutiveFails int
	threshold        int
}

// NewCircuitBreaker creates a closed breaker for the named endpoint.
func NewCircuitBreaker(name string, threshold int) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:      name,
		state:     config.CircuitClosed,
		threshold: threshold,
	}
	cb.publish()
	return cb
}

// RecordSuccess closes the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	previousState := cb.state
	cb.consecutiveFails = 0
	cb.state = config.CircuitClosed

	if previousState != config.CircuitClosed {
		slog.Info("endpoint recovered, circuit closed",
			"network", cb.name,
			"previousState", previousState,
		)
		cb.publish()
	}
}

// RecordFailure counts a transport failure and may open the circuit.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++

	if cb.state == config.CircuitClosed && cb.consecutiveFails >= cb.threshold {
		slog.Warn("endpoint failing, circuit opened",
			"network", cb.name,
			"consecutiveFails", cb.consecutiveFails,
			"threshold", cb.threshold,
		)
		cb.state = config.CircuitOpen
		cb.publish()
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// ConsecutiveFailures returns the current failure count.
func (cb *CircuitBreaker) ConsecutiveFailures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.consecutiveFails
}

// publish must be called with mu held.
func (cb *CircuitBreaker) publish() {
	for _, s := range []string{config.CircuitClosed, config.CircuitOpen} {
		v := 0.0
		if s == cb.state {
			v = 1
		}
		metrics.CircuitState.WithLabelValues(cb.name, s).Set(v)
	}
}
