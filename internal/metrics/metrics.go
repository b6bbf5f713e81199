package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes used as the "outcome" label.
const (
	OutcomeSuccess        = "success"
	OutcomeEmptyInput     = "empty_input"
	OutcomeInvalidAddress = "invalid_address"
	OutcomeNetworkFailure = "network_failure"
	OutcomeUnexpected     = "unexpected"
	OutcomeStale          = "stale"
)

var (
	// QueriesTotal tracks balance queries per network and outcome
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netbalance_queries_total",
			Help: "Total number of balance queries",
		},
		[]string{"network", "outcome"},
	)

	// NetworkSwitchesTotal tracks successful network switches
	NetworkSwitchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netbalance_network_switches_total",
			Help: "Total number of network switches",
		},
		[]string{"network"},
	)

	// RPCLatency tracks eth_getBalance latency
	RPCLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netbalance_rpc_latency_seconds",
			Help:    "Balance RPC call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network"},
	)

	// RPCErrorsTotal tracks failed balance RPC calls
	RPCErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netbalance_rpc_errors_total",
			Help: "Total number of failed balance RPC calls",
		},
		[]string{"network"},
	)

	// CircuitState reports 1 for the current breaker state of each network endpoint
	CircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netbalance_rpc_circuit_state",
			Help: "Circuit breaker state per network endpoint (1 for the active state)",
		},
		[]string{"network", "state"},
	)
)
