package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig = errors.New("invalid config")

	// Network registry
	ErrUnknownNetwork   = errors.New("unknown network")
	ErrDuplicateNetwork = errors.New("duplicate network id")

	// Balance query
	ErrEmptyInput        = errors.New("empty address input")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrNetworkFailure    = errors.New("network failure")
	ErrUnexpectedFailure = errors.New("unexpected failure")
	ErrStaleResult       = errors.New("network switched while query was pending")

	// RPC endpoint
	ErrChainIDMismatch = errors.New("endpoint reports a different chain id")
)

// Error codes shared with the page via API responses.
const (
	ErrorInvalidConfig   = "ERROR_INVALID_CONFIG"
	ErrorInvalidRequest  = "ERROR_INVALID_REQUEST"
	ErrorUnknownNetwork  = "ERROR_UNKNOWN_NETWORK"
	ErrorEmptyInput      = "ERROR_EMPTY_INPUT"
	ErrorInvalidAddress  = "ERROR_INVALID_ADDRESS"
	ErrorNetworkFailure  = "ERROR_NETWORK_FAILURE"
	ErrorUnexpected      = "ERROR_UNEXPECTED"
	ErrorStaleResult     = "ERROR_STALE_RESULT"
	ErrorNetworkDialFail = "ERROR_NETWORK_DIAL_FAILED"
)
