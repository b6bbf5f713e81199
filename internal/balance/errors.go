package balance

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/metrics"
	"github.com/Fantasim/netbalance/internal/network"
)

// Kind classifies a failed query.
type Kind int

const (
	KindUnexpected Kind = iota
	KindEmptyInput
	KindInvalidAddress
	KindNetworkFailure
	KindStale
)

var kindSentinels = map[Kind]error{
	KindUnexpected:     config.ErrUnexpectedFailure,
	KindEmptyInput:     config.ErrEmptyInput,
	KindInvalidAddress: config.ErrInvalidAddress,
	KindNetworkFailure: config.ErrNetworkFailure,
	KindStale:          config.ErrStaleResult,
}

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "EmptyInput"
	case KindInvalidAddress:
		return "InvalidAddress"
	case KindNetworkFailure:
		return "NetworkFailure"
	case KindStale:
		return "Stale"
	default:
		return "UnexpectedFailure"
	}
}

// Code returns the API error code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindEmptyInput:
		return config.ErrorEmptyInput
	case KindInvalidAddress:
		return config.ErrorInvalidAddress
	case KindNetworkFailure:
		return config.ErrorNetworkFailure
	case KindStale:
		return config.ErrorStaleResult
	default:
		return config.ErrorUnexpected
	}
}

func (k Kind) outcome() string {
	switch k {
	case KindEmptyInput:
		return metrics.OutcomeEmptyInput
	case KindInvalidAddress:
		return metrics.OutcomeInvalidAddress
	case KindNetworkFailure:
		return metrics.OutcomeNetworkFailure
	case KindStale:
		return metrics.OutcomeStale
	default:
		return metrics.OutcomeUnexpected
	}
}

// QueryError is returned by Session.Query for every failed query.
type QueryError struct {
	Kind    Kind
	Network network.Profile
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is matches the config sentinel for the error's kind, so callers can use
// errors.Is(err, config.ErrNetworkFailure) without unwrapping by hand.
func (e *QueryError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Message is the user-facing text for the failure.
func (e *QueryError) Message() string {
	switch e.Kind {
	case KindEmptyInput:
		return "Please enter an Ethereum address"
	case KindInvalidAddress:
		return "Invalid Ethereum address. Please check and try again."
	case KindNetworkFailure:
		return "Network error on " + e.Network.Name + ". Please try again."
	case KindStale:
		return "Network changed to another chain before the balance arrived."
	default:
		return "Something went wrong. Please try again."
	}
}

// classify maps an error from the remote call onto a failure kind.
func classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnexpected
	case errors.Is(err, config.ErrInvalidAddress):
		return KindInvalidAddress
	case strings.Contains(err.Error(), "Invalid"):
		// Node rejections such as "Invalid params" point at the address too.
		return KindInvalidAddress
	case isNetworkError(err):
		return KindNetworkFailure
	default:
		return KindUnexpected
	}
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// JSON-RPC errors reported by the node itself are not transport failures,
	// even when the node's message mentions the network.
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "network") || strings.Contains(msg, "connection")
}
