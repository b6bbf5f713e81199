package validate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Fantasim/netbalance/internal/config"
)

// Address validates that addr is a well-formed EVM address: lower-case 0x prefix,
// 40 hex characters, and a correct EIP-55 checksum when the hex body is
// mixed-case. All-lowercase and all-uppercase bodies carry no checksum.
func Address(addr string) error {
	slog.Debug("validating address", "address", addr)

	if !strings.HasPrefix(addr, "0x") {
		return fmt.Errorf("%w %q: missing 0x prefix", config.ErrInvalidAddress, addr)
	}
	if !common.IsHexAddress(addr) {
		return fmt.Errorf("%w %q: must be 0x followed by 40 hex characters", config.ErrInvalidAddress, addr)
	}

	body := addr[2:]
	if isMixedCase(body) && common.HexToAddress(addr).Hex() != "0x"+body {
		return fmt.Errorf("%w %q: bad EIP-55 checksum", config.ErrInvalidAddress, addr)
	}

	return nil
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
