package network

import (
	"fmt"
	"strings"

	"github.com/Fantasim/netbalance/internal/config"
)

// ID identifies a supported network.
type ID string

const (
	Ethereum ID = "ethereum"
	Polygon  ID = "polygon"
	Base     ID = "base"
	Sepolia  ID = "sepolia"
)

// Profile is the static descriptor of one supported chain.
type Profile struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	RPCURL   string `json:"-"`
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
	ChainID  uint64 `json:"chainId"`
	Decimals int    `json:"decimals"`
}

// Label is the "<symbol> <name>" form used in network displays.
func (p Profile) Label() string {
	return p.Symbol + " " + p.Name
}

// Registry is an ordered, read-only set of network profiles.
// Position matters: it drives the modifier+digit shortcut mapping.
type Registry struct {
	order    []ID
	profiles map[ID]Profile
}

// NewRegistry builds a registry from profiles in positional order.
// The first profile is the default.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one profile", config.ErrInvalidConfig)
	}

	r := &Registry{
		order:    make([]ID, 0, len(profiles)),
		profiles: make(map[ID]Profile, len(profiles)),
	}
	for _, p := range profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: profile %q has empty id", config.ErrInvalidConfig, p.Name)
		}
		if _, dup := r.profiles[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", config.ErrDuplicateNetwork, p.ID)
		}
		r.order = append(r.order, p.ID)
		r.profiles[p.ID] = p
	}
	return r, nil
}

// Lookup returns the profile for id, or ErrUnknownNetwork.
func (r *Registry) Lookup(id ID) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", config.ErrUnknownNetwork, id)
	}
	return p, nil
}

// Parse converts user input into a registered ID. Matching ignores case and
// surrounding whitespace.
func (r *Registry) Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := r.profiles[id]; !ok {
		return "", fmt.Errorf("%w: %q", config.ErrUnknownNetwork, s)
	}
	return id, nil
}

// All returns every profile in positional order.
func (r *Registry) All() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// ByShortcut maps a 1-based digit to the profile at that position.
func (r *Registry) ByShortcut(digit int) (Profile, error) {
	if digit < 1 || digit > len(r.order) {
		return Profile{}, fmt.Errorf("%w: no network bound to shortcut %d", config.ErrUnknownNetwork, digit)
	}
	return r.profiles[r.order[digit-1]], nil
}

// Shortcut returns the 1-based shortcut digit for id, or 0 if unregistered.
func (r *Registry) Shortcut(id ID) int {
	for i, v := range r.order {
		if v == id {
			return i + 1
		}
	}
	return 0
}

// Default returns the profile selected at startup.
func (r *Registry) Default() Profile {
	return r.profiles[r.order[0]]
}
