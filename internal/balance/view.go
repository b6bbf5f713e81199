package balance

import (
	"sync"

	"github.com/Fantasim/netbalance/internal/network"
)

// ViewState is a snapshot of what the page currently shows.
type ViewState struct {
	Network network.Profile `json:"network"`
	Loading bool            `json:"loading"`
	Result  *QueryResult    `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// View is a Renderer that keeps the visible page state in memory so it can
// be served to the browser. Safe for concurrent use.
type View struct {
	mu      sync.Mutex
	network network.Profile
	pending int
	result  *QueryResult
	errMsg  string
}

// NewView returns an empty view.
func NewView() *View {
	return &View{}
}

func (v *View) ShowNetwork(p network.Profile) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.network = p
}

// ShowLoading and HideLoading are counted so that overlapping queries keep
// the indicator up until the last one resolves.
func (v *View) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending++
}

func (v *View) HideLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending > 0 {
		v.pending--
	}
}

func (v *View) ShowResult(r QueryResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = &r
}

func (v *View) HideResult() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.result = nil
}

func (v *View) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errMsg = message
}

func (v *View) HideError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errMsg = ""
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := ViewState{
		Network: v.network,
		Loading: v.pending > 0,
		Error:   v.errMsg,
	}
	if v.result != nil {
		r := *v.result
		state.Result = &r
	}
	return state
}
