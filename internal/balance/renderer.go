package balance

import (
	"time"

	"github.com/Fantasim/netbalance/internal/network"
)

// Renderer receives the display signals produced by a Session.
// Implementations decide how (and whether) each signal becomes visible.
type Renderer interface {
	ShowNetwork(p network.Profile)
	ShowLoading()
	HideLoading()
	ShowResult(r QueryResult)
	HideResult()
	ShowError(message string)
	HideError()
}

// QueryResult is the outcome of one successful balance query.
type QueryResult struct {
	Address   string          `json:"address"`
	Wei       string          `json:"wei"`
	Balance   string          `json:"balance"`
	Network   network.Profile `json:"network"`
	QueriedAt time.Time       `json:"queriedAt"`
}
