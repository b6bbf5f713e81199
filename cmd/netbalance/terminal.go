package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/Fantasim/netbalance/internal/balance"
	"github.com/Fantasim/netbalance/internal/chain"
	"github.com/Fantasim/netbalance/internal/network"
)

// terminalRenderer draws session signals on the terminal for the check command.
type terminalRenderer struct {
	mu      sync.Mutex
	spinner *pterm.SpinnerPrinter
	network network.Profile
}

func (t *terminalRenderer) ShowNetwork(p network.Profile) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.network = p
	pterm.Info.Printfln("Network: %s (native currency %s)", p.Label(), p.Currency)
}

func (t *terminalRenderer) ShowLoading() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.spinner != nil {
		return
	}
	spinner, err := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start(fmt.Sprintf("Fetching balance on %s...", t.network.Name))
	if err != nil {
		return
	}
	t.spinner = spinner
}

func (t *terminalRenderer) HideLoading() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.spinner == nil {
		return
	}
	_ = t.spinner.Stop()
	t.spinner = nil
}

func (t *terminalRenderer) ShowResult(r balance.QueryResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopSpinner()

	_ = pterm.DefaultTable.WithData(pterm.TableData{
		{"Balance", fmt.Sprintf("%s %s", r.Balance, r.Network.Currency)},
		{"Wei", r.Wei},
		{"Address", r.Address},
		{"Network", r.Network.Label()},
	}).Render()
}

func (t *terminalRenderer) HideResult() {}

func (t *terminalRenderer) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopSpinner()
	pterm.Error.Println(message)
}

func (t *terminalRenderer) HideError() {}

// stopSpinner clears the spinner line before other output. Caller holds mu.
func (t *terminalRenderer) stopSpinner() {
	if t.spinner != nil {
		_ = t.spinner.Stop()
		t.spinner = nil
	}
}

// renderNetworks prints the registry as a table, marking the active network.
// A Status column is added when health results are given.
func renderNetworks(registry *network.Registry, active network.ID, health []chain.HealthCheckResult) error {
	status := make(map[network.ID]string, len(health))
	for _, h := range health {
		if h.OK {
			status[h.Network] = pterm.Green(fmt.Sprintf("ok %s", h.Latency.Round(time.Millisecond)))
		} else {
			status[h.Network] = pterm.Red(h.Error.Error())
		}
	}

	header := []string{"Key", "ID", "Network", "Currency", "Chain ID", ""}
	if health != nil {
		header = append(header, "Status")
	}

	data := pterm.TableData{header}
	for _, p := range registry.All() {
		marker := ""
		if p.ID == active {
			marker = "default"
		}
		row := []string{
			fmt.Sprintf("Ctrl+%d", registry.Shortcut(p.ID)),
			string(p.ID),
			p.Label(),
			p.Currency,
			fmt.Sprintf("%d", p.ChainID),
			marker,
		}
		if health != nil {
			row = append(row, status[p.ID])
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
