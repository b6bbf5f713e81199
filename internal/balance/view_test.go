package balance

import (
	"context"
	"math/big"
	"testing"

	"github.com/Fantasim/netbalance/internal/network"
)

func TestView_Signals(t *testing.T) {
	v := NewView()
	p, _ := network.DefaultRegistry().Lookup(network.Base)

	v.ShowNetwork(p)
	v.ShowLoading()
	v.ShowError("oops")

	got := v.Snapshot()
	if got.Network.ID != network.Base || !got.Loading || got.Error != "oops" || got.Result != nil {
		t.Fatalf("Snapshot() = %+v", got)
	}

	v.HideError()
	v.ShowResult(QueryResult{Address: testAddress, Balance: "1.000000", Wei: "1000000000000000000"})
	v.HideLoading()

	got = v.Snapshot()
	if got.Loading || got.Error != "" || got.Result == nil || got.Result.Balance != "1.000000" {
		t.Fatalf("Snapshot() = %+v", got)
	}

	v.HideResult()
	if v.Snapshot().Result != nil {
		t.Error("HideResult() left a result")
	}
}

func TestView_OverlappingLoading(t *testing.T) {
	v := NewView()

	v.ShowLoading()
	v.ShowLoading()
	v.HideLoading()
	if !v.Snapshot().Loading {
		t.Error("loading hidden while a query is still pending")
	}

	v.HideLoading()
	v.HideLoading() // extra hide must not go negative
	if v.Snapshot().Loading {
		t.Error("loading still visible after all queries resolved")
	}

	v.ShowLoading()
	if !v.Snapshot().Loading {
		t.Error("loading not visible after a new query started")
	}
}

func TestView_SnapshotIsCopy(t *testing.T) {
	v := NewView()
	v.ShowResult(QueryResult{Balance: "2.000000"})

	snap := v.Snapshot()
	snap.Result.Balance = "mutated"

	if v.Snapshot().Result.Balance != "2.000000" {
		t.Error("Snapshot() shares result with the view")
	}
}

func TestView_DrivenBySession(t *testing.T) {
	d := newFakeDialer()
	d.reader(network.Polygon).balance = big.NewInt(5e17)
	v := NewView()

	s, err := NewSession(context.Background(), network.DefaultRegistry(), d.dial, v, network.Polygon)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if _, err := s.Query(context.Background(), testAddress); err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	snap := v.Snapshot()
	if snap.Loading {
		t.Error("loading visible after query")
	}
	if snap.Result == nil || snap.Result.Balance != "0.500000" || snap.Result.Network.Currency != "MATIC" {
		t.Fatalf("result = %+v", snap.Result)
	}

	if err := s.Switch(context.Background(), network.Sepolia); err != nil {
		t.Fatalf("Switch() error = %v", err)
	}
	snap = v.Snapshot()
	if snap.Result != nil || snap.Network.Currency != "SepoliaETH" {
		t.Errorf("after switch = %+v", snap)
	}
}
