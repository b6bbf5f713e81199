package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Fantasim/netbalance/internal/balance"
	"github.com/Fantasim/netbalance/internal/chain"
	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/models"
	"github.com/Fantasim/netbalance/internal/network"
)

const testAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// newRPCServer answers eth_getBalance with 2.5 units (2.5e18 wei).
func newRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":"0x22b1c8c1227a0000"}`, req.ID)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupRouter(t *testing.T, rpcURL string) (http.Handler, *balance.Session, *balance.View) {
	t.Helper()

	registry, err := network.NewRegistry(
		network.Profile{ID: "alpha", Name: "Alpha Net", RPCURL: rpcURL, Currency: "ALP", Symbol: "🅰", ChainID: 100, Decimals: 18},
		network.Profile{ID: "beta", Name: "Beta Net", RPCURL: rpcURL, Currency: "BET", Symbol: "🅱", ChainID: 200, Decimals: 18},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	view := balance.NewView()
	session, err := balance.NewSession(context.Background(), registry, chain.NewDialer(100), view, "alpha")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	r := chi.NewRouter()
	r.Get("/api/health", HealthHandler(session, "test"))
	r.Get("/api/networks", ListNetworks(session))
	r.Get("/api/session", GetSession(view))
	r.Put("/api/session/network", SwitchNetwork(session, view))
	r.Post("/api/balance", QueryBalance(session, view))

	return r, session, view
}

func decodeData(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("unmarshal data: %v (body %s)", err, body)
	}
}

func decodeError(t *testing.T, body []byte) models.APIErrorDetail {
	t.Helper()
	var resp models.APIError
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return resp.Error
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	router, _, _ := setupRouter(t, newRPCServer(t).URL)

	w := do(router, "GET", "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var data map[string]string
	decodeData(t, w.Body.Bytes(), &data)
	if data["status"] != "ok" || data["network"] != "alpha" || data["version"] != "test" {
		t.Errorf("health = %v", data)
	}
	if data["endpoint"] != config.CircuitClosed {
		t.Errorf("endpoint = %q, want %q", data["endpoint"], config.CircuitClosed)
	}
}

func TestListNetworks(t *testing.T) {
	router, _, _ := setupRouter(t, newRPCServer(t).URL)

	w := do(router, "GET", "/api/networks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var nets []models.NetworkInfo
	decodeData(t, w.Body.Bytes(), &nets)

	if len(nets) != 2 {
		t.Fatalf("len = %d, want 2", len(nets))
	}
	if nets[0].ID != "alpha" || nets[0].Shortcut != 1 || !nets[0].Active {
		t.Errorf("nets[0] = %+v", nets[0])
	}
	if nets[1].ID != "beta" || nets[1].Shortcut != 2 || nets[1].Active {
		t.Errorf("nets[1] = %+v", nets[1])
	}
	if strings.Contains(w.Body.String(), "127.0.0.1") {
		t.Error("RPC endpoint leaked in network listing")
	}
}

func TestSwitchNetwork(t *testing.T) {
	router, session, _ := setupRouter(t, newRPCServer(t).URL)

	w := do(router, "PUT", "/api/session/network", `{"network":"BETA"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}

	var state balance.ViewState
	decodeData(t, w.Body.Bytes(), &state)
	if state.Network.ID != "beta" || state.Network.Currency != "BET" {
		t.Errorf("network = %+v", state.Network)
	}
	if session.Active().ID != "beta" {
		t.Errorf("Active() = %s, want beta", session.Active().ID)
	}
}

func TestSwitchNetwork_Unknown(t *testing.T) {
	router, session, _ := setupRouter(t, newRPCServer(t).URL)

	w := do(router, "PUT", "/api/session/network", `{"network":"gamma"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if e := decodeError(t, w.Body.Bytes()); e.Code != config.ErrorUnknownNetwork {
		t.Errorf("code = %q, want %q", e.Code, config.ErrorUnknownNetwork)
	}
	if session.Active().ID != "alpha" {
		t.Errorf("Active() = %s, want alpha", session.Active().ID)
	}
}

func TestSwitchNetwork_BadBody(t *testing.T) {
	router, _, _ := setupRouter(t, newRPCServer(t).URL)

	for _, body := range []string{"", "{", `{"net":"beta"}`} {
		w := do(router, "PUT", "/api/session/network", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestQueryBalance_Success(t *testing.T) {
	router, _, view := setupRouter(t, newRPCServer(t).URL)

	w := do(router, "POST", "/api/balance", `{"address":"`+testAddress+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}

	var state balance.ViewState
	decodeData(t, w.Body.Bytes(), &state)
	if state.Result == nil {
		t.Fatal("result missing")
	}
	if state.Result.Balance != "2.500000" || state.Result.Wei != "2500000000000000000" {
		t.Errorf("result = %+v", state.Result)
	}
	if state.Result.Network.Name != "Alpha Net" {
		t.Errorf("result network = %q", state.Result.Network.Name)
	}
	if state.Loading {
		t.Error("loading still set in response")
	}
	if view.Snapshot().Result == nil {
		t.Error("view has no result after query")
	}
}

func TestQueryBalance_Errors(t *testing.T) {
	tests := []struct {
		name    string
		address string
		status  int
		code    string
		message string
	}{
		{"empty", "   ", http.StatusBadRequest, config.ErrorEmptyInput, "Please enter an Ethereum address"},
		{"invalid", "0x1234", http.StatusBadRequest, config.ErrorInvalidAddress, "Invalid Ethereum address. Please check and try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, view := setupRouter(t, newRPCServer(t).URL)

			w := do(router, "POST", "/api/balance", `{"address":"`+tt.address+`"}`)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			e := decodeError(t, w.Body.Bytes())
			if e.Code != tt.code || e.Message != tt.message {
				t.Errorf("error = %+v, want %s / %q", e, tt.code, tt.message)
			}
			if snap := view.Snapshot(); snap.Error != tt.message || snap.Loading {
				t.Errorf("view = %+v", snap)
			}
		})
	}
}

func TestQueryBalance_NetworkFailure(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	router, _, view := setupRouter(t, url)

	w := do(router, "POST", "/api/balance", `{"address":"`+testAddress+`"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	e := decodeError(t, w.Body.Bytes())
	if e.Code != config.ErrorNetworkFailure || !strings.Contains(e.Message, "Alpha Net") {
		t.Errorf("error = %+v", e)
	}
	if snap := view.Snapshot(); snap.Result != nil || snap.Loading {
		t.Errorf("view = %+v", snap)
	}
}

func TestQueryBalance_DisconnectedClientStillCompletes(t *testing.T) {
	router, _, view := setupRouter(t, newRPCServer(t).URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest("POST", "/api/balance", strings.NewReader(`{"address":"`+testAddress+`"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	snap := view.Snapshot()
	if snap.Error != "" {
		t.Errorf("view error = %q, want none", snap.Error)
	}
	if snap.Result == nil || snap.Result.Balance != "2.500000" {
		t.Errorf("view result = %+v, want 2.500000", snap.Result)
	}
}

func TestGetSession(t *testing.T) {
	router, _, _ := setupRouter(t, newRPCServer(t).URL)

	w := do(router, "GET", "/api/session", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var state balance.ViewState
	decodeData(t, w.Body.Bytes(), &state)
	if state.Network.ID != "alpha" || state.Result != nil || state.Error != "" || state.Loading {
		t.Errorf("state = %+v", state)
	}
}
