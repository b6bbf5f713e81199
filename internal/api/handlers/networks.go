package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Fantasim/netbalance/internal/balance"
	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/models"
)

// ListNetworks handles GET /api/networks. Networks come back in shortcut order.
func ListNetworks(session *balance.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registry := session.Registry()
		active := session.Active().ID

		profiles := registry.All()
		out := make([]models.NetworkInfo, 0, len(profiles))
		for _, p := range profiles {
			out = append(out, models.NetworkInfo{
				ID:       string(p.ID),
				Name:     p.Name,
				Currency: p.Currency,
				Symbol:   p.Symbol,
				ChainID:  p.ChainID,
				Shortcut: registry.Shortcut(p.ID),
				Active:   p.ID == active,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// GetSession handles GET /api/session and returns what the page should show.
func GetSession(view *balance.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, view.Snapshot())
	}
}

// SwitchNetwork handles PUT /api/session/network.
func SwitchNetwork(session *balance.Session, view *balance.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SwitchNetworkRequest
		if err := decodeJSON(r, &req); err != nil {
			slog.Warn("invalid switch network body", "error", err)
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		id, err := session.Registry().Parse(req.Network)
		if err == nil {
			err = session.Switch(r.Context(), id)
		}
		if err != nil {
			if errors.Is(err, config.ErrUnknownNetwork) {
				writeError(w, http.StatusBadRequest, config.ErrorUnknownNetwork, "unknown network: "+req.Network)
				return
			}
			writeError(w, http.StatusBadGateway, config.ErrorNetworkDialFail, "could not connect to "+string(id))
			return
		}

		slog.Info("network selected via api",
			"network", id,
			"remoteAddr", r.RemoteAddr,
		)

		writeJSON(w, http.StatusOK, view.Snapshot())
	}
}
