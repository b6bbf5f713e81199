package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Fantasim/netbalance/internal/balance"
)

// HealthHandler returns a handler for the GET /api/health endpoint.
func HealthHandler(session *balance.Session, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("health check requested", "remoteAddr", r.RemoteAddr)

		resp := map[string]string{
			"status":  "ok",
			"version": version,
			"network": string(session.Active().ID),
		}
		if state := session.EndpointState(); state != "" {
			resp["endpoint"] = state
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
