package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Fantasim/netbalance/internal/balance"
	"github.com/Fantasim/netbalance/internal/config"
	"github.com/Fantasim/netbalance/internal/models"
)

// QueryBalance handles POST /api/balance.
func QueryBalance(session *balance.Session, view *balance.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req models.BalanceRequest
		if err := decodeJSON(r, &req); err != nil {
			slog.Warn("invalid balance request body", "error", err)
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		// The view is shared by every tab, so a client that disconnects must
		// not turn its own cancellation into a rendered network error.
		_, err := session.Query(context.WithoutCancel(r.Context()), req.Address)
		if err != nil {
			var qerr *balance.QueryError
			if !errors.As(err, &qerr) {
				writeError(w, http.StatusInternalServerError, config.ErrorUnexpected, "Something went wrong. Please try again.")
				return
			}
			writeError(w, statusForKind(qerr.Kind), qerr.Kind.Code(), qerr.Message())
			return
		}

		writeJSONWithMeta(w, view.Snapshot(), time.Since(start))
	}
}

func statusForKind(k balance.Kind) int {
	switch k {
	case balance.KindEmptyInput, balance.KindInvalidAddress:
		return http.StatusBadRequest
	case balance.KindNetworkFailure:
		return http.StatusBadGateway
	case balance.KindStale:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
