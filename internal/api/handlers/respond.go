package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Fantasim/netbalance/internal/models"
)

// writeJSON writes a {"data": ...} response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.APIResponse{Data: data}); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// writeJSONWithMeta writes a 200 response carrying the handler's execution time.
func writeJSONWithMeta(w http.ResponseWriter, data interface{}, elapsed time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.APIResponse{
		Data: data,
		Meta: &models.APIMeta{ExecutionTime: elapsed.Milliseconds()},
	}); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.APIError{
		Error: models.APIErrorDetail{
			Code:    code,
			Message: message,
		},
	}); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}

// decodeJSON strictly decodes the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
