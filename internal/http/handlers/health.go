package handlers

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/matchboard/internal/logging"
)

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the storage backend is reachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.readyFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if err := h.readyFn(r.Context()); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "readiness check failed", slog.Any("error", err))
		writeError(w, r, http.StatusServiceUnavailable, "storage unavailable", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}
