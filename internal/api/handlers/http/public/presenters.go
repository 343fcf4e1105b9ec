package public

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"autoClaims/internal/api/handlers/http/httperr"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := httperr.Status(err)

	l := h.log(r).With(
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	if status >= http.StatusInternalServerError {
		l.Error("handler error")
	} else {
		l.Warn("request rejected")
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
