package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"donbalon-gateway/internal/admin"
	"donbalon-gateway/internal/http/middleware"
	"donbalon-gateway/internal/logging"
	"donbalon-gateway/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeFlowError maps a flow or provider error to a status. Missing
// records become 404, upstream API errors keep their status, wrapped
// transport failures become 502, and bare validation errors become 400
// carrying their Spanish message.
func writeFlowError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var notFound *admin.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, r, http.StatusNotFound, notFound.Message, logger)
		return
	}
	if apiErr, ok := providers.AsAPIError(err); ok {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		writeError(w, r, status, err.Error(), logger)
		return
	}
	if errors.Unwrap(err) != nil {
		writeError(w, r, http.StatusBadGateway, err.Error(), logger)
		return
	}
	writeError(w, r, http.StatusBadRequest, err.Error(), logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any, logger *slog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", logger)
		return false
	}
	return true
}
