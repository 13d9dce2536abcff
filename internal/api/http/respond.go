package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/service"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeError maps service errors to a status and a message safe to show the
// caller. Validation messages are returned as is; everything else gets a
// generic message and the detail is logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	var derr *service.DomainRestrictionError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &derr):
		writeMessage(w, http.StatusForbidden, derr.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Unauthorized: user is not an admin")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrConflict):
		writeMessage(w, http.StatusConflict, "Conflict")
	case errors.Is(err, service.ErrNotConfigured):
		writeMessage(w, http.StatusServiceUnavailable, "Service not configured")
	case service.IsUnavailable(err):
		logger.Warn("Upstream unavailable", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	case errors.Is(err, service.ErrUpstream):
		logger.Error("Upstream error", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusBadGateway, "Upstream service error")
	default:
		logger.Error("Internal error", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads a JSON body into v. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}
