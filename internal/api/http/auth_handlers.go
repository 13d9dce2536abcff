package http

import (
	"errors"
	"net/http"

	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/service"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	token, err := h.svc.Auth.Register(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"customToken": token})
	case errors.Is(err, service.ErrConflict):
		writeMessage(w, http.StatusConflict, "An account with this email already exists. Try signing in instead.")
	default:
		var verr *service.ValidationError
		var derr *service.DomainRestrictionError
		if errors.As(err, &verr) || errors.As(err, &derr) {
			writeError(w, r, err)
			return
		}
		logger.Error("Registration error", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Registration failed. Please try again.")
	}
}

// Login is served only by the local identity backend; hosted identity
// providers sign users in on the client.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}
	token, err := h.svc.Auth.Login(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	case errors.Is(err, service.ErrNotConfigured):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password.")
	default:
		writeError(w, r, err)
	}
}
