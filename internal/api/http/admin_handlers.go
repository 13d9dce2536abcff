package http

import (
	"errors"
	"net/http"

	"builderclub-backend/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Analytics.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// SyncEvents refreshes the event mirror on demand.
func (h *Handler) SyncEvents(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Events.SyncEvents(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, service.ErrNotConfigured):
		writeMessage(w, http.StatusServiceUnavailable, "Google Calendar not configured.")
	default:
		writeError(w, r, err)
	}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type setAdminRequest struct {
	Admin bool `json:"admin"`
}

func (h *Handler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.Admin.SetAdmin(r.Context(), session(r), mux.Vars(r)["uid"], req.Admin); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type deleteUserRequest struct {
	UID string `json:"uid"`
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := h.svc.Admin.DeleteUser(r.Context(), session(r), req.UID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "User deleted successfully"})
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	default:
		writeError(w, r, err)
	}
}
