package http

import (
	"net/http"
	"strconv"

	"builderclub-backend/internal/service"

	"github.com/gorilla/mux"
)

// GetMe returns the caller's profile. It is 404 until the first save.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Members.GetProfile(r.Context(), session(r).UID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.svc.Members.SaveProfile(r.Context(), session(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) MyRSVPs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.Events.ListMyRSVPs(r.Context(), session(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"eventIds": ids})
}

func (h *Handler) MyProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects.ListMine(r.Context(), session(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Members.ListDirectory(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Members.GetPublicProfile(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ListClubEvents lists mirrored events from now on; all=true includes past ones.
func (h *Handler) ListClubEvents(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	events, err := h.svc.Events.ListMirrored(r.Context(), session(r), all)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *Handler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.svc.Events.ListAttendees(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attendees": attendees})
}

func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Events.RSVP(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) CancelRSVP(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Events.CancelRSVP(r.Context(), session(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
