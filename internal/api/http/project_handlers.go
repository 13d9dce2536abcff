package http

import (
	"net/http"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/service"

	"github.com/gorilla/mux"
)

// ListProjects is the member showcase: approved projects only.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects.ListApproved(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *Handler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	var in service.SubmitProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.svc.Projects.Submit(r.Context(), session(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.Get(r.Context(), session(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) AdminListProjects(w http.ResponseWriter, r *http.Request) {
	status := domain.ProjectStatus(r.URL.Query().Get("status"))
	projects, err := h.svc.Projects.ListAll(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

type reviewRequest struct {
	Note string `json:"note"`
}

func (h *Handler) ReviewProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var (
		p   *domain.Project
		err error
	)
	switch vars["action"] {
	case "approve":
		p, err = h.svc.Projects.Approve(r.Context(), id)
	default:
		var req reviewRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if vars["action"] == "reject" {
			p, err = h.svc.Projects.Reject(r.Context(), id, req.Note)
		} else {
			p, err = h.svc.Projects.RequestChanges(r.Context(), id, req.Note)
		}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.ToggleFeatured(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
