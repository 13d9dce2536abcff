package http

import (
	"net/http"

	"builderclub-backend/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	h.listResources(w, r, true)
}

func (h *Handler) AdminListResources(w http.ResponseWriter, r *http.Request) {
	h.listResources(w, r, false)
}

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	list, err := h.svc.Content.ListResources(r.Context(), publishedOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resources": list})
}

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var in service.ResourceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.svc.Content.CreateResource(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	var in service.ResourceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.svc.Content.UpdateResource(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Content.DeleteResource(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	h.listCaseStudies(w, r, true)
}

func (h *Handler) AdminListCaseStudies(w http.ResponseWriter, r *http.Request) {
	h.listCaseStudies(w, r, false)
}

func (h *Handler) listCaseStudies(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	list, err := h.svc.Content.ListCaseStudies(r.Context(), publishedOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"caseStudies": list})
}

func (h *Handler) CreateCaseStudy(w http.ResponseWriter, r *http.Request) {
	var in service.CaseStudyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Content.CreateCaseStudy(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCaseStudy(w http.ResponseWriter, r *http.Request) {
	var in service.CaseStudyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Content.UpdateCaseStudy(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCaseStudy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Content.DeleteCaseStudy(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
