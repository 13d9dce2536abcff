package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/service"
)

// UpcomingEvents proxies the next calendar events. The provider status is
// passed through on failure.
func (h *Handler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Events.UpcomingFromCalendar(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"events": events})
	case errors.Is(err, service.ErrNotConfigured):
		writeMessage(w, http.StatusServiceUnavailable, "Google Calendar not configured.")
	case service.IsUnavailable(err):
		writeMessage(w, http.StatusServiceUnavailable, "Failed to fetch events from Google Calendar.")
	default:
		logger.Error("Google Calendar API error", "error", err)
		status := service.UpstreamStatus(err)
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		writeMessage(w, status, "Failed to fetch events from Google Calendar.")
	}
}

// OrgRepos never fails: an upstream error yields an empty list flagged with
// error so the page can render its fallback.
func (h *Handler) OrgRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.svc.Showcase.ListOrgRepos(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"repos": []any{}, "error": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repos": repos})
}

func (h *Handler) ValidateRepo(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Projects.ValidateRepository(r.Context(), r.URL.Query().Get("url"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, v)
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Repository not found or is private")
	case errors.Is(err, service.ErrUpstream):
		if status := service.UpstreamStatus(err); status > 0 {
			writeMessage(w, http.StatusBadGateway, fmt.Sprintf("GitHub API error: %d", status))
			return
		}
		writeMessage(w, http.StatusBadGateway, "Failed to reach GitHub API")
	default:
		writeError(w, r, err)
	}
}

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// Chat streams the assistant reply as server-sent events: one
// data: {"text": ...} frame per delta, then data: [DONE]. Errors before the
// first delta get a normal status; after that the stream is cut short.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "Invalid request: messages array required", http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	started := false
	start := func() {
		if started {
			return
		}
		started = true
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
	}

	err := h.svc.Chat.Stream(r.Context(), req.Messages, func(text string) error {
		start()
		frame, err := json.Marshal(map[string]string{"text": text})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", frame); err != nil {
			return err
		}
		return rc.Flush()
	})
	if err != nil {
		if started {
			logger.Error("Chat stream aborted", "error", err)
			return
		}
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Message, http.StatusBadRequest)
		case errors.Is(err, service.ErrNotConfigured):
			http.Error(w, "Chat is not configured", http.StatusServiceUnavailable)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	start()
	fmt.Fprint(w, "data: [DONE]\n\n")
	_ = rc.Flush()
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.svc.Contact.Submit(r.Context(), in); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeMessage(w, http.StatusBadRequest, verr.Message)
			return
		}
		logger.Error("Contact form failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to send message. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
