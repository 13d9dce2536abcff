package http

import (
	"net/http"

	"builderclub-backend/internal/security"
	"builderclub-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the operations exposed over HTTP.
type Services struct {
	Members   service.MemberService
	Events    service.EventService
	Content   service.ContentService
	Projects  service.ProjectService
	Showcase  service.RepoShowcaseService
	Analytics service.AnalyticsService
	Admin     service.AdminService
	Auth      service.AuthService
	Contact   service.ContactService
	Chat      service.ChatService
}

type Options struct {
	AllowedOrigins []string
	// RequestsPerMinute limits chat, contact and auth per client IP. Zero
	// disables the limit.
	RequestsPerMinute int
}

// Handler serves the JSON API.
type Handler struct {
	svc Services
}

// NewRouter builds the API. Every route is named; the name selects its
// security level in config.EndpointSecurityConfig.
func NewRouter(svc Services, identity security.IdentityProvider, opts Options) http.Handler {
	h := &Handler{svc: svc}
	r := mux.NewRouter()
	r.Use(observeMiddleware, authMiddleware(identity))

	limited := func(f http.HandlerFunc) http.Handler {
		return rateLimit(opts.RequestsPerMinute)(f)
	}

	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet).Name("healthz")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")

	api := r.PathPrefix("/api").Subrouter()

	// proxies
	api.HandleFunc("/events", h.UpcomingEvents).Methods(http.MethodGet).Name("events.upcoming")
	api.HandleFunc("/github-repos", h.OrgRepos).Methods(http.MethodGet).Name("github.repos")
	api.HandleFunc("/github-repos/validate", h.ValidateRepo).Methods(http.MethodGet).Name("github.validate")
	api.Handle("/chat", limited(h.Chat)).Methods(http.MethodPost).Name("chat")
	api.Handle("/contact", limited(h.Contact)).Methods(http.MethodPost).Name("contact")

	// auth
	api.Handle("/auth/register", limited(h.Register)).Methods(http.MethodPost).Name("auth.register")
	api.Handle("/auth/login", limited(h.Login)).Methods(http.MethodPost).Name("auth.login")

	// catalog
	api.HandleFunc("/resources", h.ListResources).Methods(http.MethodGet).Name("resources.list")
	api.HandleFunc("/case-studies", h.ListCaseStudies).Methods(http.MethodGet).Name("caseStudies.list")

	// member
	api.HandleFunc("/me", h.GetMe).Methods(http.MethodGet).Name("me.get")
	api.HandleFunc("/me", h.UpdateMe).Methods(http.MethodPut).Name("me.update")
	api.HandleFunc("/me/rsvps", h.MyRSVPs).Methods(http.MethodGet).Name("me.rsvps")
	api.HandleFunc("/me/projects", h.MyProjects).Methods(http.MethodGet).Name("me.projects")
	api.HandleFunc("/members", h.ListMembers).Methods(http.MethodGet).Name("members.list")
	api.HandleFunc("/members/{uid}", h.GetMember).Methods(http.MethodGet).Name("members.get")
	api.HandleFunc("/club-events", h.ListClubEvents).Methods(http.MethodGet).Name("clubEvents.list")
	api.HandleFunc("/club-events/{id}/attendees", h.ListAttendees).Methods(http.MethodGet).Name("clubEvents.attendees")
	api.HandleFunc("/club-events/{id}/rsvp", h.RSVP).Methods(http.MethodPut).Name("clubEvents.rsvp")
	api.HandleFunc("/club-events/{id}/rsvp", h.CancelRSVP).Methods(http.MethodDelete).Name("clubEvents.unrsvp")
	api.HandleFunc("/projects", h.ListProjects).Methods(http.MethodGet).Name("projects.list")
	api.HandleFunc("/projects", h.SubmitProject).Methods(http.MethodPost).Name("projects.submit")
	api.HandleFunc("/projects/{id}", h.GetProject).Methods(http.MethodGet).Name("projects.get")

	// admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/stats", h.Stats).Methods(http.MethodGet).Name("admin.stats")
	admin.HandleFunc("/sync-events", h.SyncEvents).Methods(http.MethodPost).Name("admin.syncEvents")
	admin.HandleFunc("/projects", h.AdminListProjects).Methods(http.MethodGet).Name("admin.projects.list")
	admin.HandleFunc("/projects/{id}/feature", h.ToggleFeatured).Methods(http.MethodPost).Name("admin.projects.feature")
	admin.HandleFunc("/projects/{id}/{action:approve|request-changes|reject}", h.ReviewProject).Methods(http.MethodPost).Name("admin.projects.review")
	admin.HandleFunc("/resources", h.AdminListResources).Methods(http.MethodGet).Name("admin.resources.list")
	admin.HandleFunc("/resources", h.CreateResource).Methods(http.MethodPost).Name("admin.resources.create")
	admin.HandleFunc("/resources/{id}", h.UpdateResource).Methods(http.MethodPut).Name("admin.resources.update")
	admin.HandleFunc("/resources/{id}", h.DeleteResource).Methods(http.MethodDelete).Name("admin.resources.delete")
	admin.HandleFunc("/case-studies", h.AdminListCaseStudies).Methods(http.MethodGet).Name("admin.caseStudies.list")
	admin.HandleFunc("/case-studies", h.CreateCaseStudy).Methods(http.MethodPost).Name("admin.caseStudies.create")
	admin.HandleFunc("/case-studies/{id}", h.UpdateCaseStudy).Methods(http.MethodPut).Name("admin.caseStudies.update")
	admin.HandleFunc("/case-studies/{id}", h.DeleteCaseStudy).Methods(http.MethodDelete).Name("admin.caseStudies.delete")
	admin.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet).Name("admin.users.list")
	admin.HandleFunc("/users/{uid}/admin", h.SetAdmin).Methods(http.MethodPut).Name("admin.users.setAdmin")
	admin.HandleFunc("/delete-user", h.DeleteUser).Methods(http.MethodDelete).Name("admin.users.delete")

	return corsMiddleware(opts.AllowedOrigins)(r)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
