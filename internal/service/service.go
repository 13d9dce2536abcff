package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"builderclub-backend/internal/analytics"
	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations"
	"builderclub-backend/internal/integrations/github"
	"builderclub-backend/internal/repository"
)

var (
	// ErrNotFound is the repository sentinel so callers only need this package.
	ErrNotFound        = repository.ErrNotFound
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient privileges")
	ErrUpstream        = errors.New("upstream provider error")
	ErrNotConfigured   = errors.New("integration not configured")
	ErrConflict        = errors.New("conflict")
)

// ValidationError is a bad-input failure whose message is shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DomainRestrictionError rejects a registration outside the institutional domain.
type DomainRestrictionError struct {
	Domain string
}

func (e *DomainRestrictionError) Error() string {
	return fmt.Sprintf("Sign-up is restricted to institutional email addresses (%s).", e.Domain)
}

// UpstreamStatus returns the provider's HTTP status behind err, or 0 when the
// provider could not be reached.
func UpstreamStatus(err error) int {
	var upstream *integrations.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Status
	}
	return 0
}

// IsUnavailable reports whether a provider call was short-circuited by its
// circuit breaker.
func IsUnavailable(err error) bool {
	return errors.Is(err, integrations.ErrUnavailable)
}

// Session is the verified caller of a request.
type Session struct {
	UID   string
	Email string
	Admin bool
}

type MemberService interface {
	GetProfile(ctx context.Context, uid string) (*domain.Member, error)
	SaveProfile(ctx context.Context, s Session, in ProfileInput) (*domain.Member, error)
	ListDirectory(ctx context.Context, query string) ([]domain.PublicMember, error)
	GetPublicProfile(ctx context.Context, uid string) (*PublicProfile, error)
}

type EventService interface {
	UpcomingFromCalendar(ctx context.Context) ([]domain.CalendarEvent, error)
	SyncEvents(ctx context.Context) (*SyncResult, error)
	ListMirrored(ctx context.Context, s Session, includePast bool) ([]domain.EventWithAttendance, error)
	ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error)
	RSVP(ctx context.Context, s Session, eventID string) (*domain.Attendee, error)
	CancelRSVP(ctx context.Context, s Session, eventID string) error
	ListMyRSVPs(ctx context.Context, s Session) ([]string, error)
}

type ContentService interface {
	ListResources(ctx context.Context, publishedOnly bool) ([]domain.Resource, error)
	CreateResource(ctx context.Context, in ResourceInput) (*domain.Resource, error)
	UpdateResource(ctx context.Context, id string, in ResourceInput) (*domain.Resource, error)
	DeleteResource(ctx context.Context, id string) error

	ListCaseStudies(ctx context.Context, publishedOnly bool) ([]domain.CaseStudy, error)
	CreateCaseStudy(ctx context.Context, in CaseStudyInput) (*domain.CaseStudy, error)
	UpdateCaseStudy(ctx context.Context, id string, in CaseStudyInput) (*domain.CaseStudy, error)
	DeleteCaseStudy(ctx context.Context, id string) error
}

type ProjectService interface {
	ValidateRepository(ctx context.Context, rawURL string) (*github.Validation, error)
	Submit(ctx context.Context, s Session, in SubmitProjectInput) (*domain.Project, error)
	ListApproved(ctx context.Context) ([]domain.Project, error)
	ListMine(ctx context.Context, s Session) ([]domain.Project, error)
	Get(ctx context.Context, s Session, id string) (*domain.Project, error)
	ListAll(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
	Approve(ctx context.Context, id string) (*domain.Project, error)
	RequestChanges(ctx context.Context, id, note string) (*domain.Project, error)
	Reject(ctx context.Context, id, note string) (*domain.Project, error)
	ToggleFeatured(ctx context.Context, id string) (*domain.Project, error)
}

type RepoShowcaseService interface {
	ListOrgRepos(ctx context.Context) ([]github.OrgRepo, error)
}

type AnalyticsService interface {
	Stats(ctx context.Context) (*analytics.Stats, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.Member, error)
	SetAdmin(ctx context.Context, caller Session, uid string, admin bool) error
	DeleteUser(ctx context.Context, caller Session, uid string) error
}

type AuthService interface {
	// Register returns a one-time exchange token for the new account.
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, in LoginInput) (string, error)
}

type EmailService interface {
	Send(ctx context.Context, m Mail) error
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) error
}

type ChatService interface {
	// Prepare validates a conversation and trims it to the context window.
	Prepare(messages []domain.ChatMessage) ([]domain.ChatMessage, error)
	Stream(ctx context.Context, messages []domain.ChatMessage, onText func(string) error) error
}

// PublicProfile is a directory entry together with the member's approved projects.
type PublicProfile struct {
	Member   domain.PublicMember `json:"member"`
	Projects []domain.Project    `json:"projects"`
}

type SyncResult struct {
	Synced   int       `json:"synced"`
	SyncedAt time.Time `json:"syncedAt"`
}

// Mail is one outbound message. FromName overrides the configured sender name.
type Mail struct {
	To       string
	ToName   string
	ReplyTo  string
	FromName string
	Subject  string
	Text     string
	HTML     string
}
