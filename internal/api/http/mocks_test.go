package http_test

import (
	"context"

	"builderclub-backend/internal/analytics"
	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations/github"
	"builderclub-backend/internal/security"
	"builderclub-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockIdentity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) VerifyToken(ctx context.Context, token string) (*security.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Identity), args.Error(1)
}
func (m *MockIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}
func (m *MockIdentity) ExchangeToken(ctx context.Context, uid string) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}
func (m *MockIdentity) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}
func (m *MockIdentity) SetAdmin(ctx context.Context, uid string, admin bool) error {
	return m.Called(ctx, uid, admin).Error(0)
}

// MockEventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) UpcomingFromCalendar(ctx context.Context) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalendarEvent), args.Error(1)
}
func (m *MockEventService) SyncEvents(ctx context.Context) (*service.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncResult), args.Error(1)
}
func (m *MockEventService) ListMirrored(ctx context.Context, s service.Session, includePast bool) ([]domain.EventWithAttendance, error) {
	args := m.Called(ctx, s, includePast)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventWithAttendance), args.Error(1)
}
func (m *MockEventService) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendee), args.Error(1)
}
func (m *MockEventService) RSVP(ctx context.Context, s service.Session, eventID string) (*domain.Attendee, error) {
	args := m.Called(ctx, s, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendee), args.Error(1)
}
func (m *MockEventService) CancelRSVP(ctx context.Context, s service.Session, eventID string) error {
	return m.Called(ctx, s, eventID).Error(0)
}
func (m *MockEventService) ListMyRSVPs(ctx context.Context, s service.Session) ([]string, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) ValidateRepository(ctx context.Context, rawURL string) (*github.Validation, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.Validation), args.Error(1)
}
func (m *MockProjectService) Submit(ctx context.Context, s service.Session, in service.SubmitProjectInput) (*domain.Project, error) {
	return m.project(m.Called(ctx, s, in))
}
func (m *MockProjectService) ListApproved(ctx context.Context) ([]domain.Project, error) {
	return m.projects(m.Called(ctx))
}
func (m *MockProjectService) ListMine(ctx context.Context, s service.Session) ([]domain.Project, error) {
	return m.projects(m.Called(ctx, s))
}
func (m *MockProjectService) Get(ctx context.Context, s service.Session, id string) (*domain.Project, error) {
	return m.project(m.Called(ctx, s, id))
}
func (m *MockProjectService) ListAll(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	return m.projects(m.Called(ctx, status))
}
func (m *MockProjectService) Approve(ctx context.Context, id string) (*domain.Project, error) {
	return m.project(m.Called(ctx, id))
}
func (m *MockProjectService) RequestChanges(ctx context.Context, id, note string) (*domain.Project, error) {
	return m.project(m.Called(ctx, id, note))
}
func (m *MockProjectService) Reject(ctx context.Context, id, note string) (*domain.Project, error) {
	return m.project(m.Called(ctx, id, note))
}
func (m *MockProjectService) ToggleFeatured(ctx context.Context, id string) (*domain.Project, error) {
	return m.project(m.Called(ctx, id))
}
func (m *MockProjectService) project(args mock.Arguments) (*domain.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) projects(args mock.Arguments) ([]domain.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

// MockShowcase
type MockShowcase struct {
	mock.Mock
}

func (m *MockShowcase) ListOrgRepos(ctx context.Context) ([]github.OrgRepo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.OrgRepo), args.Error(1)
}

// MockAnalytics
type MockAnalytics struct {
	mock.Mock
}

func (m *MockAnalytics) Stats(ctx context.Context) (*analytics.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Stats), args.Error(1)
}

// MockAdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockAdminService) SetAdmin(ctx context.Context, caller service.Session, uid string, admin bool) error {
	return m.Called(ctx, caller, uid, admin).Error(0)
}
func (m *MockAdminService) DeleteUser(ctx context.Context, caller service.Session, uid string) error {
	return m.Called(ctx, caller, uid).Error(0)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

// MockContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, in service.ContactInput) error {
	return m.Called(ctx, in).Error(0)
}

// MockChatService replays Deltas through onText before returning.
type MockChatService struct {
	mock.Mock
	Deltas []string
}

func (m *MockChatService) Prepare(messages []domain.ChatMessage) ([]domain.ChatMessage, error) {
	args := m.Called(messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}
func (m *MockChatService) Stream(ctx context.Context, messages []domain.ChatMessage, onText func(string) error) error {
	args := m.Called(ctx, messages)
	for _, d := range m.Deltas {
		if err := onText(d); err != nil {
			return err
		}
	}
	return args.Error(0)
}
