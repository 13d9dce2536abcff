package service_test

import (
	"context"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations/anthropic"
	"builderclub-backend/internal/integrations/calendar"
	"builderclub-backend/internal/integrations/github"
	"builderclub-backend/internal/repository"
	"builderclub-backend/internal/security"
	"builderclub-backend/internal/service"
	"builderclub-backend/internal/utils"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Get(ctx context.Context, uid string) (*domain.Member, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Save(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) SetAdmin(ctx context.Context, uid string, admin bool) error {
	args := m.Called(ctx, uid, admin)
	return args.Error(0)
}
func (m *MockMemberRepo) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Upsert(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockEventRepo) Get(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) List(ctx context.Context, from time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockRSVPRepo
type MockRSVPRepo struct {
	mock.Mock
}

func (m *MockRSVPRepo) Put(ctx context.Context, a *domain.Attendee) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockRSVPRepo) Delete(ctx context.Context, eventID, memberID string) error {
	args := m.Called(ctx, eventID, memberID)
	return args.Error(0)
}
func (m *MockRSVPRepo) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendee), args.Error(1)
}
func (m *MockRSVPRepo) ListEventIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockRSVPRepo) ListEventIDsForMember(ctx context.Context, memberID string) ([]string, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockResourceRepo
type MockResourceRepo struct {
	mock.Mock
}

func (m *MockResourceRepo) Create(ctx context.Context, r *domain.Resource) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockResourceRepo) Get(ctx context.Context, id string) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}
func (m *MockResourceRepo) Update(ctx context.Context, r *domain.Resource) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockResourceRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockResourceRepo) List(ctx context.Context, publishedOnly bool) ([]domain.Resource, error) {
	args := m.Called(ctx, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

// MockCaseStudyRepo
type MockCaseStudyRepo struct {
	mock.Mock
}

func (m *MockCaseStudyRepo) Create(ctx context.Context, c *domain.CaseStudy) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCaseStudyRepo) Get(ctx context.Context, id string) (*domain.CaseStudy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaseStudy), args.Error(1)
}
func (m *MockCaseStudyRepo) Update(ctx context.Context, c *domain.CaseStudy) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCaseStudyRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCaseStudyRepo) List(ctx context.Context, publishedOnly bool) ([]domain.CaseStudy, error) {
	args := m.Called(ctx, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseStudy), args.Error(1)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

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
	args := m.Called(ctx, uid)
	return args.Error(0)
}
func (m *MockIdentity) SetAdmin(ctx context.Context, uid string, admin bool) error {
	args := m.Called(ctx, uid, admin)
	return args.Error(0)
}

// MockPasswordLogin
type MockPasswordLogin struct {
	mock.Mock
}

func (m *MockPasswordLogin) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}
func (m *MockPasswordLogin) Exchange(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockCalendar
type MockCalendar struct {
	mock.Mock
}

func (m *MockCalendar) ListEvents(ctx context.Context, q calendar.Query) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalendarEvent), args.Error(1)
}

// MockRepoValidator
type MockRepoValidator struct {
	mock.Mock
}

func (m *MockRepoValidator) Validate(ctx context.Context, ref utils.RepoRef) (*github.Validation, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.Validation), args.Error(1)
}

// MockOrgRepoLister
type MockOrgRepoLister struct {
	mock.Mock
}

func (m *MockOrgRepoLister) ListOrgRepos(ctx context.Context, org string, limit int) ([]github.OrgRepo, error) {
	args := m.Called(ctx, org, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.OrgRepo), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, mail service.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

// MockChatStreamer replays a fixed list of deltas.
type MockChatStreamer struct {
	mock.Mock
	Deltas []string
}

func (m *MockChatStreamer) Stream(ctx context.Context, req anthropic.StreamRequest, onText func(string) error) error {
	args := m.Called(ctx, req)
	for _, d := range m.Deltas {
		if err := onText(d); err != nil {
			return err
		}
	}
	return args.Error(0)
}
