package repository

import (
	"context"
	"errors"
	"time"

	"builderclub-backend/internal/domain"
)

// ErrNotFound is returned by every backend when a document or row is absent.
var ErrNotFound = errors.New("not found")

type MemberRepository interface {
	Get(ctx context.Context, uid string) (*domain.Member, error)
	// Save writes the whole profile, creating it when absent.
	Save(ctx context.Context, m *domain.Member) error
	List(ctx context.Context) ([]domain.Member, error)
	SetAdmin(ctx context.Context, uid string, admin bool) error
	Delete(ctx context.Context, uid string) error
}

type EventRepository interface {
	// Upsert replaces the stored event wholesale, keyed by its calendar id.
	Upsert(ctx context.Context, e *domain.Event) error
	Get(ctx context.Context, id string) (*domain.Event, error)
	// List returns events starting at or after from, ordered by start.
	// A zero from returns every event.
	List(ctx context.Context, from time.Time) ([]domain.Event, error)
}

type RSVPRepository interface {
	Put(ctx context.Context, a *domain.Attendee) error
	Delete(ctx context.Context, eventID, memberID string) error
	ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error)
	// ListEventIDs returns every event id holding at least one RSVP.
	ListEventIDs(ctx context.Context) ([]string, error)
	ListEventIDsForMember(ctx context.Context, memberID string) ([]string, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, r *domain.Resource) error
	Get(ctx context.Context, id string) (*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
	// List is ordered by the manual sort order.
	List(ctx context.Context, publishedOnly bool) ([]domain.Resource, error)
}

type CaseStudyRepository interface {
	Create(ctx context.Context, c *domain.CaseStudy) error
	Get(ctx context.Context, id string) (*domain.CaseStudy, error)
	Update(ctx context.Context, c *domain.CaseStudy) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, publishedOnly bool) ([]domain.CaseStudy, error)
}

// ProjectFilter narrows project listings; empty fields match everything.
type ProjectFilter struct {
	Status  domain.ProjectStatus
	OwnerID string
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// List is ordered by submission time, newest first.
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
}

type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUID(ctx context.Context, uid string) (*domain.Account, error)
	SetAdmin(ctx context.Context, uid string, admin bool) error
	Delete(ctx context.Context, uid string) error
}
