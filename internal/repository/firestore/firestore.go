package firestore

import (
	"context"
	"errors"

	"builderclub-backend/internal/repository"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	membersCollection     = "members"
	eventsCollection      = "events"
	rsvpsCollection       = "rsvps"
	attendeesCollection   = "attendees"
	resourcesCollection   = "resources"
	caseStudiesCollection = "case-studies"
	projectsCollection    = "projects"
)

// Store groups the document-backed repositories. Accounts are not stored here;
// with Firestore the identity provider owns credentials.
type Store struct {
	client *firestore.Client
	repository.MemberRepository
	repository.EventRepository
	repository.RSVPRepository
	repository.ResourceRepository
	repository.CaseStudyRepository
	repository.ProjectRepository
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:              client,
		MemberRepository:    NewMemberRepository(client),
		EventRepository:     NewEventRepository(client),
		RSVPRepository:      NewRSVPRepository(client),
		ResourceRepository:  NewResourceRepository(client),
		CaseStudyRepository: NewCaseStudyRepository(client),
		ProjectRepository:   NewProjectRepository(client),
	}
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Ping reads at most one member document.
func (s *Store) Ping(ctx context.Context) error {
	iter := s.client.Collection(membersCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func mapNotFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return repository.ErrNotFound
	}
	return err
}

// collect decodes every document of a query, setting the id through setID.
func collect[T any](ctx context.Context, q firestore.Query, setID func(*T, string)) ([]T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []T
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var v T
		if err := snap.DataTo(&v); err != nil {
			return nil, err
		}
		if setID != nil {
			setID(&v, snap.Ref.ID)
		}
		out = append(out, v)
	}
	return out, nil
}
