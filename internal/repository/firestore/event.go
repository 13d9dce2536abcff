package firestore

import (
	"context"
	"errors"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type eventRepository struct {
	client *firestore.Client
}

func NewEventRepository(client *firestore.Client) repository.EventRepository {
	return &eventRepository{client: client}
}

// Upsert overwrites the whole document so fields dropped upstream disappear.
func (r *eventRepository) Upsert(ctx context.Context, e *domain.Event) error {
	_, err := r.client.Collection(eventsCollection).Doc(e.ID).Set(ctx, e)
	return err
}

func (r *eventRepository) Get(ctx context.Context, id string) (*domain.Event, error) {
	snap, err := r.client.Collection(eventsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	e := &domain.Event{}
	if err := snap.DataTo(e); err != nil {
		return nil, err
	}
	e.ID = snap.Ref.ID
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, from time.Time) ([]domain.Event, error) {
	q := r.client.Collection(eventsCollection).Query
	if !from.IsZero() {
		q = q.Where("start", ">=", from)
	}
	return collect(ctx, q.OrderBy("start", firestore.Asc), func(e *domain.Event, id string) {
		e.ID = id
	})
}

type rsvpRepository struct {
	client *firestore.Client
}

func NewRSVPRepository(client *firestore.Client) repository.RSVPRepository {
	return &rsvpRepository{client: client}
}

func (r *rsvpRepository) attendees(eventID string) *firestore.CollectionRef {
	return r.client.Collection(rsvpsCollection).Doc(eventID).Collection(attendeesCollection)
}

func (r *rsvpRepository) Put(ctx context.Context, a *domain.Attendee) error {
	_, err := r.attendees(a.EventID).Doc(a.MemberID).Set(ctx, a)
	return err
}

func (r *rsvpRepository) Delete(ctx context.Context, eventID, memberID string) error {
	_, err := r.attendees(eventID).Doc(memberID).Delete(ctx)
	return err
}

func (r *rsvpRepository) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	return collect(ctx, r.attendees(eventID).OrderBy("rsvpedAt", firestore.Asc), func(a *domain.Attendee, id string) {
		a.EventID = eventID
		a.MemberID = id
	})
}

// ListEventIDs walks rsvps/* including parent documents that only exist as
// the container of an attendees sub-collection.
func (r *rsvpRepository) ListEventIDs(ctx context.Context) ([]string, error) {
	iter := r.client.Collection(rsvpsCollection).DocumentRefs(ctx)
	var ids []string
	for {
		ref, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (r *rsvpRepository) ListEventIDsForMember(ctx context.Context, memberID string) ([]string, error) {
	eventIDs, err := r.ListEventIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(eventIDs) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, len(eventIDs))
	for i, id := range eventIDs {
		refs[i] = r.attendees(id).Doc(memberID)
	}
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	var ids []string
	for i, snap := range snaps {
		if snap.Exists() {
			ids = append(ids, eventIDs[i])
		}
	}
	return ids, nil
}
