package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"builderclub-backend/internal/cache"
	"builderclub-backend/internal/config"
	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations/calendar"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"
	"builderclub-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	upcomingCacheKey = "upcoming"
	// how far past now the mirror reaches
	syncHorizonYears = 2
	rosterFanOut     = 8
)

// CalendarSource lists events from the club calendar.
type CalendarSource interface {
	ListEvents(ctx context.Context, q calendar.Query) ([]domain.CalendarEvent, error)
}

type eventService struct {
	events   repository.EventRepository
	rsvps    repository.RSVPRepository
	members  repository.MemberRepository
	source   CalendarSource
	upcoming *cache.Memo[[]domain.CalendarEvent]
	cfg      config.CalendarConfig
	since    time.Time
}

// NewEventService wires the mirror and RSVP stores. source may be nil when the
// calendar is not configured; the proxy and sync then report ErrNotConfigured.
func NewEventService(
	events repository.EventRepository,
	rsvps repository.RSVPRepository,
	members repository.MemberRepository,
	source CalendarSource,
	upcoming *cache.Memo[[]domain.CalendarEvent],
	cfg config.CalendarConfig,
	since time.Time,
) EventService {
	if upcoming == nil {
		upcoming = cache.NewMemo[[]domain.CalendarEvent]("calendar_upcoming", cfg.CacheTTL)
	}
	return &eventService{
		events:   events,
		rsvps:    rsvps,
		members:  members,
		source:   source,
		upcoming: upcoming,
		cfg:      cfg,
		since:    since,
	}
}

func (s *eventService) UpcomingFromCalendar(ctx context.Context) ([]domain.CalendarEvent, error) {
	if s.source == nil {
		return nil, ErrNotConfigured
	}
	events, err := s.upcoming.Get(ctx, upcomingCacheKey, func(ctx context.Context) ([]domain.CalendarEvent, error) {
		return s.source.ListEvents(ctx, calendar.Query{
			TimeMin:    time.Now().UTC(),
			MaxResults: s.cfg.UpcomingLimit,
		})
	})
	if err != nil {
		logger.Error("Failed to fetch upcoming events", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return events, nil
}

// SyncEvents replaces every mirrored event in the sync window with the
// calendar's current copy. RSVPs are keyed by event id and stay untouched.
func (s *eventService) SyncEvents(ctx context.Context) (*SyncResult, error) {
	logger.EnterMethod("eventService.SyncEvents")
	if s.source == nil {
		return nil, ErrNotConfigured
	}

	started := time.Now()
	now := started.UTC()
	items, err := s.source.ListEvents(ctx, calendar.Query{
		TimeMin:    s.since,
		TimeMax:    now.AddDate(syncHorizonYears, 0, 0),
		MaxResults: s.cfg.MaxResults,
	})
	if err != nil {
		logger.ExitMethodWithError("eventService.SyncEvents", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	synced := 0
	for _, item := range items {
		ev := item.Mirror(now)
		if err := s.events.Upsert(ctx, &ev); err != nil {
			logger.ExitMethodWithError("eventService.SyncEvents", err, "synced", synced)
			return nil, fmt.Errorf("failed to mirror event %s: %w", item.ID, err)
		}
		synced++
	}

	metrics.EventsMirrored.Add(float64(synced))
	metrics.EventSyncDuration.Observe(time.Since(started).Seconds())
	s.upcoming.Invalidate(upcomingCacheKey)

	logger.ExitMethod("eventService.SyncEvents", "synced", synced)
	return &SyncResult{Synced: synced, SyncedAt: now}, nil
}

// ListMirrored returns mirrored events with their attendee counts and the
// caller's own RSVP status. Past events are left out unless includePast.
func (s *eventService) ListMirrored(ctx context.Context, sess Session, includePast bool) ([]domain.EventWithAttendance, error) {
	var from time.Time
	if !includePast {
		from = time.Now().UTC()
	}
	events, err := s.events.List(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out := make([]domain.EventWithAttendance, len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterFanOut)
	for i := range events {
		i := i
		g.Go(func() error {
			attendees, err := s.rsvps.ListAttendees(gctx, events[i].ID)
			if err != nil {
				return fmt.Errorf("failed to list attendees of %s: %w", events[i].ID, err)
			}
			row := domain.EventWithAttendance{Event: events[i], AttendeeCount: len(attendees)}
			for _, a := range attendees {
				if a.MemberID == sess.UID {
					row.Attending = true
					break
				}
			}
			out[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *eventService) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	attendees, err := s.rsvps.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	sort.SliceStable(attendees, func(i, j int) bool {
		return attendees[i].RSVPedAt.Before(attendees[j].RSVPedAt)
	})
	if attendees == nil {
		attendees = []domain.Attendee{}
	}
	return attendees, nil
}

// RSVP records the caller as attending, copying their display name so the
// roster renders without profile reads.
func (s *eventService) RSVP(ctx context.Context, sess Session, eventID string) (*domain.Attendee, error) {
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var displayName string
	profile, err := s.members.Get(ctx, sess.UID)
	switch {
	case err == nil:
		displayName = profile.DisplayName
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	a := &domain.Attendee{
		EventID:     eventID,
		MemberID:    sess.UID,
		DisplayName: displayName,
		Email:       sess.Email,
		RSVPedAt:    time.Now().UTC(),
	}
	if err := s.rsvps.Put(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save rsvp: %w", err)
	}
	return a, nil
}

// CancelRSVP is idempotent.
func (s *eventService) CancelRSVP(ctx context.Context, sess Session, eventID string) error {
	err := s.rsvps.Delete(ctx, eventID, sess.UID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to delete rsvp: %w", err)
	}
	return nil
}

func (s *eventService) ListMyRSVPs(ctx context.Context, sess Session) ([]string, error) {
	ids, err := s.rsvps.ListEventIDsForMember(ctx, sess.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rsvps: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
