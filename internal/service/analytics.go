package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"builderclub-backend/internal/analytics"
	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

type analyticsService struct {
	members     repository.MemberRepository
	events      repository.EventRepository
	rsvps       repository.RSVPRepository
	resources   repository.ResourceRepository
	caseStudies repository.CaseStudyRepository
	loc         *time.Location
}

func NewAnalyticsService(
	members repository.MemberRepository,
	events repository.EventRepository,
	rsvps repository.RSVPRepository,
	resources repository.ResourceRepository,
	caseStudies repository.CaseStudyRepository,
	loc *time.Location,
) AnalyticsService {
	return &analyticsService{
		members:     members,
		events:      events,
		rsvps:       rsvps,
		resources:   resources,
		caseStudies: caseStudies,
		loc:         loc,
	}
}

// Stats reads every collection concurrently and aggregates the result. The
// reads are independent, so the snapshot is only approximately consistent.
func (s *analyticsService) Stats(ctx context.Context) (*analytics.Stats, error) {
	logger.EnterMethod("analyticsService.Stats")

	var snap analytics.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Members, err = s.members.List(gctx)
		return wrapRead("members", err)
	})
	g.Go(func() (err error) {
		snap.Events, err = s.events.List(gctx, time.Time{})
		return wrapRead("events", err)
	})
	g.Go(func() (err error) {
		snap.Resources, err = s.resources.List(gctx, false)
		return wrapRead("resources", err)
	})
	g.Go(func() (err error) {
		snap.CaseStudies, err = s.caseStudies.List(gctx, false)
		return wrapRead("case studies", err)
	})
	g.Go(func() (err error) {
		snap.Attendees, err = s.readAttendees(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.ExitMethodWithError("analyticsService.Stats", err)
		return nil, err
	}

	stats := analytics.Compute(snap, time.Now(), s.loc)
	logger.ExitMethod("analyticsService.Stats", "members", stats.TotalMembers, "rsvps", stats.TotalRSVPs)
	return &stats, nil
}

// readAttendees reads the roster of every event holding an RSVP.
func (s *analyticsService) readAttendees(ctx context.Context) (map[string][]string, error) {
	ids, err := s.rsvps.ListEventIDs(ctx)
	if err != nil {
		return nil, wrapRead("rsvp events", err)
	}

	var mu sync.Mutex
	out := make(map[string][]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterFanOut)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			attendees, err := s.rsvps.ListAttendees(gctx, id)
			if err != nil {
				return wrapRead("attendees of "+id, err)
			}
			mu.Lock()
			out[id] = memberIDs(attendees)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func memberIDs(attendees []domain.Attendee) []string {
	ids := make([]string, len(attendees))
	for i, a := range attendees {
		ids[i] = a.MemberID
	}
	return ids
}

func wrapRead(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
