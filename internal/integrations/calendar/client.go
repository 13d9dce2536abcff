package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/metrics"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	provider      = "google-calendar"
	untitledEvent = "Untitled Event"
)

// Query bounds a listing. A zero TimeMax leaves the window open-ended.
type Query struct {
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int
}

// Client reads single (expanded) events from one public calendar.
type Client struct {
	svc        *gcal.Service
	calendarID string
	loc        *time.Location
	breaker    *integrations.Breaker[[]*gcal.Event]
}

// NewClient builds a calendar client. All-day dates are interpreted in loc.
func NewClient(ctx context.Context, calendarID string, loc *time.Location, opts ...option.ClientOption) (*Client, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		svc:        svc,
		calendarID: calendarID,
		loc:        loc,
		breaker:    integrations.NewBreaker[[]*gcal.Event]("google-calendar", nil),
	}, nil
}

// ListEvents returns events ordered by start time.
func (c *Client) ListEvents(ctx context.Context, q Query) ([]domain.CalendarEvent, error) {
	logger.ExternalServiceCall(provider, "ListEvents", "time_min", q.TimeMin, "time_max", q.TimeMax, "max_results", q.MaxResults)

	items, err := c.breaker.Execute(func() ([]*gcal.Event, error) {
		call := c.svc.Events.List(c.calendarID).
			SingleEvents(true).
			OrderBy("startTime").
			TimeMin(q.TimeMin.Format(time.RFC3339)).
			Context(ctx)
		if !q.TimeMax.IsZero() {
			call = call.TimeMax(q.TimeMax.Format(time.RFC3339))
		}
		if q.MaxResults > 0 {
			call = call.MaxResults(int64(q.MaxResults))
		}
		res, err := call.Do()
		if err != nil {
			return nil, classify(err)
		}
		return res.Items, nil
	})
	metrics.RecordUpstream(provider, "list_events", err)
	logger.ExternalServiceResult(provider, "ListEvents", err, "count", len(items))
	if err != nil {
		return nil, err
	}

	events := make([]domain.CalendarEvent, 0, len(items))
	for _, item := range items {
		ev, err := c.normalize(item)
		if err != nil {
			logger.Warn("Skipping calendar event with unreadable time", "event_id", item.Id, "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *Client) normalize(item *gcal.Event) (domain.CalendarEvent, error) {
	start, allDay, err := c.parseTime(item.Start)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("start: %w", err)
	}
	end, _, err := c.parseTime(item.End)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("end: %w", err)
	}

	title := item.Summary
	if title == "" {
		title = untitledEvent
	}
	return domain.CalendarEvent{
		ID:          item.Id,
		Title:       title,
		Description: item.Description,
		Location:    item.Location,
		Start:       start,
		End:         end,
		IsAllDay:    allDay,
	}, nil
}

// parseTime reads a timed or all-day value. An event is all-day when its
// start has no time of day.
func (c *Client) parseTime(dt *gcal.EventDateTime) (time.Time, bool, error) {
	if dt == nil {
		return time.Time{}, true, nil
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		return t, false, err
	}
	if dt.Date == "" {
		return time.Time{}, true, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, dt.Date, c.loc)
	return t, true, err
}

func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &integrations.UpstreamError{Provider: provider, Status: apiErr.Code, Err: err}
	}
	return &integrations.UpstreamError{Provider: provider, Err: err}
}
