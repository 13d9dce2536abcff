package domain

import "time"

// Event is a calendar event mirrored into events/{id}. The id is the calendar
// event id, so RSVPs keyed by it survive every re-sync.
type Event struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Location    string    `json:"location" firestore:"location"`
	Start       time.Time `json:"start" firestore:"start"`
	End         time.Time `json:"end" firestore:"end"`
	IsAllDay    bool      `json:"isAllDay" firestore:"isAllDay"`
	SyncedAt    time.Time `json:"syncedAt" firestore:"syncedAt"`
}

// CalendarEvent is the normalized shape returned by the calendar source.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsAllDay    bool      `json:"isAllDay"`
}

// Mirror converts a calendar event into the stored document, stamping the sync time.
func (c CalendarEvent) Mirror(syncedAt time.Time) Event {
	return Event{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Location:    c.Location,
		Start:       c.Start,
		End:         c.End,
		IsAllDay:    c.IsAllDay,
		SyncedAt:    syncedAt,
	}
}

// Attendee is an RSVP record stored under rsvps/{eventId}/attendees/{memberId}.
type Attendee struct {
	EventID     string    `json:"eventId" firestore:"-"`
	MemberID    string    `json:"memberId" firestore:"-"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Email       string    `json:"email" firestore:"email"`
	RSVPedAt    time.Time `json:"rsvpedAt" firestore:"rsvpedAt"`
}

// EventWithAttendance is the member-facing event card.
type EventWithAttendance struct {
	Event
	AttendeeCount int  `json:"attendeeCount"`
	Attending     bool `json:"attending"`
}
