package postgres

import (
	"context"
	"database/sql"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"
)

type rsvpRepository struct {
	db *sql.DB
}

func NewRSVPRepository(db *sql.DB) repository.RSVPRepository {
	return &rsvpRepository{db: db}
}

func (r *rsvpRepository) Put(ctx context.Context, a *domain.Attendee) error {
	query := `INSERT INTO rsvps (event_id, member_id, display_name, email, rsvped_at) VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (event_id, member_id) DO UPDATE SET
	            display_name = EXCLUDED.display_name, email = EXCLUDED.email, rsvped_at = EXCLUDED.rsvped_at`
	_, err := r.db.ExecContext(ctx, query, a.EventID, a.MemberID, a.DisplayName, a.Email, a.RSVPedAt)
	return err
}

// Delete is idempotent; removing an absent RSVP is not an error.
func (r *rsvpRepository) Delete(ctx context.Context, eventID, memberID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rsvps WHERE event_id = $1 AND member_id = $2`, eventID, memberID)
	return err
}

func (r *rsvpRepository) ListAttendees(ctx context.Context, eventID string) ([]domain.Attendee, error) {
	query := `SELECT event_id, member_id, display_name, email, rsvped_at FROM rsvps WHERE event_id = $1 ORDER BY rsvped_at ASC`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []domain.Attendee
	for rows.Next() {
		var a domain.Attendee
		if err := rows.Scan(&a.EventID, &a.MemberID, &a.DisplayName, &a.Email, &a.RSVPedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *rsvpRepository) ListEventIDs(ctx context.Context) ([]string, error) {
	return r.ids(ctx, `SELECT DISTINCT event_id FROM rsvps ORDER BY event_id`)
}

func (r *rsvpRepository) ListEventIDsForMember(ctx context.Context, memberID string) ([]string, error) {
	return r.ids(ctx, `SELECT event_id FROM rsvps WHERE member_id = $1 ORDER BY event_id`, memberID)
}

func (r *rsvpRepository) ids(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
