package postgres

import (
	"context"
	"database/sql"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Upsert(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (id, title, description, location, start_at, end_at, is_all_day, synced_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id) DO UPDATE SET
	            title = EXCLUDED.title, description = EXCLUDED.description, location = EXCLUDED.location,
	            start_at = EXCLUDED.start_at, end_at = EXCLUDED.end_at, is_all_day = EXCLUDED.is_all_day,
	            synced_at = EXCLUDED.synced_at`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Title, e.Description, e.Location, e.Start, e.End, e.IsAllDay, e.SyncedAt)
	return err
}

func (r *eventRepository) Get(ctx context.Context, id string) (*domain.Event, error) {
	e := &domain.Event{}
	query := `SELECT id, title, description, location, start_at, end_at, is_all_day, synced_at FROM events WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Start, &e.End, &e.IsAllDay, &e.SyncedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, from time.Time) ([]domain.Event, error) {
	query := `SELECT id, title, description, location, start_at, end_at, is_all_day, synced_at FROM events WHERE start_at >= $1 ORDER BY start_at ASC`
	rows, err := r.db.QueryContext(ctx, query, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Start, &e.End, &e.IsAllDay, &e.SyncedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
