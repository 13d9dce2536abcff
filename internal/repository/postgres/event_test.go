package postgres_test

import (
	"context"
	"testing"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEventRepository_UpsertAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEventRepository(db)
	ctx := context.Background()
	start := time.Date(2024, 9, 5, 22, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	synced := time.Now().UTC()

	t.Run("Upsert replaces by id", func(t *testing.T) {
		e := &domain.Event{ID: "evt1", Title: "Kickoff", Start: start, End: end, SyncedAt: synced}
		mock.ExpectExec("INSERT INTO events (.+) ON CONFLICT \\(id\\) DO UPDATE").
			WithArgs("evt1", "Kickoff", "", "", start, end, false, synced).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Upsert(ctx, e))
	})

	t.Run("List from", func(t *testing.T) {
		from := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM events WHERE start_at >= \\$1 ORDER BY start_at ASC").
			WithArgs(from).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "location", "start_at", "end_at", "is_all_day", "synced_at"}).
				AddRow("evt1", "Kickoff", "Intro night", "Westgate E201", start, end, false, synced))

		events, err := repo.List(ctx, from)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "Westgate E201", events[0].Location)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRSVPRepository(db)
	ctx := context.Background()

	t.Run("Put", func(t *testing.T) {
		at := time.Now().UTC()
		mock.ExpectExec("INSERT INTO rsvps").
			WithArgs("evt1", "u1", "Ada", "ada@psu.edu", at).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Put(ctx, &domain.Attendee{EventID: "evt1", MemberID: "u1", DisplayName: "Ada", Email: "ada@psu.edu", RSVPedAt: at}))
	})

	t.Run("Delete absent is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM rsvps WHERE event_id = \\$1 AND member_id = \\$2").
			WithArgs("evt1", "u9").
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.NoError(t, repo.Delete(ctx, "evt1", "u9"))
	})

	t.Run("Event ids for member", func(t *testing.T) {
		mock.ExpectQuery("SELECT event_id FROM rsvps WHERE member_id = \\$1").
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow("evt1").AddRow("evt2"))
		ids, err := repo.ListEventIDsForMember(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, []string{"evt1", "evt2"}, ids)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
