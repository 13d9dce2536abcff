package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"
	"builderclub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var memberCols = []string{"uid", "email", "display_name", "major", "year", "college", "tech_level", "interests",
	"email_reminders", "newsletter", "created_at", "updated_at", "is_admin", "referral_source", "profile_public"}

func TestMemberRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()
	created := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM members WHERE uid = \\$1").
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(memberCols).AddRow(
				"u1", "ada@psu.edu", "Ada", "CS", "junior", "Engineering", "advanced", "{agents,web}",
				true, false, created, created, false, "", false))

		m, err := repo.Get(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, "Ada", m.DisplayName)
		assert.Equal(t, domain.YearJunior, m.Year)
		assert.Equal(t, []string{"agents", "web"}, m.Interests)
		assert.Equal(t, created, m.CreatedAt)
		if assert.NotNil(t, m.ProfilePublic) {
			assert.False(t, *m.ProfilePublic)
		}
	})

	t.Run("Legacy profile without join date", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM members WHERE uid = \\$1").
			WithArgs("u2").
			WillReturnRows(sqlmock.NewRows(memberCols).AddRow(
				"u2", "b@psu.edu", "", "", "", "", "", "{}", false, false, nil, created, false, "", nil))

		m, err := repo.Get(ctx, "u2")
		assert.NoError(t, err)
		assert.False(t, m.HasJoinDate())
		assert.Nil(t, m.ProfilePublic)
		assert.True(t, m.IsPublic())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM members WHERE uid = \\$1").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	now := time.Now().UTC()
	m := &domain.Member{UID: "u1", Email: "ada@psu.edu", DisplayName: "Ada", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO members (.+) ON CONFLICT \\(uid\\) DO UPDATE").
		WithArgs("u1", "ada@psu.edu", "Ada", "", domain.Year(""), "", domain.TechLevel(""), sqlmock.AnyArg(),
			false, false, sqlmock.AnyArg(), now, false, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Save(context.Background(), m))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_SetAdminAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Set admin", func(t *testing.T) {
		mock.ExpectExec("UPDATE members SET is_admin = \\$1").
			WithArgs(true, sqlmock.AnyArg(), "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.SetAdmin(ctx, "u1", true))
	})

	t.Run("Delete missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM members WHERE uid = \\$1").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(ctx, "ghost"), repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
