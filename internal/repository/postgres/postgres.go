package postgres

import (
	"context"
	"database/sql"
	"errors"

	"builderclub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.EventRepository
	repository.RSVPRepository
	repository.ResourceRepository
	repository.CaseStudyRepository
	repository.ProjectRepository
	repository.AccountRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		MemberRepository:    NewMemberRepository(db),
		EventRepository:     NewEventRepository(db),
		RSVPRepository:      NewRSVPRepository(db),
		ResourceRepository:  NewResourceRepository(db),
		CaseStudyRepository: NewCaseStudyRepository(db),
		ProjectRepository:   NewProjectRepository(db),
		AccountRepository:   NewAccountRepository(db),
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// affected turns a zero-row UPDATE or DELETE into ErrNotFound.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
