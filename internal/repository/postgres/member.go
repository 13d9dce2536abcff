package postgres

import (
	"context"
	"database/sql"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"

	"github.com/lib/pq"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `uid, email, display_name, major, year, college, tech_level, interests, email_reminders, newsletter, created_at, updated_at, is_admin, referral_source, profile_public`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*domain.Member, error) {
	m := &domain.Member{}
	var createdAt sql.NullTime
	var profilePublic sql.NullBool
	err := row.Scan(&m.UID, &m.Email, &m.DisplayName, &m.Major, &m.Year, &m.College, &m.TechLevel,
		pq.Array(&m.Interests), &m.EmailReminders, &m.Newsletter, &createdAt, &m.UpdatedAt,
		&m.IsAdmin, &m.ReferralSource, &profilePublic)
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		m.CreatedAt = createdAt.Time
	}
	if profilePublic.Valid {
		v := profilePublic.Bool
		m.ProfilePublic = &v
	}
	return m, nil
}

func (r *memberRepository) Get(ctx context.Context, uid string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE uid = $1`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

func (r *memberRepository) Save(ctx context.Context, m *domain.Member) error {
	logger.DatabaseCall("UPSERT", "members", "uid", m.UID)
	query := `INSERT INTO members (` + memberColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          ON CONFLICT (uid) DO UPDATE SET
	            email = EXCLUDED.email, display_name = EXCLUDED.display_name, major = EXCLUDED.major,
	            year = EXCLUDED.year, college = EXCLUDED.college, tech_level = EXCLUDED.tech_level,
	            interests = EXCLUDED.interests, email_reminders = EXCLUDED.email_reminders,
	            newsletter = EXCLUDED.newsletter, created_at = COALESCE(members.created_at, EXCLUDED.created_at),
	            updated_at = EXCLUDED.updated_at, is_admin = EXCLUDED.is_admin,
	            referral_source = EXCLUDED.referral_source, profile_public = EXCLUDED.profile_public`
	var createdAt sql.NullTime
	if !m.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: m.CreatedAt, Valid: true}
	}
	var profilePublic sql.NullBool
	if m.ProfilePublic != nil {
		profilePublic = sql.NullBool{Bool: *m.ProfilePublic, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, m.UID, m.Email, m.DisplayName, m.Major, m.Year, m.College,
		m.TechLevel, pq.Array(m.Interests), m.EmailReminders, m.Newsletter, createdAt, m.UpdatedAt,
		m.IsAdmin, m.ReferralSource, profilePublic)
	logger.DatabaseResult("UPSERT", 1, err)
	return err
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY display_name, uid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *memberRepository) SetAdmin(ctx context.Context, uid string, admin bool) error {
	query := `UPDATE members SET is_admin = $1, updated_at = $2 WHERE uid = $3`
	return affected(r.db.ExecContext(ctx, query, admin, time.Now().UTC(), uid))
}

func (r *memberRepository) Delete(ctx context.Context, uid string) error {
	return affected(r.db.ExecContext(ctx, `DELETE FROM members WHERE uid = $1`, uid))
}
