package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"

	"github.com/lib/pq"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, owner_id, owner_name, owner_email, collaborators, repo_url, title, description, tags, tech_level, demo_url,
	gh_owner, gh_repo, gh_language, gh_stars, gh_last_commit, gh_readme_excerpt, status, featured, submitted_at, approved_at, admin_note`

func scanProject(row rowScanner) (*domain.Project, error) {
	p := &domain.Project{}
	var demoURL, language sql.NullString
	var lastCommit, approvedAt sql.NullTime
	err := row.Scan(&p.ID, &p.OwnerID, &p.OwnerName, &p.OwnerEmail, pq.Array(&p.Collaborators), &p.RepoURL, &p.Title,
		&p.Description, pq.Array(&p.Tags), &p.TechLevel, &demoURL,
		&p.GitHubMeta.Owner, &p.GitHubMeta.Repo, &language, &p.GitHubMeta.Stars, &lastCommit, &p.GitHubMeta.ReadmeExcerpt,
		&p.Status, &p.Featured, &p.SubmittedAt, &approvedAt, &p.AdminNote)
	if err != nil {
		return nil, err
	}
	if demoURL.Valid {
		p.DemoURL = &demoURL.String
	}
	if language.Valid {
		p.GitHubMeta.Language = &language.String
	}
	if lastCommit.Valid {
		p.GitHubMeta.LastCommit = lastCommit.Time
	}
	if approvedAt.Valid {
		p.ApprovedAt = &approvedAt.Time
	}
	return p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	var lastCommit sql.NullTime
	if !p.GitHubMeta.LastCommit.IsZero() {
		lastCommit = sql.NullTime{Time: p.GitHubMeta.LastCommit, Valid: true}
	}
	var approvedAt sql.NullTime
	if p.ApprovedAt != nil {
		approvedAt = sql.NullTime{Time: *p.ApprovedAt, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, p.ID, p.OwnerID, p.OwnerName, p.OwnerEmail, pq.Array(p.Collaborators),
		p.RepoURL, p.Title, p.Description, pq.Array(p.Tags), p.TechLevel, nullString(p.DemoURL),
		p.GitHubMeta.Owner, p.GitHubMeta.Repo, nullString(p.GitHubMeta.Language), p.GitHubMeta.Stars, lastCommit,
		p.GitHubMeta.ReadmeExcerpt, p.Status, p.Featured, p.SubmittedAt, approvedAt, p.AdminNote)
	return err
}

func (r *projectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// Update persists the review fields only; submission content and the
// repository snapshot are immutable once stored.
func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET status=$1, featured=$2, approved_at=$3, admin_note=$4 WHERE id=$5`
	var approvedAt sql.NullTime
	if p.ApprovedAt != nil {
		approvedAt = sql.NullTime{Time: *p.ApprovedAt, Valid: true}
	}
	return affected(r.db.ExecContext(ctx, query, p.Status, p.Featured, approvedAt, p.AdminNote, p.ID))
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	var where []string
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}
