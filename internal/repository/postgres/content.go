package postgres

import (
	"context"
	"database/sql"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"

	"github.com/lib/pq"
)

func techLevelStrings(levels []domain.TechLevel) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}
	return out
}

func techLevelsFrom(values []string) []domain.TechLevel {
	out := make([]domain.TechLevel, len(values))
	for i, v := range values {
		out[i] = domain.TechLevel(v)
	}
	return out
}

type resourceRepository struct {
	db *sql.DB
}

func NewResourceRepository(db *sql.DB) repository.ResourceRepository {
	return &resourceRepository{db: db}
}

const resourceColumns = `id, title, description, type, href, category, audience, tech_levels, tags, featured, sort_order, published, created_at, updated_at`

func scanResource(row rowScanner) (*domain.Resource, error) {
	r := &domain.Resource{}
	var levels []string
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.Type, &r.Href, &r.Category, &r.Audience,
		pq.Array(&levels), pq.Array(&r.Tags), &r.Featured, &r.Order, &r.Published, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.TechLevels = techLevelsFrom(levels)
	return r, nil
}

func (r *resourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (` + resourceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query, res.ID, res.Title, res.Description, res.Type, res.Href, res.Category,
		res.Audience, pq.Array(techLevelStrings(res.TechLevels)), pq.Array(res.Tags), res.Featured, res.Order,
		res.Published, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *resourceRepository) Get(ctx context.Context, id string) (*domain.Resource, error) {
	res, err := scanResource(r.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return res, nil
}

func (r *resourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	query := `UPDATE resources SET title=$1, description=$2, type=$3, href=$4, category=$5, audience=$6,
	          tech_levels=$7, tags=$8, featured=$9, sort_order=$10, published=$11, updated_at=$12 WHERE id=$13`
	return affected(r.db.ExecContext(ctx, query, res.Title, res.Description, res.Type, res.Href, res.Category,
		res.Audience, pq.Array(techLevelStrings(res.TechLevels)), pq.Array(res.Tags), res.Featured, res.Order,
		res.Published, res.UpdatedAt, res.ID))
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id))
}

func (r *resourceRepository) List(ctx context.Context, publishedOnly bool) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY sort_order ASC, title ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

type caseStudyRepository struct {
	db *sql.DB
}

func NewCaseStudyRepository(db *sql.DB) repository.CaseStudyRepository {
	return &caseStudyRepository{db: db}
}

const caseStudyColumns = `id, type, title, semester, description, outcomes, tools, tags, tech_levels, audience, featured, sort_order, published, course, course_title, professor, department, org_name, org_type, image, created_at, updated_at`

func scanCaseStudy(row rowScanner) (*domain.CaseStudy, error) {
	c := &domain.CaseStudy{}
	var levels []string
	err := row.Scan(&c.ID, &c.Type, &c.Title, &c.Semester, &c.Description, pq.Array(&c.Outcomes), pq.Array(&c.Tools),
		pq.Array(&c.Tags), pq.Array(&levels), &c.Audience, &c.Featured, &c.Order, &c.Published, &c.Course,
		&c.CourseTitle, &c.Professor, &c.Department, &c.OrgName, &c.OrgType, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.TechLevels = techLevelsFrom(levels)
	return c, nil
}

func (r *caseStudyRepository) Create(ctx context.Context, c *domain.CaseStudy) error {
	query := `INSERT INTO case_studies (` + caseStudyColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Type, c.Title, c.Semester, c.Description, pq.Array(c.Outcomes),
		pq.Array(c.Tools), pq.Array(c.Tags), pq.Array(techLevelStrings(c.TechLevels)), c.Audience, c.Featured, c.Order,
		c.Published, c.Course, c.CourseTitle, c.Professor, c.Department, c.OrgName, c.OrgType, c.Image, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *caseStudyRepository) Get(ctx context.Context, id string) (*domain.CaseStudy, error) {
	c, err := scanCaseStudy(r.db.QueryRowContext(ctx, `SELECT `+caseStudyColumns+` FROM case_studies WHERE id = $1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return c, nil
}

func (r *caseStudyRepository) Update(ctx context.Context, c *domain.CaseStudy) error {
	query := `UPDATE case_studies SET type=$1, title=$2, semester=$3, description=$4, outcomes=$5, tools=$6, tags=$7,
	          tech_levels=$8, audience=$9, featured=$10, sort_order=$11, published=$12, course=$13, course_title=$14,
	          professor=$15, department=$16, org_name=$17, org_type=$18, image=$19, updated_at=$20 WHERE id=$21`
	return affected(r.db.ExecContext(ctx, query, c.Type, c.Title, c.Semester, c.Description, pq.Array(c.Outcomes),
		pq.Array(c.Tools), pq.Array(c.Tags), pq.Array(techLevelStrings(c.TechLevels)), c.Audience, c.Featured, c.Order,
		c.Published, c.Course, c.CourseTitle, c.Professor, c.Department, c.OrgName, c.OrgType, c.Image, c.UpdatedAt, c.ID))
}

func (r *caseStudyRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, `DELETE FROM case_studies WHERE id = $1`, id))
}

func (r *caseStudyRepository) List(ctx context.Context, publishedOnly bool) ([]domain.CaseStudy, error) {
	query := `SELECT ` + caseStudyColumns + ` FROM case_studies`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY sort_order ASC, title ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var studies []domain.CaseStudy
	for rows.Next() {
		c, err := scanCaseStudy(rows)
		if err != nil {
			return nil, err
		}
		studies = append(studies, *c)
	}
	return studies, rows.Err()
}
