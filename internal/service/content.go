package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"

	"github.com/google/uuid"
)

type ResourceInput struct {
	Title       string                  `json:"title" validate:"notblank,max=200"`
	Description string                  `json:"description" validate:"max=2000"`
	Type        domain.ResourceType     `json:"type" validate:"oneof=drive link video"`
	Href        string                  `json:"href" validate:"required,url"`
	Category    domain.ResourceCategory `json:"category" validate:"oneof=getting-started prompt-engineering workshops reference external faculty"`
	Audience    domain.Audience         `json:"audience" validate:"oneof=student faculty all"`
	TechLevels  []domain.TechLevel      `json:"techLevels" validate:"dive,oneof=beginner some intermediate advanced"`
	Tags        []string                `json:"tags" validate:"max=20,dive,max=40"`
	Featured    bool                    `json:"featured"`
	Order       int                     `json:"order" validate:"min=0"`
	Published   bool                    `json:"published"`
}

// CaseStudyInput requires the course code for academic studies and the
// organization name for club studies.
type CaseStudyInput struct {
	Type        domain.CaseStudyType `json:"type" validate:"oneof=academic club"`
	Title       string               `json:"title" validate:"notblank,max=200"`
	Semester    string               `json:"semester" validate:"max=40"`
	Description string               `json:"description" validate:"max=4000"`
	Outcomes    []string             `json:"outcomes" validate:"max=20,dive,notblank"`
	Tools       []string             `json:"tools" validate:"max=20,dive,notblank"`
	Tags        []string             `json:"tags" validate:"max=20,dive,max=40"`
	TechLevels  []domain.TechLevel   `json:"techLevels" validate:"dive,oneof=beginner some intermediate advanced"`
	Audience    domain.Audience      `json:"audience" validate:"oneof=student faculty all"`
	Featured    bool                 `json:"featured"`
	Order       int                  `json:"order" validate:"min=0"`
	Published   bool                 `json:"published"`

	Course      string `json:"course" validate:"required_if=Type academic,max=40"`
	CourseTitle string `json:"courseTitle" validate:"max=200"`
	Professor   string `json:"professor" validate:"max=120"`
	Department  string `json:"department" validate:"max=120"`

	OrgName string `json:"orgName" validate:"required_if=Type club,max=200"`
	OrgType string `json:"orgType" validate:"max=80"`

	Image string `json:"image" validate:"omitempty,url"`
}

type contentService struct {
	resources   repository.ResourceRepository
	caseStudies repository.CaseStudyRepository
}

func NewContentService(resources repository.ResourceRepository, caseStudies repository.CaseStudyRepository) ContentService {
	return &contentService{resources: resources, caseStudies: caseStudies}
}

func (s *contentService) ListResources(ctx context.Context, publishedOnly bool) ([]domain.Resource, error) {
	list, err := s.resources.List(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	if list == nil {
		list = []domain.Resource{}
	}
	return list, nil
}

func (s *contentService) CreateResource(ctx context.Context, in ResourceInput) (*domain.Resource, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	r := &domain.Resource{ID: uuid.NewString(), CreatedAt: now}
	applyResource(r, in, now)

	if err := s.resources.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	logger.Info("Resource created", "id", r.ID, "title", r.Title)
	return r, nil
}

func (s *contentService) UpdateResource(ctx context.Context, id string, in ResourceInput) (*domain.Resource, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	r, err := s.resources.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	applyResource(r, in, time.Now().UTC())

	if err := s.resources.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	return r, nil
}

func (s *contentService) DeleteResource(ctx context.Context, id string) error {
	if err := s.resources.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	logger.Info("Resource deleted", "id", id)
	return nil
}

func applyResource(r *domain.Resource, in ResourceInput, now time.Time) {
	r.Title = strings.TrimSpace(in.Title)
	r.Description = strings.TrimSpace(in.Description)
	r.Type = in.Type
	r.Href = strings.TrimSpace(in.Href)
	r.Category = in.Category
	r.Audience = in.Audience
	r.TechLevels = nonNil(in.TechLevels)
	r.Tags = normalizeTags(in.Tags)
	r.Featured = in.Featured
	r.Order = in.Order
	r.Published = in.Published
	r.UpdatedAt = now
}

func (s *contentService) ListCaseStudies(ctx context.Context, publishedOnly bool) ([]domain.CaseStudy, error) {
	list, err := s.caseStudies.List(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list case studies: %w", err)
	}
	if list == nil {
		list = []domain.CaseStudy{}
	}
	return list, nil
}

func (s *contentService) CreateCaseStudy(ctx context.Context, in CaseStudyInput) (*domain.CaseStudy, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.CaseStudy{ID: uuid.NewString(), CreatedAt: now}
	applyCaseStudy(c, in, now)

	if err := s.caseStudies.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create case study: %w", err)
	}
	logger.Info("Case study created", "id", c.ID, "title", c.Title)
	return c, nil
}

func (s *contentService) UpdateCaseStudy(ctx context.Context, id string, in CaseStudyInput) (*domain.CaseStudy, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	c, err := s.caseStudies.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get case study: %w", err)
	}
	applyCaseStudy(c, in, time.Now().UTC())

	if err := s.caseStudies.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update case study: %w", err)
	}
	return c, nil
}

func (s *contentService) DeleteCaseStudy(ctx context.Context, id string) error {
	if err := s.caseStudies.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete case study: %w", err)
	}
	logger.Info("Case study deleted", "id", id)
	return nil
}

// applyCaseStudy copies the form. Fields of the other study type are cleared.
func applyCaseStudy(c *domain.CaseStudy, in CaseStudyInput, now time.Time) {
	c.Type = in.Type
	c.Title = strings.TrimSpace(in.Title)
	c.Semester = strings.TrimSpace(in.Semester)
	c.Description = strings.TrimSpace(in.Description)
	c.Outcomes = nonNil(in.Outcomes)
	c.Tools = nonNil(in.Tools)
	c.Tags = normalizeTags(in.Tags)
	c.TechLevels = nonNil(in.TechLevels)
	c.Audience = in.Audience
	c.Featured = in.Featured
	c.Order = in.Order
	c.Published = in.Published
	c.Image = strings.TrimSpace(in.Image)
	c.UpdatedAt = now

	c.Course, c.CourseTitle, c.Professor, c.Department = "", "", "", ""
	c.OrgName, c.OrgType = "", ""
	switch in.Type {
	case domain.CaseStudyAcademic:
		c.Course = strings.TrimSpace(in.Course)
		c.CourseTitle = strings.TrimSpace(in.CourseTitle)
		c.Professor = strings.TrimSpace(in.Professor)
		c.Department = strings.TrimSpace(in.Department)
	case domain.CaseStudyClub:
		c.OrgName = strings.TrimSpace(in.OrgName)
		c.OrgType = strings.TrimSpace(in.OrgType)
	}
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
