package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/integrations/github"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"
	"builderclub-backend/internal/utils"

	"github.com/google/uuid"
)

// RepoValidator checks that a repository exists and is public.
type RepoValidator interface {
	Validate(ctx context.Context, ref utils.RepoRef) (*github.Validation, error)
}

type SubmitProjectInput struct {
	RepoURL       string                  `json:"repoUrl" validate:"notblank"`
	Title         string                  `json:"title" validate:"notblank,max=120"`
	Description   string                  `json:"description" validate:"notblank,max=2000"`
	Tags          []string                `json:"tags" validate:"max=10,dive,max=40"`
	TechLevel     domain.ProjectTechLevel `json:"techLevel" validate:"oneof=beginner intermediate advanced"`
	DemoURL       string                  `json:"demoUrl" validate:"omitempty,url"`
	Collaborators []string                `json:"collaborators" validate:"max=10,dive,max=100"`
}

type projectService struct {
	projects repository.ProjectRepository
	members  repository.MemberRepository
	repos    RepoValidator
}

func NewProjectService(projects repository.ProjectRepository, members repository.MemberRepository, repos RepoValidator) ProjectService {
	return &projectService{projects: projects, members: members, repos: repos}
}

// ValidateRepository parses a github.com URL and snapshots the repository.
// Private or missing repositories are rejected.
func (s *projectService) ValidateRepository(ctx context.Context, rawURL string) (*github.Validation, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, invalid("url", "Missing url parameter")
	}
	ref, err := utils.ParseRepoURL(rawURL)
	if err != nil {
		return nil, invalid("url", "Invalid GitHub URL — must be github.com/owner/repo")
	}

	v, err := s.repos.Validate(ctx, ref)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, github.ErrRepoNotFound):
		return nil, fmt.Errorf("repository %s/%s: %w", ref.Owner, ref.Repo, ErrNotFound)
	case errors.Is(err, github.ErrRepoPrivate):
		return nil, invalid("url", "Repository is private — only public repos can be submitted")
	default:
		logger.Error("GitHub validation failed", "owner", ref.Owner, "repo", ref.Repo, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
}

// Submit re-validates the repository server side and stores the project as
// pending review with a snapshot of the repository metadata.
func (s *projectService) Submit(ctx context.Context, sess Session, in SubmitProjectInput) (*domain.Project, error) {
	logger.EnterMethod("projectService.Submit", "uid", sess.UID)

	if err := checkStruct(in); err != nil {
		return nil, err
	}
	v, err := s.ValidateRepository(ctx, in.RepoURL)
	if err != nil {
		logger.ExitMethodWithError("projectService.Submit", err)
		return nil, err
	}

	ownerName := ""
	profile, err := s.members.Get(ctx, sess.UID)
	switch {
	case err == nil:
		ownerName = profile.DisplayName
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var demo *string
	if d := strings.TrimSpace(in.DemoURL); d != "" {
		demo = &d
	}

	p := &domain.Project{
		ID:            uuid.NewString(),
		OwnerID:       sess.UID,
		OwnerName:     ownerName,
		OwnerEmail:    sess.Email,
		Collaborators: normalizeTags(in.Collaborators),
		RepoURL:       strings.TrimSpace(in.RepoURL),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Tags:          normalizeTags(in.Tags),
		TechLevel:     in.TechLevel,
		DemoURL:       demo,
		GitHubMeta: domain.GitHubMeta{
			Owner:         v.Owner,
			Repo:          v.Repo,
			Language:      v.Language,
			Stars:         v.Stars,
			LastCommit:    v.LastCommit,
			ReadmeExcerpt: v.ReadmeExcerpt,
		},
		Status:      domain.ProjectStatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		logger.ExitMethodWithError("projectService.Submit", err)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.ExitMethod("projectService.Submit", "project_id", p.ID)
	return p, nil
}

func (s *projectService) ListApproved(ctx context.Context) ([]domain.Project, error) {
	return s.list(ctx, repository.ProjectFilter{Status: domain.ProjectStatusApproved})
}

func (s *projectService) ListMine(ctx context.Context, sess Session) ([]domain.Project, error) {
	return s.list(ctx, repository.ProjectFilter{OwnerID: sess.UID})
}

// ListAll is the review queue. An empty status lists everything.
func (s *projectService) ListAll(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	if status != "" && !status.Valid() {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.list(ctx, repository.ProjectFilter{Status: status})
}

func (s *projectService) list(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// Get hides projects under review from everyone but the owner and admins.
func (s *projectService) Get(ctx context.Context, sess Session, id string) (*domain.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if !p.IsVisible() && p.OwnerID != sess.UID && !sess.Admin {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *projectService) Approve(ctx context.Context, id string) (*domain.Project, error) {
	return s.decide(ctx, id, "approve", domain.ProjectStatusApproved, "")
}

func (s *projectService) RequestChanges(ctx context.Context, id, note string) (*domain.Project, error) {
	return s.decide(ctx, id, "request_changes", domain.ProjectStatusChangesRequested, note)
}

func (s *projectService) Reject(ctx context.Context, id, note string) (*domain.Project, error) {
	return s.decide(ctx, id, "reject", domain.ProjectStatusRejected, note)
}

func (s *projectService) ToggleFeatured(ctx context.Context, id string) (*domain.Project, error) {
	return s.review(ctx, id, "toggle_featured", func(p *domain.Project) error {
		return p.ToggleFeatured()
	})
}

// decide applies a reviewer decision through the status state machine.
func (s *projectService) decide(ctx context.Context, id, action string, to domain.ProjectStatus, note string) (*domain.Project, error) {
	return s.review(ctx, id, action, func(p *domain.Project) error {
		return p.Transition(to, note, time.Now().UTC())
	})
}

// review loads a project, applies a state machine action and persists the
// result. A rejected action leaves the stored project untouched.
func (s *projectService) review(ctx context.Context, id, action string, apply func(*domain.Project) error) (*domain.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := apply(p); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoteRequired):
			return nil, invalid("note", "Please add a note for the submitter.")
		case errors.Is(err, domain.ErrNotApproved):
			return nil, invalid("status", "Only approved projects can be featured.")
		case errors.Is(err, domain.ErrInvalidTransition):
			return nil, invalid("status", "Unsupported review decision.")
		}
		return nil, err
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	logger.Info("Project reviewed", "project_id", id, "action", action, "status", p.Status, "featured", p.Featured)
	return p, nil
}
