package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNoteRequired      = errors.New("a note to the submitter is required")
	ErrNotApproved       = errors.New("only approved projects can be featured")
	ErrInvalidTransition = errors.New("invalid project status transition")
)

type ProjectStatus string

const (
	ProjectStatusPending          ProjectStatus = "pending"
	ProjectStatusApproved         ProjectStatus = "approved"
	ProjectStatusRejected         ProjectStatus = "rejected"
	ProjectStatusChangesRequested ProjectStatus = "changes_requested"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusApproved, ProjectStatusRejected, ProjectStatusChangesRequested:
		return true
	}
	return false
}

type ProjectTechLevel string

const (
	ProjectLevelBeginner     ProjectTechLevel = "beginner"
	ProjectLevelIntermediate ProjectTechLevel = "intermediate"
	ProjectLevelAdvanced     ProjectTechLevel = "advanced"
)

// GitHubMeta is captured once when the repository is validated and is never
// refreshed afterwards.
type GitHubMeta struct {
	Owner         string    `json:"owner" firestore:"owner"`
	Repo          string    `json:"repo" firestore:"repo"`
	Language      *string   `json:"language" firestore:"language"`
	Stars         int       `json:"stars" firestore:"stars"`
	LastCommit    time.Time `json:"lastCommit" firestore:"lastCommit"`
	ReadmeExcerpt string    `json:"readmeExcerpt" firestore:"readmeExcerpt"`
}

type Project struct {
	ID            string           `json:"id" firestore:"-"`
	OwnerID       string           `json:"ownerId" firestore:"ownerId"`
	OwnerName     string           `json:"ownerName" firestore:"ownerName"`
	OwnerEmail    string           `json:"ownerEmail" firestore:"ownerEmail"`
	Collaborators []string         `json:"collaborators" firestore:"collaborators"`
	RepoURL       string           `json:"repoUrl" firestore:"repoUrl"`
	Title         string           `json:"title" firestore:"title"`
	Description   string           `json:"description" firestore:"description"`
	Tags          []string         `json:"tags" firestore:"tags"`
	TechLevel     ProjectTechLevel `json:"techLevel" firestore:"techLevel"`
	DemoURL       *string          `json:"demoUrl" firestore:"demoUrl"`
	GitHubMeta    GitHubMeta       `json:"githubMeta" firestore:"githubMeta"`
	Status        ProjectStatus    `json:"status" firestore:"status"`
	Featured      bool             `json:"featured" firestore:"featured"`
	SubmittedAt   time.Time        `json:"submittedAt" firestore:"submittedAt"`
	ApprovedAt    *time.Time       `json:"approvedAt,omitempty" firestore:"approvedAt"`
	AdminNote     string           `json:"adminNote,omitempty" firestore:"adminNote"`
}

// IsVisible gates the public and member showcase listings.
func (p *Project) IsVisible() bool {
	return p.Status == ProjectStatusApproved
}

// Approve publishes the project. The reviewer note is cleared.
func (p *Project) Approve(now time.Time) {
	p.Status = ProjectStatusApproved
	p.ApprovedAt = &now
	p.AdminNote = ""
}

// RequestChanges sends the project back to the submitter. A blank note leaves
// the project untouched.
func (p *Project) RequestChanges(note string) error {
	return p.review(ProjectStatusChangesRequested, note)
}

// Reject closes the project. A blank note leaves the project untouched.
func (p *Project) Reject(note string) error {
	return p.review(ProjectStatusRejected, note)
}

func (p *Project) review(status ProjectStatus, note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return ErrNoteRequired
	}
	p.Status = status
	p.AdminNote = note
	return nil
}

// ToggleFeatured flips the featured flag of an approved project.
func (p *Project) ToggleFeatured() error {
	if p.Status != ProjectStatusApproved {
		return ErrNotApproved
	}
	p.Featured = !p.Featured
	return nil
}

// Transition applies a reviewer decision by target status. Moving back to
// pending is not allowed.
func (p *Project) Transition(to ProjectStatus, note string, now time.Time) error {
	switch to {
	case ProjectStatusApproved:
		p.Approve(now)
		return nil
	case ProjectStatusChangesRequested:
		return p.RequestChanges(note)
	case ProjectStatusRejected:
		return p.Reject(note)
	default:
		return ErrInvalidTransition
	}
}
