package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"
)

// ProfileInput is the settings form. Email and the admin flag are never
// taken from the client.
type ProfileInput struct {
	DisplayName    string           `json:"displayName" validate:"notblank,max=100"`
	Major          string           `json:"major" validate:"max=120"`
	Year           domain.Year      `json:"year" validate:"omitempty,oneof=freshman sophomore junior senior graduate faculty other"`
	College        string           `json:"college" validate:"max=120"`
	TechLevel      domain.TechLevel `json:"techLevel" validate:"omitempty,oneof=beginner some intermediate advanced"`
	Interests      []string         `json:"interests" validate:"max=30,dive,max=60"`
	EmailReminders bool             `json:"emailReminders"`
	Newsletter     bool             `json:"newsletter"`
	ReferralSource string           `json:"referralSource" validate:"max=60"`
	ProfilePublic  *bool            `json:"profilePublic"`
}

type memberService struct {
	members  repository.MemberRepository
	projects repository.ProjectRepository
}

func NewMemberService(members repository.MemberRepository, projects repository.ProjectRepository) MemberService {
	return &memberService{members: members, projects: projects}
}

func (s *memberService) GetProfile(ctx context.Context, uid string) (*domain.Member, error) {
	m, err := s.members.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return m, nil
}

// SaveProfile creates the profile on first save and keeps its creation time
// on every later save.
func (s *memberService) SaveProfile(ctx context.Context, sess Session, in ProfileInput) (*domain.Member, error) {
	logger.EnterMethod("memberService.SaveProfile", "uid", sess.UID)

	if err := checkStruct(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m, err := s.members.Get(ctx, sess.UID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		m = &domain.Member{UID: sess.UID, CreatedAt: now, IsAdmin: sess.Admin}
	case err != nil:
		logger.ExitMethodWithError("memberService.SaveProfile", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	m.Email = sess.Email
	m.DisplayName = strings.TrimSpace(in.DisplayName)
	m.Major = strings.TrimSpace(in.Major)
	m.Year = in.Year
	m.College = strings.TrimSpace(in.College)
	m.TechLevel = in.TechLevel
	m.Interests = normalizeTags(in.Interests)
	m.EmailReminders = in.EmailReminders
	m.Newsletter = in.Newsletter
	m.ReferralSource = strings.TrimSpace(in.ReferralSource)
	m.ProfilePublic = in.ProfilePublic
	m.UpdatedAt = now

	if err := s.members.Save(ctx, m); err != nil {
		logger.ExitMethodWithError("memberService.SaveProfile", err)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.ExitMethod("memberService.SaveProfile", "uid", sess.UID)
	return m, nil
}

// ListDirectory returns visible profiles whose name, major or college
// contains query, ignoring case.
func (s *memberService) ListDirectory(ctx context.Context, query string) ([]domain.PublicMember, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.PublicMember{}
	for i := range members {
		m := &members[i]
		if !m.IsPublic() || m.DisplayName == "" {
			continue
		}
		if q != "" && !matchesQuery(m, q) {
			continue
		}
		out = append(out, m.Public())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out, nil
}

func matchesQuery(m *domain.Member, q string) bool {
	for _, field := range []string{m.DisplayName, m.Major, m.College} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// GetPublicProfile hides profiles that opted out of the directory.
func (s *memberService) GetPublicProfile(ctx context.Context, uid string) (*PublicProfile, error) {
	m, err := s.members.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if !m.IsPublic() {
		return nil, ErrNotFound
	}

	projects, err := s.projects.List(ctx, repository.ProjectFilter{
		Status:  domain.ProjectStatusApproved,
		OwnerID: uid,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return &PublicProfile{Member: m.Public(), Projects: projects}, nil
}

// normalizeTags trims, drops blanks and removes duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
