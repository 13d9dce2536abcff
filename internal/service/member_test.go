package service_test

import (
	"context"
	"testing"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"
	"builderclub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMemberService_SaveProfile(t *testing.T) {
	ctx := context.Background()
	sess := service.Session{UID: "u1", Email: "abc123@psu.edu"}
	input := service.ProfileInput{
		DisplayName: "  Ada Lovelace ",
		Major:       "Computer Science",
		Year:        domain.YearJunior,
		College:     "Engineering",
		TechLevel:   domain.TechLevelIntermediate,
		Interests:   []string{"agents", " agents", "", "evals"},
		Newsletter:  true,
	}

	t.Run("Creates profile on first save", func(t *testing.T) {
		members := new(MockMemberRepo)
		svc := service.NewMemberService(members, nil)

		members.On("Get", ctx, "u1").Return(nil, repository.ErrNotFound).Once()
		members.On("Save", ctx, mock.MatchedBy(func(m *domain.Member) bool {
			return m.UID == "u1" && m.Email == "abc123@psu.edu" && !m.CreatedAt.IsZero() && m.CreatedAt.Equal(m.UpdatedAt)
		})).Return(nil).Once()

		m, err := svc.SaveProfile(ctx, sess, input)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", m.DisplayName)
		assert.Equal(t, []string{"agents", "evals"}, m.Interests)
		assert.True(t, m.IsProfileComplete())
		members.AssertExpectations(t)
	})

	t.Run("Preserves creation time and admin flag", func(t *testing.T) {
		members := new(MockMemberRepo)
		svc := service.NewMemberService(members, nil)
		created := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
		existing := &domain.Member{UID: "u1", CreatedAt: created, IsAdmin: true}

		members.On("Get", ctx, "u1").Return(existing, nil).Once()
		members.On("Save", ctx, mock.Anything).Return(nil).Once()

		m, err := svc.SaveProfile(ctx, sess, input)
		require.NoError(t, err)
		assert.Equal(t, created, m.CreatedAt)
		assert.True(t, m.UpdatedAt.After(created))
		assert.True(t, m.IsAdmin)
	})

	t.Run("Rejects blank display name", func(t *testing.T) {
		svc := service.NewMemberService(new(MockMemberRepo), nil)
		bad := input
		bad.DisplayName = "   "

		_, err := svc.SaveProfile(ctx, sess, bad)
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "displayName", verr.Field)
	})

	t.Run("Rejects unknown year", func(t *testing.T) {
		svc := service.NewMemberService(new(MockMemberRepo), nil)
		bad := input
		bad.Year = "fifth"

		_, err := svc.SaveProfile(ctx, sess, bad)
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "year", verr.Field)
	})
}

func TestMemberService_ListDirectory(t *testing.T) {
	ctx := context.Background()
	hidden := false
	members := new(MockMemberRepo)
	members.On("List", ctx).Return([]domain.Member{
		{UID: "u1", DisplayName: "Zed", Major: "History"},
		{UID: "u2", DisplayName: "amy", Major: "Computer Science", College: "Engineering"},
		{UID: "u3", DisplayName: "Hidden", Major: "Computer Science", ProfilePublic: &hidden},
		{UID: "u4", DisplayName: "", Major: "Computer Science"},
	}, nil)
	svc := service.NewMemberService(members, nil)

	t.Run("All visible", func(t *testing.T) {
		list, err := svc.ListDirectory(ctx, "")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "amy", list[0].DisplayName)
		assert.Equal(t, "Zed", list[1].DisplayName)
	})

	t.Run("Query matches major case-insensitively", func(t *testing.T) {
		list, err := svc.ListDirectory(ctx, "computer")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "u2", list[0].UID)
	})

	t.Run("No match", func(t *testing.T) {
		list, err := svc.ListDirectory(ctx, "chemistry")
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.NotNil(t, list)
	})
}

func TestMemberService_GetPublicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Includes approved projects", func(t *testing.T) {
		members := new(MockMemberRepo)
		projects := new(MockProjectRepo)
		svc := service.NewMemberService(members, projects)

		members.On("Get", ctx, "u1").Return(&domain.Member{UID: "u1", DisplayName: "Ada", Email: "a@psu.edu"}, nil)
		projects.On("List", ctx, repository.ProjectFilter{Status: domain.ProjectStatusApproved, OwnerID: "u1"}).
			Return([]domain.Project{{ID: "p1", Status: domain.ProjectStatusApproved}}, nil)

		profile, err := svc.GetPublicProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", profile.Member.DisplayName)
		assert.Len(t, profile.Projects, 1)
	})

	t.Run("Hidden profile is not found", func(t *testing.T) {
		hidden := false
		members := new(MockMemberRepo)
		svc := service.NewMemberService(members, new(MockProjectRepo))
		members.On("Get", ctx, "u2").Return(&domain.Member{UID: "u2", ProfilePublic: &hidden}, nil)

		_, err := svc.GetPublicProfile(ctx, "u2")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("Missing profile is not found", func(t *testing.T) {
		members := new(MockMemberRepo)
		svc := service.NewMemberService(members, new(MockProjectRepo))
		members.On("Get", ctx, "u3").Return(nil, repository.ErrNotFound)

		_, err := svc.GetPublicProfile(ctx, "u3")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
