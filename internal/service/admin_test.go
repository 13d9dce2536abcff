package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"
	"builderclub-backend/internal/security"
	"builderclub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	members := new(MockMemberRepo)
	svc := service.NewAdminService(members, nil, nil)

	old := domain.Member{UID: "old", CreatedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)}
	recent := domain.Member{UID: "new", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	members.On("List", ctx).Return([]domain.Member{old, recent}, nil).Once()

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].UID)
}

func TestAdminService_SetAdmin(t *testing.T) {
	ctx := context.Background()
	caller := service.Session{UID: "admin", Admin: true}

	t.Run("Grant", func(t *testing.T) {
		members := new(MockMemberRepo)
		identity := new(MockIdentity)
		svc := service.NewAdminService(members, nil, identity)
		members.On("SetAdmin", ctx, "u1", true).Return(nil).Once()
		identity.On("SetAdmin", ctx, "u1", true).Return(nil).Once()

		require.NoError(t, svc.SetAdmin(ctx, caller, "u1", true))
		members.AssertExpectations(t)
		identity.AssertExpectations(t)
	})

	t.Run("Cannot demote self", func(t *testing.T) {
		svc := service.NewAdminService(new(MockMemberRepo), nil, new(MockIdentity))
		err := svc.SetAdmin(ctx, caller, "admin", false)
		var verr *service.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Unknown identity", func(t *testing.T) {
		members := new(MockMemberRepo)
		identity := new(MockIdentity)
		svc := service.NewAdminService(members, nil, identity)
		members.On("SetAdmin", ctx, "ghost", true).Return(nil).Once()
		identity.On("SetAdmin", ctx, "ghost", true).Return(security.ErrUserNotFound).Once()

		assert.ErrorIs(t, svc.SetAdmin(ctx, caller, "ghost", true), service.ErrNotFound)
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	caller := service.Session{UID: "admin", Admin: true}

	t.Run("Cascade tolerates cleanup failures", func(t *testing.T) {
		members := new(MockMemberRepo)
		rsvps := new(MockRSVPRepo)
		identity := new(MockIdentity)
		svc := service.NewAdminService(members, rsvps, identity)

		identity.On("DeleteUser", ctx, "u1").Return(nil).Once()
		members.On("Delete", ctx, "u1").Return(errors.New("store down")).Once()
		rsvps.On("ListEventIDs", ctx).Return([]string{"e1", "e2", "e3"}, nil).Once()
		rsvps.On("Delete", ctx, "e1", "u1").Return(nil).Once()
		rsvps.On("Delete", ctx, "e2", "u1").Return(repository.ErrNotFound).Once()
		rsvps.On("Delete", ctx, "e3", "u1").Return(errors.New("timeout")).Once()

		require.NoError(t, svc.DeleteUser(ctx, caller, "u1"))
		rsvps.AssertExpectations(t)
		members.AssertExpectations(t)
	})

	t.Run("Self delete refused", func(t *testing.T) {
		identity := new(MockIdentity)
		svc := service.NewAdminService(nil, nil, identity)

		err := svc.DeleteUser(ctx, caller, "admin")
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Cannot delete your own account", verr.Message)
		identity.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("Non admin", func(t *testing.T) {
		svc := service.NewAdminService(nil, nil, new(MockIdentity))
		err := svc.DeleteUser(ctx, service.Session{UID: "u2"}, "u1")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("Missing uid", func(t *testing.T) {
		svc := service.NewAdminService(nil, nil, new(MockIdentity))
		err := svc.DeleteUser(ctx, caller, "")
		var verr *service.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Unknown identity", func(t *testing.T) {
		identity := new(MockIdentity)
		svc := service.NewAdminService(nil, nil, identity)
		identity.On("DeleteUser", ctx, "ghost").Return(security.ErrUserNotFound).Once()

		assert.ErrorIs(t, svc.DeleteUser(ctx, caller, "ghost"), service.ErrNotFound)
	})
}
