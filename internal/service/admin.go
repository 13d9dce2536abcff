package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"
	"builderclub-backend/internal/security"

	"golang.org/x/sync/errgroup"
)

const cleanupFanOut = 10

type adminService struct {
	members  repository.MemberRepository
	rsvps    repository.RSVPRepository
	identity security.IdentityProvider
}

func NewAdminService(members repository.MemberRepository, rsvps repository.RSVPRepository, identity security.IdentityProvider) AdminService {
	return &adminService{members: members, rsvps: rsvps, identity: identity}
}

// ListUsers returns every profile, newest first.
func (s *adminService) ListUsers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].CreatedAt.After(members[j].CreatedAt)
	})
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

// SetAdmin updates both the profile flag and the identity claim. The claim
// reaches the user's token at their next sign-in.
func (s *adminService) SetAdmin(ctx context.Context, caller Session, uid string, admin bool) error {
	logger.EnterMethod("adminService.SetAdmin", "caller", caller.UID, "target", uid, "admin", admin)

	if strings.TrimSpace(uid) == "" {
		return invalid("uid", "Missing uid")
	}
	if uid == caller.UID && !admin {
		return invalid("uid", "You cannot remove your own admin access")
	}

	if err := s.members.SetAdmin(ctx, uid, admin); err != nil {
		logger.ExitMethodWithError("adminService.SetAdmin", err)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if err := s.identity.SetAdmin(ctx, uid, admin); err != nil {
		logger.ExitMethodWithError("adminService.SetAdmin", err)
		if errors.Is(err, security.ErrUserNotFound) {
			return fmt.Errorf("identity %s: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update admin claim: %w", err)
	}

	logger.ExitMethod("adminService.SetAdmin")
	return nil
}

// DeleteUser removes the identity, then the profile and every RSVP. Cleanup
// failures after the identity is gone are logged and skipped, so a partial
// cleanup never fails the deletion.
func (s *adminService) DeleteUser(ctx context.Context, caller Session, uid string) error {
	logger.EnterMethod("adminService.DeleteUser", "caller", caller.UID, "target", uid)

	if !caller.Admin {
		return ErrForbidden
	}
	if strings.TrimSpace(uid) == "" {
		return invalid("uid", "Missing or invalid uid in request body")
	}
	if uid == caller.UID {
		return invalid("uid", "Cannot delete your own account")
	}

	if err := s.identity.DeleteUser(ctx, uid); err != nil {
		logger.ExitMethodWithError("adminService.DeleteUser", err)
		if errors.Is(err, security.ErrUserNotFound) {
			return fmt.Errorf("identity %s: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	if err := s.members.Delete(ctx, uid); err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Warn("Failed to delete profile", "uid", uid, "error", err)
	}

	eventIDs, err := s.rsvps.ListEventIDs(ctx)
	if err != nil {
		logger.Warn("Failed to list RSVP events for cleanup", "uid", uid, "error", err)
	}
	var g errgroup.Group
	g.SetLimit(cleanupFanOut)
	for _, eventID := range eventIDs {
		eventID := eventID
		g.Go(func() error {
			if err := s.rsvps.Delete(ctx, eventID, uid); err != nil && !errors.Is(err, repository.ErrNotFound) {
				logger.Warn("Failed to delete RSVP", "uid", uid, "event_id", eventID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("User deleted", "uid", uid, "by", caller.UID)
	logger.ExitMethod("adminService.DeleteUser")
	return nil
}
