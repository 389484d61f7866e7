package app

import (
	"context"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
)

// profileService implements the ProfileService interface
type profileService struct {
	users    users.UserRepository
	sessions users.SessionRepository
	hasher   users.PasswordHasher
	events   eventPublisher
	now      Clock
	logger   logger.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(
	userRepo users.UserRepository,
	sessionRepo users.SessionRepository,
	hasher users.PasswordHasher,
	bus events.Publisher,
	logger logger.Logger,
) (users.ProfileService, error) {
	return &profileService{
		users:    userRepo,
		sessions: sessionRepo,
		hasher:   hasher,
		events:   eventPublisher{bus: bus, logger: logger},
		now:      utcNow,
		logger:   logger,
	}, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*users.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update and records the changed fields
func (s *profileService) UpdateProfile(ctx context.Context, userID string, update *users.ProfileUpdate) (*users.User, error) {
	if update == nil {
		return nil, apperr.Validation("validation failed: profile data is required", nil)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldValues, newValues := update.Apply(user)
	if len(newValues) == 0 {
		return user, nil
	}
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.events.publish(ctx, events.UserProfileUpdated, user.ID, map[string]interface{}{
		"oldValues": oldValues,
		"newValues": newValues,
	})
	return user, nil
}

// ChangePassword replaces the password after checking the current one and signs out every session
func (s *profileService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return apperr.Unauthorized("Current password is incorrect")
	}
	if err := users.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	if currentPassword == newPassword {
		return apperr.Validation("validation failed: new password must differ from the current password", nil)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user.PasswordHash = hash
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	revoked, err := s.sessions.RevokeUserRefreshTokens(ctx, user.ID, "", now)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	s.logger.Info("Password changed for user ", user.ID, ", revoked ", revoked, " sessions")
	s.events.publish(ctx, events.PasswordChanged, user.ID, map[string]interface{}{"method": "change"})
	return nil
}

// DeactivateAccount deactivates the caller's own account
func (s *profileService) DeactivateAccount(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.setActive(ctx, user, false); err != nil {
		return err
	}
	s.events.publish(ctx, events.UserDeactivated, user.ID, map[string]interface{}{"selfService": true})
	return nil
}

// ListUsers lists accounts for administrators
func (s *profileService) ListUsers(ctx context.Context, query *users.UserQuery) ([]*users.User, int64, error) {
	if query == nil {
		query = users.NewUserQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	list, total, err := s.users.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return list, total, nil
}

func (s *profileService) GetUser(ctx context.Context, userID string) (*users.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateUserRole moves an account to another role
func (s *profileService) UpdateUserRole(ctx context.Context, userID, role string) (*users.User, error) {
	if !users.IsValidRole(role) {
		return nil, apperr.Validation("validation failed: invalid role", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	oldRole := user.Role
	user.Role = role
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("Changed role of user ", user.ID, " from ", oldRole, " to ", role)
	s.events.publish(ctx, events.UserRoleChanged, user.ID, map[string]interface{}{
		"oldRole": oldRole,
		"newRole": role,
	})
	return user, nil
}

// SetUserActive deactivates or reactivates an account on behalf of an administrator
func (s *profileService) SetUserActive(ctx context.Context, userID string, active bool) (*users.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}
	if err := s.setActive(ctx, user, active); err != nil {
		return nil, err
	}

	eventType := events.UserReactivated
	if !active {
		eventType = events.UserDeactivated
	}
	s.events.publish(ctx, eventType, user.ID, map[string]interface{}{"selfService": false})
	return user, nil
}

func (s *profileService) setActive(ctx context.Context, user *users.User, active bool) error {
	now := s.now()
	user.IsActive = active
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}
	if !active {
		if _, err := s.sessions.RevokeUserRefreshTokens(ctx, user.ID, "", now); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
	}
	return nil
}
