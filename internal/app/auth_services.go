package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/email"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// authService implements the AuthService interface for sign in and session management
type authService struct {
	users      users.UserRepository
	sessions   users.SessionRepository
	hasher     users.PasswordHasher
	issuer     users.TokenIssuer
	transactor shared.Transactor
	settings   *config.AuthSettings
	events     eventPublisher
	email      emailSender
	now        Clock
	logger     logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo users.UserRepository,
	sessionRepo users.SessionRepository,
	hasher users.PasswordHasher,
	issuer users.TokenIssuer,
	transactor shared.Transactor,
	bus events.Publisher,
	mailer notifications.Mailer,
	renderer notifications.TemplateRenderer,
	settings *config.AuthSettings,
	logger logger.Logger,
) (users.AuthService, error) {
	if settings == nil {
		return nil, fmt.Errorf("auth settings are required")
	}
	return &authService{
		users:      userRepo,
		sessions:   sessionRepo,
		hasher:     hasher,
		issuer:     issuer,
		transactor: transactor,
		settings:   settings,
		events:     eventPublisher{bus: bus, logger: logger},
		email:      emailSender{mailer: mailer, renderer: renderer, logger: logger},
		now:        utcNow,
		logger:     logger,
	}, nil
}

// Register creates an active client account, signs it in and sends the verification email
func (s *authService) Register(ctx context.Context, input *users.RegisterInput, device users.DeviceInfo) (*users.AuthResult, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: registration data is required", nil)
	}
	input.Email = users.NormalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Email already exists")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &users.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         users.RoleClient,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var tokens *users.TokenPair
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		tokens, err = s.issueTokens(ctx, user, device)
		return err
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to register user", err)
	}

	s.logger.Info("Registered user ", user.ID)
	s.events.publish(ctx, events.UserRegistered, user.ID, map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.Warn("Failed to issue verification token for ", user.ID, ": ", err)
	}

	return &users.AuthResult{User: user, Tokens: tokens}, nil
}

// Login checks the password, applies the lockout policy and opens a session
func (s *authService) Login(ctx context.Context, emailAddress, password string, device users.DeviceInfo) (*users.AuthResult, error) {
	emailAddress = users.NormalizeEmail(emailAddress)
	if emailAddress == "" || password == "" {
		return nil, apperr.Validation("validation failed: email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, emailAddress)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := s.now()
	if user.IsLocked(now) {
		return nil, apperr.Locked("Account is temporarily locked")
	}
	lockCleared := user.ClearExpiredLock(now)

	if !user.CanSignIn(now) {
		if lockCleared {
			s.saveUser(ctx, user)
		}
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		locked := user.RegisterFailedLogin(now, s.settings.MaxLoginAttempts, s.settings.LockoutDuration)
		user.UpdatedAt = now
		s.saveUser(ctx, user)
		if locked {
			s.logger.Warn("Locked account ", user.ID, " after ", user.FailedLoginCount, " failed logins")
		}
		s.events.publish(ctx, events.UserLoginFailed, user.ID, map[string]interface{}{
			"email":    user.Email,
			"attempts": user.FailedLoginCount,
			"locked":   locked,
		})
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	user.ResetFailedLogins()
	user.LastLoginAt = &now
	user.UpdatedAt = now

	var tokens *users.TokenPair
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		tokens, err = s.issueTokens(ctx, user, device)
		return err
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to sign in", err)
	}

	s.events.publish(ctx, events.UserLoggedIn, user.ID, map[string]interface{}{
		"email":      user.Email,
		"deviceName": device.DeviceName,
	})
	return &users.AuthResult{User: user, Tokens: tokens}, nil
}

// RefreshAccessToken rotates a refresh token into a new token pair
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string, device users.DeviceInfo) (*users.AuthResult, error) {
	record, err := s.lookupRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !record.IsActive(now) {
		return nil, apperr.Unauthorized("Refresh token expired or revoked")
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.CanSignIn(now) {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	var tokens *users.TokenPair
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.sessions.RevokeRefreshToken(ctx, record.ID, now); err != nil {
			return err
		}
		tokens, err = s.issueTokens(ctx, user, device)
		return err
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to refresh token", err)
	}

	return &users.AuthResult{User: user, Tokens: tokens}, nil
}

// Logout revokes one refresh token of the user. Unknown tokens are ignored.
func (s *authService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken != "" {
		record, err := s.sessions.GetRefreshTokenByHash(ctx, authinfra.HashToken(refreshToken))
		switch {
		case err == nil:
			if record.UserID == userID && record.RevokedAt == nil {
				if err := s.sessions.RevokeRefreshToken(ctx, record.ID, s.now()); err != nil {
					return fmt.Errorf("failed to revoke session: %w", err)
				}
			}
		case apperr.KindOf(err) != apperr.KindNotFound:
			return fmt.Errorf("failed to load session: %w", err)
		}
	}

	s.events.publish(ctx, events.UserLoggedOut, userID, map[string]interface{}{"scope": "current"})
	return nil
}

// LogoutAll revokes every session of the user
func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	count, err := s.sessions.RevokeUserRefreshTokens(ctx, userID, "", s.now())
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	s.logger.Info("Revoked ", count, " sessions of user ", userID)
	s.events.publish(ctx, events.UserLoggedOut, userID, map[string]interface{}{
		"scope":           "all",
		"revokedSessions": count,
	})
	return nil
}

// Authenticate verifies an access token and loads the account it belongs to
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*users.User, error) {
	if accessToken == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}
	claims, err := s.issuer.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.CanSignIn(s.now()) {
		return nil, apperr.Unauthorized("Account is deactivated")
	}
	return user, nil
}

// Me returns the signed in user
func (s *authService) Me(ctx context.Context, userID string) (*users.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GetActiveSessions lists the non-revoked, unexpired sessions of the user
func (s *authService) GetActiveSessions(ctx context.Context, userID string) ([]*users.RefreshToken, error) {
	sessions, err := s.sessions.ListActiveRefreshTokens(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// TerminateSession revokes one of the user's own sessions
func (s *authService) TerminateSession(ctx context.Context, userID, sessionID string) error {
	sessions, err := s.GetActiveSessions(ctx, userID)
	if err != nil {
		return err
	}
	for _, session := range sessions {
		if session.ID == sessionID {
			if err := s.sessions.RevokeRefreshToken(ctx, session.ID, s.now()); err != nil {
				return fmt.Errorf("failed to revoke session: %w", err)
			}
			s.logger.Info("Terminated session ", sessionID, " of user ", userID)
			return nil
		}
	}
	return apperr.NotFound("Session not found")
}

// TerminateOtherSessions revokes every session except the caller's current one
func (s *authService) TerminateOtherSessions(ctx context.Context, userID, currentRefreshToken string) (int64, error) {
	current, err := s.lookupRefreshToken(ctx, currentRefreshToken)
	if err != nil {
		return 0, err
	}
	if current.UserID != userID {
		return 0, apperr.Unauthorized("Invalid refresh token")
	}

	count, err := s.sessions.RevokeUserRefreshTokens(ctx, userID, current.ID, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to revoke sessions: %w", err)
	}
	s.logger.Info("Terminated ", count, " other sessions of user ", userID)
	return count, nil
}

// VerifyEmail consumes an email verification token
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	record, err := s.lookupUserToken(ctx, users.TokenPurposeEmailVerification, token)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Validation("Invalid or expired verification token", nil)
		}
		return err
	}

	now := s.now()
	var user *users.User
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err = s.users.GetByID(ctx, record.UserID)
		if err != nil {
			return err
		}
		user.EmailVerified = true
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		return s.sessions.MarkUserTokenUsed(ctx, record.ID, now)
	})
	if err != nil {
		return apperr.PassThrough("failed to verify email", err)
	}

	s.events.publish(ctx, events.EmailVerified, user.ID, map[string]interface{}{"email": user.Email})
	return nil
}

// ResendVerification issues a fresh verification token for an unverified account
func (s *authService) ResendVerification(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return apperr.Conflict("Email is already verified")
	}
	return s.sendVerification(ctx, user)
}

// ForgotPassword emails a reset link when the account exists. It never reveals whether it does.
func (s *authService) ForgotPassword(ctx context.Context, emailAddress string) error {
	emailAddress = users.NormalizeEmail(emailAddress)
	if emailAddress == "" {
		return apperr.Validation("validation failed: email is required", nil)
	}

	user, err := s.users.GetByEmail(ctx, emailAddress)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			s.logger.Debug("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil
	}

	token, err := s.createUserToken(ctx, user.ID, users.TokenPurposePasswordReset, s.settings.PasswordResetTTL)
	if err != nil {
		return err
	}
	s.email.send(ctx, user.Email, notifications.TemplatePasswordReset, email.TokenLink{
		Name:      user.FirstName,
		Link:      frontendLink(s.settings.FrontendURL, "/auth/reset-password", token),
		ExpiresIn: email.FormatTTL(s.settings.PasswordResetTTL),
	})
	return nil
}

// ResetPassword consumes a reset token, sets the new password and signs out every session
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := users.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	record, err := s.lookupUserToken(ctx, users.TokenPurposePasswordReset, token)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Validation("Invalid or expired reset token", nil)
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, record.UserID)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		user.ResetFailedLogins()
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		if err := s.sessions.MarkUserTokenUsed(ctx, record.ID, now); err != nil {
			return err
		}
		_, err = s.sessions.RevokeUserRefreshTokens(ctx, user.ID, "", now)
		return err
	})
	if err != nil {
		return apperr.PassThrough("failed to reset password", err)
	}

	s.events.publish(ctx, events.PasswordChanged, record.UserID, map[string]interface{}{"method": "reset"})
	return nil
}

// CleanupExpiredTokens deletes expired refresh and one-time tokens
func (s *authService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	now := s.now()
	sessions, err := s.sessions.DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	tokens, err := s.sessions.DeleteExpiredUserTokens(ctx, now)
	if err != nil {
		return sessions, fmt.Errorf("failed to delete expired user tokens: %w", err)
	}
	if total := sessions + tokens; total > 0 {
		s.logger.Info("Deleted ", sessions, " expired sessions and ", tokens, " expired user tokens")
	}
	return sessions + tokens, nil
}

func (s *authService) issueTokens(ctx context.Context, user *users.User, device users.DeviceInfo) (*users.TokenPair, error) {
	now := s.now()
	accessToken, expiresAt, err := s.issuer.IssueAccessToken(user, now)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, hash, err := authinfra.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	record := &users.RefreshToken{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		TokenHash:  hash,
		ExpiresAt:  now.Add(s.settings.RefreshTokenTTL),
		IPAddress:  device.IPAddress,
		UserAgent:  device.UserAgent,
		DeviceName: device.DeviceName,
		Location:   device.Location,
		LastUsedAt: &now,
		CreatedAt:  now,
	}
	if err := s.sessions.CreateRefreshToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &users.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    users.TokenTypeBearer,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *authService) lookupRefreshToken(ctx context.Context, refreshToken string) (*users.RefreshToken, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Refresh token is required")
	}
	record, err := s.sessions.GetRefreshTokenByHash(ctx, authinfra.HashToken(refreshToken))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}
	return record, nil
}

// lookupUserToken returns a usable one-time token or a not found error
func (s *authService) lookupUserToken(ctx context.Context, purpose, token string) (*users.UserToken, error) {
	if token == "" {
		return nil, apperr.NotFound("Token not found")
	}
	record, err := s.sessions.GetUserTokenByHash(ctx, purpose, authinfra.HashToken(token))
	if err != nil {
		return nil, err
	}
	if !record.IsUsable(s.now()) {
		return nil, apperr.NotFound("Token not found")
	}
	return record, nil
}

func (s *authService) createUserToken(ctx context.Context, userID, purpose string, ttl time.Duration) (string, error) {
	token, hash, err := authinfra.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	now := s.now()
	record := &users.UserToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: hash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.sessions.CreateUserToken(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store %s token: %w", purpose, err)
	}
	return token, nil
}

func (s *authService) sendVerification(ctx context.Context, user *users.User) error {
	token, err := s.createUserToken(ctx, user.ID, users.TokenPurposeEmailVerification, s.settings.VerificationTTL)
	if err != nil {
		return err
	}
	s.email.send(ctx, user.Email, notifications.TemplateEmailVerification, email.TokenLink{
		Name:      user.FirstName,
		Link:      frontendLink(s.settings.FrontendURL, "/auth/verify-email", token),
		ExpiresIn: email.FormatTTL(s.settings.VerificationTTL),
	})
	return nil
}

// saveUser persists login bookkeeping; failures are logged so the caller still gets the auth error
func (s *authService) saveUser(ctx context.Context, user *users.User) {
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update login state of ", user.ID, ": ", err)
	}
}
