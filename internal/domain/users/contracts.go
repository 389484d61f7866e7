package users

import (
	"context"
	"time"
)

// UserRepository persists platform accounts
type UserRepository interface {
	// Create stores a new user
	Create(ctx context.Context, user *User) error
	// GetByID returns a user by ID or a not found error
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetByEmail returns a user by normalised email or a not found error
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ExistsByEmail reports whether an account uses email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List returns matching users and the total number of matches
	List(ctx context.Context, query *UserQuery) ([]*User, int64, error)
	// ListByIDs returns the users with the given IDs, in no particular order
	ListByIDs(ctx context.Context, userIDs []string) ([]*User, error)
	// Update saves every field of user
	Update(ctx context.Context, user *User) error
}

// SessionRepository persists refresh tokens and one-time user tokens
type SessionRepository interface {
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	ListActiveRefreshTokens(ctx context.Context, userID string, now time.Time) ([]*RefreshToken, error)
	TouchRefreshToken(ctx context.Context, tokenID string, at time.Time) error
	RevokeRefreshToken(ctx context.Context, tokenID string, at time.Time) error
	// RevokeUserRefreshTokens revokes every active token of the user except exceptID, returning the count
	RevokeUserRefreshTokens(ctx context.Context, userID string, exceptID string, at time.Time) (int64, error)
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)

	CreateUserToken(ctx context.Context, token *UserToken) error
	GetUserTokenByHash(ctx context.Context, purpose, tokenHash string) (*UserToken, error)
	MarkUserTokenUsed(ctx context.Context, tokenID string, at time.Time) error
	DeleteExpiredUserTokens(ctx context.Context, before time.Time) (int64, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies access tokens
type TokenIssuer interface {
	IssueAccessToken(user *User, now time.Time) (string, time.Time, error)
	ParseAccessToken(token string) (*AccessClaims, error)
}

// AuthService handles registration, sign in and session management
type AuthService interface {
	Register(ctx context.Context, input *RegisterInput, device DeviceInfo) (*AuthResult, error)
	Login(ctx context.Context, email, password string, device DeviceInfo) (*AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string, device DeviceInfo) (*AuthResult, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	LogoutAll(ctx context.Context, userID string) error
	// Authenticate verifies an access token and returns the active account behind it
	Authenticate(ctx context.Context, accessToken string) (*User, error)
	Me(ctx context.Context, userID string) (*User, error)

	GetActiveSessions(ctx context.Context, userID string) ([]*RefreshToken, error)
	TerminateSession(ctx context.Context, userID, sessionID string) error
	// TerminateOtherSessions revokes every session of the user except the one holding currentRefreshToken
	TerminateOtherSessions(ctx context.Context, userID, currentRefreshToken string) (int64, error)

	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, userID string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// ProfileService manages the caller's own profile and, for administrators, other accounts
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeactivateAccount(ctx context.Context, userID string) error

	ListUsers(ctx context.Context, query *UserQuery) ([]*User, int64, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	UpdateUserRole(ctx context.Context, userID, role string) (*User, error)
	SetUserActive(ctx context.Context, userID string, active bool) (*User, error)
}
