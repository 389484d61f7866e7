package users

import (
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// User is a platform account
type User struct {
	ID                  string `validate:"required,uuid4"`
	Email               string `validate:"required,email,max=255"`
	PasswordHash        string `validate:"required"`
	FirstName           string `validate:"max=100"`
	LastName            string `validate:"max=100"`
	Role                string `validate:"required,role"`
	IsActive            bool
	EmailVerified       bool
	ProfilePicture      string `validate:"omitempty,max=2048"`
	Bio                 string `validate:"max=2000"`
	Birthday            *time.Time
	FailedLoginCount    int `validate:"gte=0"`
	LockedUntil         *time.Time
	LastLoginAt         *time.Time
	SuspendedUntil      *time.Time
	SuspensionReason    string
	SeenRecommendations bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.ValidateStruct(u)
}

// FullName joins first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsLocked reports whether a lockout is in effect at now
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// IsSuspended reports whether a moderation suspension is in effect at now
func (u *User) IsSuspended(now time.Time) bool {
	return u.SuspendedUntil != nil && u.SuspendedUntil.After(now)
}

// CanSignIn reports whether the account is active and not suspended
func (u *User) CanSignIn(now time.Time) bool {
	return u.IsActive && !u.IsSuspended(now)
}

// RegisterFailedLogin increments the failed login counter and locks the account
// for lockout once maxAttempts is reached. It reports whether the account got locked.
func (u *User) RegisterFailedLogin(now time.Time, maxAttempts int, lockout time.Duration) bool {
	u.FailedLoginCount++
	if u.FailedLoginCount >= maxAttempts {
		until := now.Add(lockout)
		u.LockedUntil = &until
		return true
	}
	return false
}

// ClearExpiredLock removes a lock that has passed and resets the counter. It reports whether anything changed.
func (u *User) ClearExpiredLock(now time.Time) bool {
	if u.LockedUntil != nil && !u.LockedUntil.After(now) {
		u.LockedUntil = nil
		u.FailedLoginCount = 0
		return true
	}
	return false
}

// ResetFailedLogins clears the failed login counter and any lock
func (u *User) ResetFailedLogins() {
	u.FailedLoginCount = 0
	u.LockedUntil = nil
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidRole reports whether role is one of Roles
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
