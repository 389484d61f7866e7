//go:build unit
// +build unit

package users

import (
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() *User {
	return &User{
		ID:           uuid.NewString(),
		Email:        "jane@mentara.app",
		PasswordHash: "$2a$12$hash",
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         RoleClient,
		IsActive:     true,
	}
}

func TestUser_Validate(t *testing.T) {
	require.NoError(t, validUser().Validate())

	u := validUser()
	u.Role = "superuser"
	err := u.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tag: role")

	u = validUser()
	u.Email = "not-an-email"
	require.Error(t, u.Validate())
}

func TestRoles_MatchRoleValidator(t *testing.T) {
	assert.ElementsMatch(t, Roles, validators.Roles)
	require.NoError(t, (&UserQuery{Role: RoleModerator}).Validate())
	require.Error(t, (&UserQuery{Role: "owner"}).Validate())
}

func TestUser_RegisterFailedLogin(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	u := validUser()

	for i := 0; i < 4; i++ {
		assert.False(t, u.RegisterFailedLogin(now, 5, 15*time.Minute))
	}
	assert.True(t, u.RegisterFailedLogin(now, 5, 15*time.Minute))
	require.NotNil(t, u.LockedUntil)
	assert.Equal(t, now.Add(15*time.Minute), *u.LockedUntil)
	assert.True(t, u.IsLocked(now.Add(14*time.Minute)))
	assert.False(t, u.IsLocked(now.Add(15*time.Minute)))

	assert.False(t, u.ClearExpiredLock(now.Add(10*time.Minute)))
	assert.True(t, u.ClearExpiredLock(now.Add(16*time.Minute)))
	assert.Nil(t, u.LockedUntil)
	assert.Zero(t, u.FailedLoginCount)
}

func TestUser_CanSignIn(t *testing.T) {
	now := time.Now()
	u := validUser()
	assert.True(t, u.CanSignIn(now))

	until := now.Add(time.Hour)
	u.SuspendedUntil = &until
	assert.False(t, u.CanSignIn(now))

	u.SuspendedUntil = nil
	u.IsActive = false
	assert.False(t, u.CanSignIn(now))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@mentara.app", NormalizeEmail("  Jane@Mentara.APP "))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"short1", true},
		{"longenoughbutnodigits", true},
		{"1234567890", true},
		{"secret123", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "validation failed")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	u := validUser()
	first := "Janet"
	same := "Doe"
	update := &ProfileUpdate{FirstName: &first, LastName: &same}

	oldValues, newValues := update.Apply(u)

	assert.Equal(t, "Janet", u.FirstName)
	assert.Equal(t, map[string]interface{}{"firstName": "Jane"}, oldValues)
	assert.Equal(t, map[string]interface{}{"firstName": "Janet"}, newValues)
}

func TestDeviceNameFromUserAgent(t *testing.T) {
	tests := []struct {
		userAgent string
		want      string
	}{
		{"Mozilla/5.0 (Linux; Android 10; SM-G973F) AppleWebKit/537.36", "Android Device"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 14_7_1 like Mac OS X) AppleWebKit/605.1.15", "iPhone"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", "Windows PC"},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36", "Mac"},
		{"", "Unknown Device"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DeviceNameFromUserAgent(tt.userAgent))
		})
	}
}

func TestLocationFromIP(t *testing.T) {
	assert.Equal(t, "Local", LocationFromIP("127.0.0.1"))
	assert.Equal(t, "Local", LocationFromIP("::1"))
	assert.Equal(t, "Local", LocationFromIP(""))
	assert.Equal(t, "Unknown Location", LocationFromIP("192.168.1.1"))
}

func TestCheckRouteAccess(t *testing.T) {
	therapist := &User{Role: RoleTherapist}
	client := &User{Role: RoleClient, SeenRecommendations: true}
	newClient := &User{Role: RoleClient}
	moderator := &User{Role: RoleModerator}

	tests := []struct {
		name string
		user *User
		path string
		want RouteDecision
	}{
		{"landing page", nil, "/", RouteDecision{Allowed: true}},
		{"sign in anonymous", nil, "/auth/sign-in", RouteDecision{Allowed: true}},
		{"sign in while signed in", therapist, "/auth/sign-in", RouteDecision{RedirectTo: "/therapist"}},
		{"email verification anonymous", nil, "/auth/verify?token=abc", RouteDecision{Allowed: true}},
		{"account verification while signed in", client, "/auth/verify-account", RouteDecision{RedirectTo: "/client"}},
		{"unlisted auth page anonymous", nil, "/auth/settings", RouteDecision{RedirectTo: SignInPath}},
		{"public application form", nil, "/therapist-application/step-1", RouteDecision{Allowed: true}},
		{"community anonymous", nil, "/community/anxiety", RouteDecision{Allowed: true}},
		{"landing anonymous", nil, "/landing", RouteDecision{Allowed: true}},
		{"pre-assessment anonymous", nil, "/pre-assessment", RouteDecision{Allowed: true}},
		{"community while signed in", therapist, "/community", RouteDecision{Allowed: true}},
		{"protected anonymous", nil, "/client/sessions", RouteDecision{RedirectTo: SignInPath}},
		{"own area", client, "/client/sessions?tab=upcoming", RouteDecision{Allowed: true}},
		{"wrong area", client, "/admin/users", RouteDecision{RedirectTo: "/client"}},
		{"prefix is not a segment", client, "/administrator", RouteDecision{Allowed: true}},
		{"moderator area", moderator, "/moderator/", RouteDecision{Allowed: true}},
		{"new client sent to welcome", newClient, "/client/sessions", RouteDecision{RedirectTo: WelcomePath}},
		{"new client on welcome", newClient, "/client/welcome", RouteDecision{Allowed: true}},
		{"new client on public page", newClient, "/about", RouteDecision{Allowed: true}},
		{"welcome after recommendations", client, "/client/welcome", RouteDecision{RedirectTo: "/client"}},
		{"therapist ignores welcome flow", therapist, "/therapist/patients", RouteDecision{Allowed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckRouteAccess(tt.user, tt.path))
		})
	}
}

func TestIsPublicRoute(t *testing.T) {
	assert.True(t, IsPublicRoute("/"))
	assert.True(t, IsPublicRoute("/about/"))
	assert.False(t, IsPublicRoute("/aboutus"))
	assert.False(t, IsPublicRoute("/client"))
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/admin", DashboardPath(RoleAdmin))
	assert.Equal(t, "/", DashboardPath("unknown"))
}
