//go:build unit
// +build unit

package commands

import (
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaffUser(t *testing.T) {
	hasher, err := authinfra.NewBcryptHasher(4)
	require.NoError(t, err)
	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	user, err := NewStaffUser(StaffAccount{
		Email:     " Mod@Mentara.app",
		Password:  "M0derator!",
		FirstName: "Mo",
		LastName:  "Derator",
		Role:      users.RoleModerator,
	}, hasher, now)

	require.NoError(t, err)
	assert.Equal(t, "mod@mentara.app", user.Email)
	assert.Equal(t, users.RoleModerator, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, hasher.Compare(user.PasswordHash, "M0derator!"))
}

func TestNewStaffUser_Rejects(t *testing.T) {
	hasher, err := authinfra.NewBcryptHasher(4)
	require.NoError(t, err)

	_, err = NewStaffUser(StaffAccount{Email: "a@example.com", Password: "Passw0rd1", Role: users.RoleClient}, hasher, time.Now())
	assert.Error(t, err, "clients are not staff")

	_, err = NewStaffUser(StaffAccount{Email: "a@example.com", Password: "password", Role: users.RoleAdmin}, hasher, time.Now())
	assert.Error(t, err, "password needs a digit")

	_, err = NewStaffUser(StaffAccount{Email: "not-an-email", Password: "Passw0rd1", Role: users.RoleAdmin}, hasher, time.Now())
	assert.Error(t, err)
}
