//go:build unit
// +build unit

package commands

import (
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeedYAML = `
users:
  - email: " Admin@Mentara.app "
    password: Adm1nPassword
    firstName: Ada
    lastName: Admin
    role: admin
  - email: maria@example.com
    password: Therap1st!
    firstName: Maria
    lastName: Santos
    role: therapist
  - email: jane@example.com
    password: Cl1entPass
    firstName: Jane
    lastName: Doe
therapists:
  - email: MARIA@example.com
    province: Cebu
    timezone: Asia/Manila
    hourlyRate: 1500
    areasOfExpertise: [anxiety, depression]
    availability:
      - day: monday
        start: "09:00"
        end: "17:00"
`

func TestParseSeedFile(t *testing.T) {
	file, err := ParseSeedFile([]byte(testSeedYAML))
	require.NoError(t, err)

	require.Len(t, file.Users, 3)
	assert.Equal(t, "admin@mentara.app", file.Users[0].Email)
	assert.Equal(t, users.RoleClient, file.Users[2].Role, "role defaults to client")

	require.Len(t, file.Therapists, 1)
	therapist := file.Therapists[0]
	assert.Equal(t, "maria@example.com", therapist.Email)
	assert.Equal(t, therapists.StatusApproved, therapist.Status, "status defaults to approved")
	assert.Equal(t, []string{"anxiety", "depression"}, therapist.AreasOfExpertise)
	require.Len(t, therapist.Availability, 1)
	assert.Equal(t, "MONDAY", therapist.Availability[0].Day)
}

func TestParseSeedFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		message string
	}{
		{
			name:    "malformed yaml",
			yaml:    "users: [",
			message: "failed to decode seed file",
		},
		{
			name:    "missing email",
			yaml:    "users:\n  - password: Passw0rd1\n",
			message: "email is required",
		},
		{
			name:    "unknown role",
			yaml:    "users:\n  - email: a@example.com\n    password: Passw0rd1\n    role: owner\n",
			message: "unknown role",
		},
		{
			name:    "weak password",
			yaml:    "users:\n  - email: a@example.com\n    password: short\n",
			message: "at least 8 characters",
		},
		{
			name:    "duplicate user",
			yaml:    "users:\n  - email: a@example.com\n    password: Passw0rd1\n  - email: A@example.com\n    password: Passw0rd1\n",
			message: "listed twice",
		},
		{
			name:    "therapist without therapist account",
			yaml:    "users:\n  - email: a@example.com\n    password: Passw0rd1\ntherapists:\n  - email: a@example.com\n",
			message: "therapist role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeedFile([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
