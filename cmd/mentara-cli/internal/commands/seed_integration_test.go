//go:build integration
// +build integration

package commands

import (
	"context"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationSeedYAML = `
users:
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
  - email: maria@example.com
    timezone: Asia/Manila
    practiceStartDate: "2015-01-15"
    hourlyRate: 1500
    availability:
      - day: monday
        start: "09:00"
        end: "12:00"
      - day: wednesday
        start: "13:00"
        end: "17:00"
`

func TestSeeder_SeedIsIdempotent(t *testing.T) {
	tc := persistence.SetupTestDB(t, config.SqliteDbType)
	hasher, err := authinfra.NewBcryptHasher(4)
	require.NoError(t, err)
	seeder := NewSeeder(tc.UserRepo, tc.TherapistRepo, tc.AvailabilityRepo, hasher, testutil.SetupTestLogger(t))

	file, err := ParseSeedFile([]byte(integrationSeedYAML))
	require.NoError(t, err)

	ctx := context.Background()
	first, err := seeder.Seed(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 2, first.UsersCreated)
	assert.Equal(t, 1, first.TherapistsCreated)
	assert.Equal(t, 2, first.AvailabilityCreated)

	maria, err := tc.UserRepo.GetByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.True(t, maria.EmailVerified)
	require.NoError(t, hasher.Compare(maria.PasswordHash, "Therap1st!"))

	therapist, err := tc.TherapistRepo.GetByUserID(ctx, maria.ID)
	require.NoError(t, err)
	assert.Equal(t, therapists.StatusApproved, therapist.Status)
	require.NotNil(t, therapist.PracticeStartDate)
	assert.Equal(t, 2015, therapist.PracticeStartDate.Year())

	second, err := seeder.Seed(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, 0, second.UsersCreated)
	assert.Equal(t, 2, second.UsersSkipped)
	assert.Equal(t, 1, second.TherapistsSkipped)
	assert.Equal(t, 0, second.AvailabilityCreated)
}
