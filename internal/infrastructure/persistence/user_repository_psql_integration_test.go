//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPostgresRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	user := CreateTestUser(t, users.RoleClient)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	fetched, err := ctx.UserRepo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	duplicate := CreateTestUser(t, users.RoleClient)
	duplicate.Email = user.Email
	assert.ErrorIs(t, ctx.UserRepo.Create(context.Background(), duplicate), apperr.ErrConflict)
}

func TestTherapistPostgresRepository_ListApproved(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	approved := CreateTestTherapist(t, uuid.NewString(), therapists.StatusApproved)
	processed := time.Now().UTC()
	approved.ProcessingDate = &processed
	require.NoError(t, ctx.TherapistRepo.Create(context.Background(), approved))

	list, total, err := ctx.TherapistRepo.ListApproved(context.Background(), &therapists.DirectoryQuery{Language: "cebuano"}, shared.NewPagination(1, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, approved.UserID, list[0].UserID)
}
