//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTherapistSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	therapist := CreateTestTherapist(t, uuid.NewString(), therapists.StatusPending)
	require.NoError(t, ctx.TherapistRepo.Create(context.Background(), therapist))

	fetched, err := ctx.TherapistRepo.GetByUserID(context.Background(), therapist.UserID)
	require.NoError(t, err)
	assert.Equal(t, therapist.Expertise, fetched.Expertise)
	assert.Equal(t, therapist.Languages, fetched.Languages)
	assert.InDelta(t, 0.8, fetched.TreatmentSuccessRates["anxiety"], 0.0001)
	assert.Equal(t, therapists.StatusPending, fetched.Status)

	err = ctx.TherapistRepo.Create(context.Background(), therapist)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestTherapistSqliteRepository_GetByUserID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.TherapistRepo.GetByUserID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTherapistSqliteRepository_ListApplications(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	for _, status := range []string{therapists.StatusPending, therapists.StatusPending, therapists.StatusApproved} {
		require.NoError(t, ctx.TherapistRepo.Create(context.Background(), CreateTestTherapist(t, uuid.NewString(), status)))
	}

	list, total, err := ctx.TherapistRepo.ListApplications(context.Background(), therapists.StatusPending, shared.NewPagination(1, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = ctx.TherapistRepo.ListApplications(context.Background(), "", shared.NewPagination(2, 2, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 1)
}

func TestTherapistSqliteRepository_ListApproved(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	cheap := CreateTestTherapist(t, uuid.NewString(), therapists.StatusApproved)
	cheap.HourlyRate = 800
	pricey := CreateTestTherapist(t, uuid.NewString(), therapists.StatusApproved)
	pricey.Province = "Davao"
	pricey.Expertise = []string{"Trauma"}
	pending := CreateTestTherapist(t, uuid.NewString(), therapists.StatusPending)
	for _, th := range []*therapists.Therapist{cheap, pricey, pending} {
		require.NoError(t, ctx.TherapistRepo.Create(context.Background(), th))
	}
	page := shared.NewPagination(1, 10, 10)

	list, total, err := ctx.TherapistRepo.ListApproved(context.Background(), &therapists.DirectoryQuery{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, _, err = ctx.TherapistRepo.ListApproved(context.Background(), &therapists.DirectoryQuery{Province: "davao"}, page)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pricey.UserID, list[0].UserID)

	list, _, err = ctx.TherapistRepo.ListApproved(context.Background(), &therapists.DirectoryQuery{Expertise: "anxiety"}, page)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, cheap.UserID, list[0].UserID)

	list, _, err = ctx.TherapistRepo.ListApproved(context.Background(), &therapists.DirectoryQuery{MaxHourlyRate: 1000}, page)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, cheap.UserID, list[0].UserID)
}

func TestTherapistFileSqliteRepository(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	therapistID := uuid.NewString()
	file := &therapists.TherapistFile{
		ID:          uuid.NewString(),
		TherapistID: therapistID,
		FileName:    "license.pdf",
		Purpose:     therapists.FilePurposeLicense,
		ContentType: "application/pdf",
		Size:        1024,
		StoragePath: therapistID + "/license.pdf",
		UploadedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, ctx.FileRepo.Create(context.Background(), file))

	fetched, err := ctx.FileRepo.GetByID(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.StoragePath, fetched.StoragePath)

	files, err := ctx.FileRepo.ListByTherapist(context.Background(), therapistID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, therapists.HasLicense(files))
}

func TestRelationshipSqliteRepository(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	client := CreateTestUser(t, users.RoleClient)
	therapist := CreateTestUser(t, users.RoleTherapist)
	rel := CreateTestRelationship(t, client.ID, therapist.ID)
	require.NoError(t, ctx.RelationshipRepo.Create(bg, rel))

	err := ctx.RelationshipRepo.Create(bg, CreateTestRelationship(t, client.ID, therapist.ID))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	fetched, err := ctx.RelationshipRepo.Get(bg, client.ID, therapist.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsPending())

	fetched.Accept()
	require.NoError(t, ctx.RelationshipRepo.Update(bg, fetched))

	active, err := ctx.RelationshipRepo.List(bg, &clients.RelationshipQuery{TherapistID: therapist.ID, Status: clients.RelationshipActive})
	require.NoError(t, err)
	require.Len(t, active, 1)

	fetched.Remove(time.Now().UTC())
	require.NoError(t, ctx.RelationshipRepo.Update(bg, fetched))

	visible, err := ctx.RelationshipRepo.List(bg, &clients.RelationshipQuery{ClientID: client.ID})
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := ctx.RelationshipRepo.List(bg, &clients.RelationshipQuery{ClientID: client.ID, IncludeRemoved: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, ctx.RelationshipRepo.Delete(bg, rel.ID))
	_, err = ctx.RelationshipRepo.Get(bg, client.ID, therapist.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPreAssessmentSqliteRepository_Latest(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	clientA, clientB := uuid.NewString(), uuid.NewString()
	base := time.Now().UTC().Truncate(time.Second)
	newAssessment := func(clientID string, at time.Time, score float64) *clients.PreAssessment {
		return &clients.PreAssessment{
			ID:             uuid.NewString(),
			ClientID:       clientID,
			Answers:        map[string]interface{}{"q1": "often"},
			Scores:         map[string]float64{"PHQ-9": score},
			SeverityLevels: map[string]string{"PHQ-9": "moderate"},
			CreatedAt:      at,
		}
	}

	older := newAssessment(clientA, base.Add(-time.Hour), 5)
	newer := newAssessment(clientA, base, 12)
	onlyB := newAssessment(clientB, base, 3)
	for _, a := range []*clients.PreAssessment{older, newer, onlyB} {
		require.NoError(t, ctx.AssessmentRepo.Create(bg, a))
	}

	latest, err := ctx.AssessmentRepo.GetLatest(bg, clientA)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.InDelta(t, 12.0, latest.Scores["PHQ-9"], 0.0001)
	assert.Equal(t, "moderate", latest.SeverityLevels["PHQ-9"])

	byClient, err := ctx.AssessmentRepo.GetLatestForClients(bg, []string{clientA, clientB, uuid.NewString()})
	require.NoError(t, err)
	assert.Len(t, byClient, 2)
	assert.Equal(t, newer.ID, byClient[clientA].ID)
	assert.Equal(t, onlyB.ID, byClient[clientB].ID)

	_, err = ctx.AssessmentRepo.GetLatest(bg, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
