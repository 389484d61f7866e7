//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tabler interface {
	TableName() string
}

func TestAll_UniqueTableNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range All() {
		tm, ok := m.(tabler)
		require.True(t, ok, "%T has no TableName", m)
		assert.False(t, seen[tm.TableName()], "duplicate table %s", tm.TableName())
		seen[tm.TableName()] = true
	}
	assert.Len(t, seen, 23)
}

func TestTherapistModel_ToDomain_DefaultsSuccessRates(t *testing.T) {
	model := &TherapistModel{
		UserID: "user-id",
		Status: therapists.StatusPending,
	}

	therapist := model.ToDomain()
	require.NotNil(t, therapist.TreatmentSuccessRates)
	assert.Empty(t, therapist.TreatmentSuccessRates)
}

func TestTherapistModel_FromDomain_KeepsLists(t *testing.T) {
	now := time.Now()
	therapist := &therapists.Therapist{
		UserID:                "user-id",
		Expertise:             []string{"Anxiety"},
		LanguagesOffered:      []string{"English", "Tagalog"},
		TreatmentSuccessRates: map[string]float64{"anxiety": 0.75},
		Status:                therapists.StatusApproved,
		SubmissionDate:        now,
	}

	model := &TherapistModel{}
	model.FromDomain(therapist)

	assert.Equal(t, []string{"Anxiety"}, []string(model.Expertise))
	assert.Equal(t, []string{"English", "Tagalog"}, []string(model.LanguagesOffered))
	assert.Equal(t, 0.75, model.TreatmentSuccessRates.Data()["anxiety"])
	assert.Equal(t, therapist.Expertise, model.ToDomain().Expertise)
}

func TestAuditLogModel_NilMapsStayNil(t *testing.T) {
	log := &auditlogs.AuditLog{
		ID:     "log-id",
		Action: auditlogs.ActionLogin,
		Entity: auditlogs.EntityUser,
	}

	model := &AuditLogModel{}
	model.FromDomain(log)

	assert.Nil(t, model.OldValues)
	assert.Nil(t, model.ToDomain().OldValues)
}
