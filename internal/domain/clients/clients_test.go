//go:build unit
// +build unit

package clients

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTherapist_Lifecycle(t *testing.T) {
	now := time.Now()
	r := &ClientTherapist{
		ID:          uuid.NewString(),
		ClientID:    uuid.NewString(),
		TherapistID: uuid.NewString(),
		Status:      RelationshipInactive,
		AssignedAt:  now,
	}
	require.NoError(t, r.Validate())
	assert.True(t, r.IsPending())

	r.Accept()
	assert.True(t, r.IsActive())
	assert.False(t, r.IsPending())

	r.Remove(now.Add(time.Hour))
	assert.True(t, r.IsRemoved())
	assert.False(t, r.IsPending())

	r.Reopen(now.Add(2 * time.Hour))
	assert.True(t, r.IsPending())
	assert.Equal(t, now.Add(2*time.Hour), r.AssignedAt)
}

func TestClientTherapist_ValidateRejectsSelfRelationship(t *testing.T) {
	id := uuid.NewString()
	r := &ClientTherapist{
		ID:          uuid.NewString(),
		ClientID:    id,
		TherapistID: id,
		Status:      RelationshipActive,
		AssignedAt:  time.Now(),
	}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TherapistID")
}

func TestPreAssessmentInput_Validate(t *testing.T) {
	require.Error(t, (&PreAssessmentInput{}).Validate())
	require.NoError(t, (&PreAssessmentInput{Answers: map[string]interface{}{"phq9": []int{1, 2}}}).Validate())
}
