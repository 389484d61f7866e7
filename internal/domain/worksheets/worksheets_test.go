//go:build unit
// +build unit

package worksheets

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksheet_State(t *testing.T) {
	now := time.Now()
	due := now.Add(-time.Hour)
	w := &Worksheet{
		ID:          uuid.NewString(),
		TherapistID: uuid.NewString(),
		ClientID:    uuid.NewString(),
		Title:       "Thought record",
		DueDate:     &due,
		Status:      StatusAssigned,
	}
	require.NoError(t, w.Validate())

	assert.True(t, w.IsOverdue(now))
	assert.True(t, w.CanSubmit())
	assert.True(t, w.IsParticipant(w.ClientID))
	assert.False(t, w.IsParticipant(uuid.NewString()))

	w.Status = StatusSubmitted
	assert.False(t, w.IsOverdue(now))
	assert.False(t, w.CanSubmit())

	w.Status = StatusOverdue
	assert.True(t, w.CanSubmit())
}

func TestAssignInput_Validate(t *testing.T) {
	require.NoError(t, (&AssignInput{ClientID: uuid.NewString(), Title: "Journal"}).Validate())
	require.Error(t, (&AssignInput{ClientID: uuid.NewString(), Title: "  "}).Validate())
	require.Error(t, (&AssignInput{ClientID: "nope", Title: "Journal"}).Validate())
}
