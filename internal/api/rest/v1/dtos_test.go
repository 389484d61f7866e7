//go:build unit
// +build unit

package v1

import (
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRequest_ToInput_ParsesDates(t *testing.T) {
	request := &ApplicationRequest{
		Email:                   "maria@example.com",
		ExpirationDateOfLicense: "2027-06-30",
		PracticeStartDate:       "2015-01-15T08:00:00+08:00",
	}

	input, err := request.ToInput()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), input.ExpirationDateOfLicense)
	assert.Equal(t, time.Date(2015, 1, 15, 0, 0, 0, 0, time.UTC), input.PracticeStartDate)
}

func TestApplicationRequest_ToInput_EmptyDatesStayZero(t *testing.T) {
	input, err := (&ApplicationRequest{}).ToInput()

	require.NoError(t, err)
	assert.True(t, input.ExpirationDateOfLicense.IsZero())
	assert.True(t, input.PracticeStartDate.IsZero())
}

func TestApplicationRequest_ToInput_RejectsBadDates(t *testing.T) {
	_, err := (&ApplicationRequest{PracticeStartDate: "January 2015"}).ToInput()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "practiceStartDate")
}

func TestCreateConversationRequest_DefaultsToDirect(t *testing.T) {
	input := (&CreateConversationRequest{ParticipantIDs: []string{"user-2"}}).ToInput()
	assert.Equal(t, messaging.ConversationDirect, input.Type)

	input = (&CreateConversationRequest{ParticipantIDs: []string{"user-2", "user-3"}, Type: messaging.ConversationGroup, Title: "Support"}).ToInput()
	assert.Equal(t, messaging.ConversationGroup, input.Type)
	assert.Equal(t, "Support", input.Title)
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "jane@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "jane@example.com"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "jane", Password: "x"}).Validate())
}
