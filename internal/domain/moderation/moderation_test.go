//go:build unit
// +build unit

package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreener_Screen(t *testing.T) {
	s := NewScreener(nil)

	tests := []struct {
		name       string
		text       string
		categories []string
	}{
		{"clean", "Thanks for the session today, feeling better.", nil},
		{"crisis", "Sometimes I feel like I want to die.", []string{CategoryCrisis}},
		{"case insensitive", "I might KILL MYSELF", []string{CategoryCrisis}},
		{"toxic", "you are an idiot", []string{CategoryToxic}},
		{"word boundary", "the idiotic plan", nil},
		{"spam phrase", "Click here for free money!", []string{CategorySpam}},
		{"many links", "http://a.io http://b.io http://c.io http://d.io", []string{CategorySpam}},
		{"multiple", "shut up, buy now", []string{CategorySpam, CategoryToxic}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Screen(tt.text)
			assert.Equal(t, tt.categories, result.Categories)
			assert.Equal(t, len(tt.categories) > 0, result.Flagged)
		})
	}
}

func TestScreener_CustomKeywords(t *testing.T) {
	s := NewScreener(map[string][]string{CategoryToxic: {"  Meanie ", ""}})
	result := s.Screen("what a meanie")
	assert.True(t, result.HasCategory(CategoryToxic))
	assert.False(t, result.IsCrisis())
	assert.Equal(t, []string{"meanie"}, result.Matches[CategoryToxic])
}

func TestReviewInput_Validate(t *testing.T) {
	require.NoError(t, (&ReviewInput{Action: ActionWarn}).Validate())
	require.Error(t, (&ReviewInput{Action: ActionSuspend}).Validate())
	require.NoError(t, (&ReviewInput{Action: ActionSuspend, DurationDays: 7}).Validate())
	require.Error(t, (&ReviewInput{Action: ActionUnsuspend}).Validate())

	assert.Equal(t, ReportDismissed, (&ReviewInput{Action: ActionDismiss}).ResultingStatus())
	assert.Equal(t, ReportResolved, (&ReviewInput{Action: ActionRemoveContent}).ResultingStatus())
}

func TestCreateReportInput_Validate(t *testing.T) {
	require.NoError(t, (&CreateReportInput{ContentType: ContentMessage, ContentID: "m-1", Reason: ReasonSpam}).Validate())
	require.Error(t, (&CreateReportInput{ContentType: "video", ContentID: "m-1", Reason: ReasonSpam}).Validate())
	require.Error(t, (&CreateReportInput{ContentType: ContentMessage, ContentID: "m-1", Reason: "rude"}).Validate())
}
