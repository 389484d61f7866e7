//go:build unit
// +build unit

package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDetails(status string) *meetings.Details {
	loc := time.FixedZone("PHT", 8*60*60)
	start := time.Date(2030, 3, 4, 10, 0, 0, 0, loc)
	return &meetings.Details{
		Meeting: &meetings.Meeting{
			ID:          uuid.NewString(),
			TherapistID: uuid.NewString(),
			ClientID:    uuid.NewString(),
			Title:       "Therapy Session",
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
			Duration:    60,
			Status:      status,
			MeetingType: meetings.TypeVideo,
			MeetingURL:  "https://meet.mentara.app/room-1",
		},
		TherapistName: "Dr. Reyes",
		ClientName:    "Ana Cruz",
	}
}

func TestICSExporter_Export(t *testing.T) {
	exporter := NewICSExporter()
	details := testDetails(meetings.StatusScheduled)

	out, err := exporter.Export(details)
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR"))
	assert.Contains(t, doc, "PRODID:"+ProductID)
	assert.Contains(t, doc, "UID:"+details.Meeting.ID+"@mentara.app")
	assert.Contains(t, doc, "DTSTART:20300304T020000Z")
	assert.Contains(t, doc, "DTEND:20300304T030000Z")
	assert.Contains(t, doc, "SUMMARY:Therapy Session")
	assert.Contains(t, doc, "LOCATION:https://meet.mentara.app/room-1")
	assert.Contains(t, doc, "STATUS:CONFIRMED")
	assert.Equal(t, 1, strings.Count(doc, "BEGIN:VEVENT"))
}

func TestICSExporter_Cancelled(t *testing.T) {
	out, err := NewICSExporter().Export(testDetails(meetings.StatusCancelled))
	require.NoError(t, err)
	assert.Contains(t, string(out), "STATUS:CANCELLED")
}

func TestICSExporter_NilMeeting(t *testing.T) {
	_, err := NewICSExporter().Export(&meetings.Details{})
	assert.Error(t, err)
}
