//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMeetingHandler_ExportICS(t *testing.T) {
	bookingService := new(MockBookingService)
	handler := NewMeetingHandler(bookingService)
	client := &users.User{ID: "client-1", Role: users.RoleClient}

	bookingService.On("ExportMeetingICS", mock.Anything, "client-1", "meeting-9").
		Return([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil)

	ctx, w := newTestContext(http.MethodGet, "/api/v1/meetings/meeting-9/calendar.ics", "", client)
	ctx.Params = gin.Params{{Key: "id", Value: "meeting-9"}}
	handler.ExportICS(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="meeting-meeting-9.ics"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
}

func TestMeetingHandler_Cancel_WithoutBody(t *testing.T) {
	bookingService := new(MockBookingService)
	handler := NewMeetingHandler(bookingService)
	client := &users.User{ID: "client-1", Role: users.RoleClient}

	bookingService.On("CancelMeeting", mock.Anything, "client-1", "meeting-9", "").Return(&meetings.Cancellation{
		Meeting:                 &meetings.Meeting{ID: "meeting-9", Status: meetings.StatusCancelled},
		CancellationNoticeHours: 30,
		RefundEligible:          true,
	}, nil)

	ctx, w := newTestContext(http.MethodPost, "/api/v1/meetings/meeting-9/cancel", "", client)
	ctx.Params = gin.Params{{Key: "id", Value: "meeting-9"}}
	handler.Cancel(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var response CancellationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, meetings.StatusCancelled, response.Meeting.Status)
	assert.Equal(t, 30, response.CancellationNoticeHours)
	assert.True(t, response.RefundEligible)
	bookingService.AssertExpectations(t)
}

func TestMeetingHandler_Cancel_WithReason(t *testing.T) {
	bookingService := new(MockBookingService)
	handler := NewMeetingHandler(bookingService)
	therapist := &users.User{ID: "therapist-1", Role: users.RoleTherapist}

	bookingService.On("CancelMeeting", mock.Anything, "therapist-1", "meeting-9", "family emergency").
		Return(nil, apperr.Validation("Meeting is already cancelled", nil))

	ctx, w := newTestContext(http.MethodPost, "/api/v1/meetings/meeting-9/cancel", `{"reason":"family emergency"}`, therapist)
	ctx.Params = gin.Params{{Key: "id", Value: "meeting-9"}}
	handler.Cancel(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bookingService.AssertExpectations(t)
}

func TestMeetingHandler_List_RejectsBadDates(t *testing.T) {
	bookingService := new(MockBookingService)
	handler := NewMeetingHandler(bookingService)

	ctx, w := newTestContext(http.MethodGet, "/api/v1/meetings?from=yesterday", "", &users.User{ID: "client-1", Role: users.RoleClient})
	handler.List(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bookingService.AssertNotCalled(t, "GetMeetings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMeetingHandler_List_PassesFilters(t *testing.T) {
	bookingService := new(MockBookingService)
	handler := NewMeetingHandler(bookingService)
	start := time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC)

	bookingService.On("GetMeetings", mock.Anything, "therapist-1", users.RoleTherapist,
		mock.MatchedBy(func(query *meetings.Query) bool {
			return query.Status == meetings.StatusScheduled &&
				query.From != nil && query.From.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) &&
				query.Limit == 5
		}),
	).Return([]*meetings.Details{
		{
			Meeting:       &meetings.Meeting{ID: "meeting-1", StartTime: start, EndTime: start.Add(time.Hour), Status: meetings.StatusScheduled},
			DateTime:      start,
			TherapistName: "Dr. Maria Santos",
			ClientName:    "Jane Doe",
		},
	}, nil)

	ctx, w := newTestContext(http.MethodGet, "/api/v1/meetings?status=SCHEDULED&from=2025-04-01&limit=5", "",
		&users.User{ID: "therapist-1", Role: users.RoleTherapist})
	handler.List(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Maria Santos")
	bookingService.AssertExpectations(t)
}
