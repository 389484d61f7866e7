package v1

import (
	"fmt"
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"

	"github.com/gin-gonic/gin"
)

// MeetingHandler defines the interface for meeting endpoints
type MeetingHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	ExportICS(ctx *gin.Context)
}

type meetingHandler struct {
	bookingService meetings.BookingService
}

// NewMeetingHandler creates a new MeetingHandler
func NewMeetingHandler(bookingService meetings.BookingService) MeetingHandler {
	return &meetingHandler{
		bookingService: bookingService,
	}
}

// Create books a meeting between a therapist and a client
// @Summary Book a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param request body CreateMeetingRequest true "Meeting"
// @Success 201 {object} MeetingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /meetings [post]
func (handler *meetingHandler) Create(ctx *gin.Context) {
	var request CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	user := currentUser(ctx)
	details, err := handler.bookingService.CreateMeeting(ctx.Request.Context(), user.ID, user.Role, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newMeetingDetailsResponse(details))
}

// List returns the caller's meetings
func (handler *meetingHandler) List(ctx *gin.Context) {
	from, err := queryTime(ctx, "from")
	if err != nil {
		respondBadRequest(ctx, "from must be a date")
		return
	}
	to, err := queryTime(ctx, "to")
	if err != nil {
		respondBadRequest(ctx, "to must be a date")
		return
	}
	query := &meetings.Query{
		Status: ctx.Query("status"),
		From:   from,
		To:     to,
		Limit:  queryInt(ctx, "limit", 0),
		Offset: queryInt(ctx, "offset", 0),
	}

	user := currentUser(ctx)
	found, err := handler.bookingService.GetMeetings(ctx.Request.Context(), user.ID, user.Role, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapSlice(found, newMeetingDetailsResponse))
}

// GetByID returns a meeting the caller takes part in
func (handler *meetingHandler) GetByID(ctx *gin.Context) {
	details, err := handler.bookingService.GetMeeting(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMeetingDetailsResponse(details))
}

// Update changes or reschedules a meeting
func (handler *meetingHandler) Update(ctx *gin.Context) {
	var request UpdateMeetingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	details, err := handler.bookingService.UpdateMeeting(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newMeetingDetailsResponse(details))
}

// Cancel cancels a meeting and reports whether the notice qualifies for a refund
func (handler *meetingHandler) Cancel(ctx *gin.Context) {
	var request ReasonRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			respondBadRequest(ctx, "invalid request body")
			return
		}
	}

	cancellation, err := handler.bookingService.CancelMeeting(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, CancellationResponse{
		Meeting:                 newMeetingResponse(cancellation.Meeting),
		CancellationNoticeHours: cancellation.CancellationNoticeHours,
		RefundEligible:          cancellation.RefundEligible,
	})
}

// ExportICS returns the meeting as an iCalendar file
func (handler *meetingHandler) ExportICS(ctx *gin.Context) {
	meetingID := ctx.Param("id")
	content, err := handler.bookingService.ExportMeetingICS(ctx.Request.Context(), currentUser(ctx).ID, meetingID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "meeting-"+meetingID+".ics"))
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", content)
}
