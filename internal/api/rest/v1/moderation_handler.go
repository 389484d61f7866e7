package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"

	"github.com/gin-gonic/gin"
)

// ModerationHandler defines the interface for report and moderator endpoints
type ModerationHandler interface {
	CreateReport(ctx *gin.Context)
	ListReports(ctx *gin.Context)
	GetReport(ctx *gin.Context)
	ReviewReport(ctx *gin.Context)
	SuspendUser(ctx *gin.Context)
	UnsuspendUser(ctx *gin.Context)
	ListActions(ctx *gin.Context)
	Stats(ctx *gin.Context)
}

type moderationHandler struct {
	moderationService moderation.ModerationService
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(moderationService moderation.ModerationService) ModerationHandler {
	return &moderationHandler{
		moderationService: moderationService,
	}
}

// CreateReport flags content or a user for review
func (handler *moderationHandler) CreateReport(ctx *gin.Context) {
	var request CreateReportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	report, err := handler.moderationService.CreateReport(ctx.Request.Context(), currentUser(ctx).ID, request.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newReportResponse(report))
}

// ListReports pages through reports, oldest pending first
// @Summary List content reports
// @Tags Moderator
// @Produce json
// @Param status query string false "Status filter"
// @Param contentType query string false "Content type filter"
// @Param reason query string false "Reason filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Page[ReportResponse]
// @Router /moderator/reports [get]
func (handler *moderationHandler) ListReports(ctx *gin.Context) {
	query := &moderation.ReportQuery{
		Status:      ctx.Query("status"),
		ContentType: ctx.Query("contentType"),
		Reason:      ctx.Query("reason"),
		Page:        queryInt(ctx, "page", 0),
		Limit:       queryInt(ctx, "limit", 0),
	}

	page, err := handler.moderationService.ListReports(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newReportResponse))
}

// GetReport returns one report
func (handler *moderationHandler) GetReport(ctx *gin.Context) {
	report, err := handler.moderationService.GetReport(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newReportResponse(report))
}

// ReviewReport applies a moderator's decision to a report
func (handler *moderationHandler) ReviewReport(ctx *gin.Context) {
	var request ReviewReportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	input := &moderation.ReviewInput{
		Action:       request.Action,
		Notes:        request.Notes,
		DurationDays: request.DurationDays,
	}
	report, err := handler.moderationService.ReviewReport(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newReportResponse(report))
}

// SuspendUser suspends an account for a number of days
func (handler *moderationHandler) SuspendUser(ctx *gin.Context) {
	var request SuspendUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	input := &moderation.SuspendInput{Reason: request.Reason, DurationDays: request.DurationDays}
	action, err := handler.moderationService.SuspendUser(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newModerationActionResponse(action))
}

// UnsuspendUser lifts a suspension early
func (handler *moderationHandler) UnsuspendUser(ctx *gin.Context) {
	var request ReasonRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			respondBadRequest(ctx, "invalid request body")
			return
		}
	}

	action, err := handler.moderationService.UnsuspendUser(ctx.Request.Context(), currentUser(ctx).ID, ctx.Param("id"), request.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newModerationActionResponse(action))
}

// ListActions pages through recorded moderation actions
func (handler *moderationHandler) ListActions(ctx *gin.Context) {
	query := &moderation.ActionQuery{
		ModeratorID:  ctx.Query("moderatorId"),
		TargetUserID: ctx.Query("targetUserId"),
		Action:       ctx.Query("action"),
		Page:         queryInt(ctx, "page", 0),
		Limit:        queryInt(ctx, "limit", 0),
	}

	page, err := handler.moderationService.ListActions(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newModerationActionResponse))
}

// Stats counts reports by status and reason
func (handler *moderationHandler) Stats(ctx *gin.Context) {
	stats, err := handler.moderationService.GetModerationStats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ModerationStatsResponse{
		TotalReports: stats.TotalReports,
		ByStatus:     stats.ByStatus,
		ByReason:     stats.ByReason,
		TotalActions: stats.TotalActions,
	})
}
