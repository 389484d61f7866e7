package v1

import (
	"net/http"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"

	"github.com/gin-gonic/gin"
)

// AuditHandler defines the interface for audit trail and system event endpoints
type AuditHandler interface {
	ListAuditLogs(ctx *gin.Context)
	AuditStats(ctx *gin.Context)
	ListSystemEvents(ctx *gin.Context)
	ResolveSystemEvent(ctx *gin.Context)
}

type auditHandler struct {
	auditService auditlogs.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService auditlogs.AuditService) AuditHandler {
	return &auditHandler{
		auditService: auditService,
	}
}

// ListAuditLogs pages through the audit trail, newest first
// @Summary Audit logs
// @Tags Admin
// @Produce json
// @Param userId query string false "Acting user"
// @Param action query string false "Action"
// @Param entity query string false "Entity"
// @Param entityId query string false "Entity ID"
// @Param dateFrom query string false "Earliest date"
// @Param dateTo query string false "Latest date"
// @Success 200 {object} shared.Page[AuditLogResponse]
// @Router /admin/audit-logs [get]
func (handler *auditHandler) ListAuditLogs(ctx *gin.Context) {
	from, err := queryTime(ctx, "dateFrom")
	if err != nil {
		respondBadRequest(ctx, "dateFrom must be a date")
		return
	}
	to, err := queryTime(ctx, "dateTo")
	if err != nil {
		respondBadRequest(ctx, "dateTo must be a date")
		return
	}
	query := &auditlogs.Query{
		UserID:   ctx.Query("userId"),
		Action:   ctx.Query("action"),
		Entity:   ctx.Query("entity"),
		EntityID: ctx.Query("entityId"),
		DateFrom: from,
		DateTo:   to,
		Page:     queryInt(ctx, "page", 0),
		Limit:    queryInt(ctx, "limit", 0),
	}

	page, err := handler.auditService.FindAuditLogs(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newAuditLogResponse))
}

// AuditStats totals the audit trail over an optional date range
func (handler *auditHandler) AuditStats(ctx *gin.Context) {
	from, err := queryTime(ctx, "dateFrom")
	if err != nil {
		respondBadRequest(ctx, "dateFrom must be a date")
		return
	}
	to, err := queryTime(ctx, "dateTo")
	if err != nil {
		respondBadRequest(ctx, "dateTo must be a date")
		return
	}

	stats, err := handler.auditService.GetAuditStats(ctx.Request.Context(), from, to)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, AuditStatsResponse{
		Total:    stats.Total,
		ByAction: stats.ByAction,
		ByEntity: stats.ByEntity,
		DateFrom: stats.DateFrom,
		DateTo:   stats.DateTo,
	})
}

// ListSystemEvents pages through operational events
func (handler *auditHandler) ListSystemEvents(ctx *gin.Context) {
	query := &auditlogs.SystemEventQuery{
		EventType:  ctx.Query("eventType"),
		Severity:   ctx.Query("severity"),
		IsResolved: queryBool(ctx, "isResolved"),
		Page:       queryInt(ctx, "page", 0),
		Limit:      queryInt(ctx, "limit", 0),
	}

	page, err := handler.auditService.FindSystemEvents(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mapPage(page, newSystemEventResponse))
}

// ResolveSystemEvent closes an event with a resolution note
func (handler *auditHandler) ResolveSystemEvent(ctx *gin.Context) {
	var request ResolveSystemEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	event, err := handler.auditService.ResolveSystemEvent(ctx.Request.Context(), ctx.Param("id"), currentUser(ctx).ID, request.Resolution)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSystemEventResponse(event))
}
