package v1

import (
	"net/http"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"

	"github.com/gin-gonic/gin"
)

// DashboardHandler defines the interface for the per-role dashboards
type DashboardHandler interface {
	Client(ctx *gin.Context)
	Therapist(ctx *gin.Context)
	Admin(ctx *gin.Context)
}

type dashboardHandler struct {
	dashboardService dashboards.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService dashboards.DashboardService) DashboardHandler {
	return &dashboardHandler{
		dashboardService: dashboardService,
	}
}

func (handler *dashboardHandler) Client(ctx *gin.Context) {
	dashboard, err := handler.dashboardService.GetClientDashboard(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newClientDashboardResponse(dashboard))
}

func (handler *dashboardHandler) Therapist(ctx *gin.Context) {
	dashboard, err := handler.dashboardService.GetTherapistDashboard(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newTherapistDashboardResponse(dashboard, time.Now()))
}

func (handler *dashboardHandler) Admin(ctx *gin.Context) {
	dashboard, err := handler.dashboardService.GetAdminDashboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newAdminDashboardResponse(dashboard, time.Now()))
}
