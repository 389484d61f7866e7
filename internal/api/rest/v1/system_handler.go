package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/monitoring"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/realtime"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DatabasePinger checks database connectivity. *sql.DB satisfies it.
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports the liveness of the service and its database
type HealthResponse struct {
	Status            string    `json:"status"`
	Database          string    `json:"database"`
	DatabaseLatencyMs float64   `json:"databaseLatencyMs"`
	OnlineConnections int       `json:"onlineConnections"`
	Timestamp         time.Time `json:"timestamp"`
}

// SystemHandler defines the interface for health, performance and realtime endpoints
type SystemHandler interface {
	Health(ctx *gin.Context)
	Performance(ctx *gin.Context)
	EndpointStats(ctx *gin.Context)
	Alerts(ctx *gin.Context)
	ResetPerformance(ctx *gin.Context)
	WebSocket(ctx *gin.Context)
}

type systemHandler struct {
	database    DatabasePinger
	dashboard   *monitoring.Dashboard
	hub         *realtime.Hub
	authService users.AuthService
	logger      logger.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(database DatabasePinger, dashboard *monitoring.Dashboard, hub *realtime.Hub, authService users.AuthService, logger logger.Logger) SystemHandler {
	return &systemHandler{
		database:    database,
		dashboard:   dashboard,
		hub:         hub,
		authService: authService,
		logger:      logger,
	}
}

// Health pings the database and reports its latency
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (handler *systemHandler) Health(ctx *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "up",
		Timestamp: time.Now().UTC(),
	}
	if handler.hub != nil {
		response.OnlineConnections = handler.hub.ConnectionCount()
	}

	status := http.StatusOK
	if handler.database != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		start := time.Now()
		err := handler.database.PingContext(pingCtx)
		latency := time.Since(start)
		response.DatabaseLatencyMs = float64(latency.Microseconds()) / 1000
		if err != nil {
			handler.logger.Error("Database health check failed: ", err)
			response.Status = "degraded"
			response.Database = "down"
			status = http.StatusServiceUnavailable
		} else if handler.dashboard != nil {
			handler.dashboard.RecordDatabaseLatency(latency)
		}
	}

	ctx.JSON(status, response)
}

// Performance returns the dashboard snapshot
func (handler *systemHandler) Performance(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.dashboard.GetDashboardData())
}

// EndpointStats returns per endpoint latency and error figures
func (handler *systemHandler) EndpointStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.dashboard.GetEndpointStats())
}

// Alerts returns the most recent alerts, newest first
func (handler *systemHandler) Alerts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.dashboard.GetRecentAlerts(queryInt(ctx, "limit", 50)))
}

// ResetPerformance clears the collected request metrics and alerts
func (handler *systemHandler) ResetPerformance(ctx *gin.Context) {
	handler.dashboard.ResetMetrics()
	ctx.JSON(http.StatusOK, InfoResponse{Message: "Performance metrics reset"})
}

// WebSocket upgrades an authenticated request to the realtime channel.
// Browsers cannot set headers on the handshake, so the token may be passed as ?token=.
func (handler *systemHandler) WebSocket(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		token = accessTokenFrom(ctx)
	}
	if token == "" {
		respondError(ctx, apperr.Unauthorized("Authentication required"))
		return
	}

	user, err := handler.authService.Authenticate(ctx.Request.Context(), token)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := handler.hub.ServeWS(ctx.Writer, ctx.Request, user.ID); err != nil {
		handler.logger.Warn("WebSocket connection for ", user.ID, " failed: ", err)
	}
}
