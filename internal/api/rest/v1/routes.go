package v1

import (
	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/monitoring"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/realtime"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Services are the application services behind the API
type Services struct {
	Auth                users.AuthService
	Profile             users.ProfileService
	Applications        therapists.ApplicationService
	TherapistManagement therapists.ManagementService
	Directory           therapists.DirectoryService
	Clients             clients.ClientService
	Booking             meetings.BookingService
	Availability        meetings.AvailabilityService
	Messaging           messaging.MessagingService
	Moderation          moderation.ModerationService
	Audit               auditlogs.AuditService
	Notifications       notifications.NotificationService
	Worksheets          worksheets.WorksheetService
	Reviews             reviews.ReviewService
	Dashboards          dashboards.DashboardService
}

// Infrastructure holds the cross cutting components used by the HTTP layer.
// Nil rate limiters disable limiting. Nil Collectors disables /metrics.
type Infrastructure struct {
	AuthSettings    *config.AuthSettings
	Database        DatabasePinger
	Dashboard       *monitoring.Dashboard
	Collectors      *monitoring.Collectors
	Hub             *realtime.Hub
	RateLimiter     *RateLimiter
	AuthRateLimiter *RateLimiter
	Logger          logger.Logger
}

func limit(limiter *RateLimiter) gin.HandlerFunc {
	if limiter == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}
	return limiter.Middleware()
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services *Services, infra *Infrastructure) {
	r.Use(RequestMetadata(), AccessLog(infra.Logger), Metrics(infra.Dashboard, infra.Collectors))

	systemHandler := NewSystemHandler(infra.Database, infra.Dashboard, infra.Hub, services.Auth, infra.Logger)
	r.GET("/health", systemHandler.Health)
	if infra.Collectors != nil {
		r.GET("/metrics", gin.WrapH(infra.Collectors.Handler()))
	}

	v1 := r.Group(BasePath) // lookup in version file
	v1.GET("/health", systemHandler.Health)
	if infra.Hub != nil {
		v1.GET("/ws", systemHandler.WebSocket)
	}

	authenticated := AuthMiddleware(services.Auth, true)
	general := limit(infra.RateLimiter)
	strict := limit(infra.AuthRateLimiter)

	// Auth Routes
	authHandler := NewAuthHandler(services.Auth, infra.AuthSettings)
	authPublic := v1.Group("/auth", strict)
	authPublic.POST("/register", authHandler.Register)
	authPublic.POST("/login", authHandler.Login)
	authPublic.POST("/refresh", authHandler.Refresh)
	authPublic.POST("/verify-email", authHandler.VerifyEmail)
	authPublic.POST("/forgot-password", authHandler.ForgotPassword)
	authPublic.POST("/reset-password", authHandler.ResetPassword)
	v1.GET("/auth/route-check", AuthMiddleware(services.Auth, false), general, authHandler.RouteCheck)

	protected := v1.Group("", authenticated, general)
	protected.POST("/auth/logout", authHandler.Logout)
	protected.POST("/auth/logout-all", authHandler.LogoutAll)
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/auth/sessions", authHandler.ListSessions)
	protected.DELETE("/auth/sessions/:id", authHandler.TerminateSession)
	protected.DELETE("/auth/sessions", authHandler.TerminateOtherSessions)
	protected.POST("/auth/resend-verification", strict, authHandler.ResendVerification)

	// Profile Routes
	userHandler := NewUserHandler(services.Profile)
	protected.GET("/profile", userHandler.GetProfile)
	protected.PUT("/profile", userHandler.UpdateProfile)
	protected.PUT("/profile/password", userHandler.ChangePassword)
	protected.DELETE("/profile", userHandler.DeactivateAccount)

	// Therapist Application Routes
	applicationHandler := NewApplicationHandler(services.Applications)
	v1.POST("/therapist-applications", strict, applicationHandler.Submit)
	v1.POST("/therapist-applications/progress", general, applicationHandler.Progress)

	// Directory Routes
	therapistHandler := NewTherapistHandler(services.TherapistManagement, services.Directory, services.Availability, services.Booking)
	directory := v1.Group("/therapists", general)
	directory.GET("", therapistHandler.ListDirectory)
	directory.GET("/:id", therapistHandler.GetPublicProfile)
	directory.GET("/:id/slots", therapistHandler.AvailableSlots)

	// Review Routes
	reviewHandler := NewReviewHandler(services.Reviews)
	directory.GET("/:id/reviews", AuthMiddleware(services.Auth, false), reviewHandler.ListForTherapist)
	directory.GET("/:id/reviews/stats", reviewHandler.Stats)
	protected.GET("/reviews", reviewHandler.List)
	protected.POST("/reviews", RequireRoles(users.RoleClient), reviewHandler.Create)
	protected.PUT("/reviews/:id", RequireRoles(users.RoleClient), reviewHandler.Update)
	protected.DELETE("/reviews/:id", RequireRoles(users.RoleClient), reviewHandler.Delete)
	protected.POST("/reviews/:id/helpful", reviewHandler.MarkHelpful)

	dashboardHandler := NewDashboardHandler(services.Dashboards)

	// Therapist Role Routes
	therapist := protected.Group("/therapist", RequireRoles(users.RoleTherapist))
	therapist.GET("/dashboard", dashboardHandler.Therapist)
	therapist.GET("/profile", therapistHandler.GetProfile)
	therapist.PUT("/profile", therapistHandler.UpdateProfile)
	therapist.GET("/patients", therapistHandler.ListPatients)
	therapist.DELETE("/patients/:clientId", therapistHandler.RemovePatient)
	therapist.GET("/requests", therapistHandler.ListRequests)
	therapist.POST("/requests/:clientId/accept", therapistHandler.AcceptRequest)
	therapist.POST("/requests/:clientId/deny", therapistHandler.DenyRequest)
	therapist.GET("/clients", therapistHandler.ListClients)
	therapist.GET("/clients/:clientId", therapistHandler.GetClient)
	therapist.GET("/matched-clients", therapistHandler.MatchedClients)
	therapist.POST("/availability", therapistHandler.CreateAvailability)
	therapist.GET("/availability", therapistHandler.ListAvailability)
	therapist.PUT("/availability/:id", therapistHandler.UpdateAvailability)
	therapist.DELETE("/availability/:id", therapistHandler.DeleteAvailability)

	// Client Role Routes
	clientHandler := NewClientHandler(services.Clients)
	client := protected.Group("/client", RequireRoles(users.RoleClient))
	client.GET("/dashboard", dashboardHandler.Client)
	client.POST("/therapists/:therapistId/request", clientHandler.RequestTherapist)
	client.DELETE("/therapists/:therapistId/request", clientHandler.CancelRequest)
	client.GET("/therapists", clientHandler.ListTherapists)
	client.POST("/pre-assessment", clientHandler.SubmitPreAssessment)
	client.GET("/pre-assessment", clientHandler.GetPreAssessment)
	client.GET("/welcome-status", clientHandler.WelcomeStatus)
	client.POST("/recommendations/seen", clientHandler.MarkRecommendationsSeen)

	// Meeting Routes
	meetingHandler := NewMeetingHandler(services.Booking)
	sessions := protected.Group("/meetings", RequireRoles(users.RoleClient, users.RoleTherapist))
	sessions.POST("", meetingHandler.Create)
	sessions.GET("", meetingHandler.List)
	sessions.GET("/:id", meetingHandler.GetByID)
	sessions.PUT("/:id", meetingHandler.Update)
	sessions.POST("/:id/cancel", meetingHandler.Cancel)
	sessions.GET("/:id/calendar.ics", meetingHandler.ExportICS)

	// Messaging Routes
	messagingHandler := NewMessagingHandler(services.Messaging)
	protected.POST("/conversations", messagingHandler.CreateConversation)
	protected.GET("/conversations", messagingHandler.ListConversations)
	protected.GET("/conversations/:id", messagingHandler.GetConversation)
	protected.GET("/conversations/:id/messages", messagingHandler.ListMessages)
	protected.POST("/conversations/:id/messages", messagingHandler.SendMessage)
	protected.GET("/messages/search", messagingHandler.Search)
	protected.PUT("/messages/:id", messagingHandler.UpdateMessage)
	protected.DELETE("/messages/:id", messagingHandler.DeleteMessage)
	protected.POST("/messages/:id/read", messagingHandler.MarkRead)
	protected.POST("/messages/:id/reactions", messagingHandler.AddReaction)
	protected.DELETE("/messages/:id/reactions/:emoji", messagingHandler.RemoveReaction)
	protected.POST("/users/:id/block", messagingHandler.BlockUser)
	protected.DELETE("/users/:id/block", messagingHandler.UnblockUser)

	// Worksheet Routes
	worksheetHandler := NewWorksheetHandler(services.Worksheets)
	protected.POST("/worksheets", RequireRoles(users.RoleTherapist), worksheetHandler.Assign)
	protected.GET("/worksheets", RequireRoles(users.RoleClient, users.RoleTherapist), worksheetHandler.List)
	protected.GET("/worksheets/:id", worksheetHandler.GetByID)
	protected.POST("/worksheets/:id/submit", RequireRoles(users.RoleClient), worksheetHandler.Submit)
	protected.POST("/worksheets/:id/review", RequireRoles(users.RoleTherapist), worksheetHandler.Review)

	// Notification Routes
	notificationHandler := NewNotificationHandler(services.Notifications)
	protected.GET("/notifications", notificationHandler.List)
	protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
	protected.DELETE("/notifications/:id", notificationHandler.Delete)

	// Moderation Routes
	moderationHandler := NewModerationHandler(services.Moderation)
	protected.POST("/reports", moderationHandler.CreateReport)
	moderator := protected.Group("/moderator", RequireRoles(users.RoleModerator, users.RoleAdmin))
	moderator.GET("/reports", moderationHandler.ListReports)
	moderator.GET("/reports/:id", moderationHandler.GetReport)
	moderator.POST("/reports/:id/review", moderationHandler.ReviewReport)
	moderator.POST("/users/:id/suspend", moderationHandler.SuspendUser)
	moderator.POST("/users/:id/unsuspend", moderationHandler.UnsuspendUser)
	moderator.GET("/actions", moderationHandler.ListActions)
	moderator.GET("/stats", moderationHandler.Stats)
	moderator.PUT("/reviews/:id", reviewHandler.Moderate)

	// Admin Routes
	auditHandler := NewAuditHandler(services.Audit)
	admin := protected.Group("/admin", RequireRoles(users.RoleAdmin))
	admin.GET("/dashboard", dashboardHandler.Admin)
	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.PUT("/users/:id/role", userHandler.UpdateUserRole)
	admin.POST("/users/:id/deactivate", userHandler.DeactivateUser)
	admin.POST("/users/:id/reactivate", userHandler.ReactivateUser)
	admin.GET("/therapist-applications", applicationHandler.List)
	admin.GET("/therapist-applications/:id", applicationHandler.GetByID)
	admin.PUT("/therapist-applications/:id/status", applicationHandler.UpdateStatus)
	admin.GET("/therapist-applications/:id/files/:fileId", applicationHandler.DownloadFile)
	admin.GET("/audit-logs", auditHandler.ListAuditLogs)
	admin.GET("/audit-logs/stats", auditHandler.AuditStats)
	admin.GET("/system-events", auditHandler.ListSystemEvents)
	admin.POST("/system-events/:id/resolve", auditHandler.ResolveSystemEvent)
	if infra.Dashboard != nil {
		admin.GET("/performance", systemHandler.Performance)
		admin.GET("/performance/endpoints", systemHandler.EndpointStats)
		admin.GET("/performance/alerts", systemHandler.Alerts)
		admin.POST("/performance/reset", systemHandler.ResetPerformance)
	}
}
