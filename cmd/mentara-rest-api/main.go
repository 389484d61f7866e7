// cmd/mentara-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	grpcv1 "github.com/Wetooa/mentara-sub026/internal/api/grpc/v1"
	v1 "github.com/Wetooa/mentara-sub026/internal/api/rest/v1"
	"github.com/Wetooa/mentara-sub026/internal/app"
	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"
	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	authinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/auth"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/calendar"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/crypto"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/email"
	eventsinfra "github.com/Wetooa/mentara-sub026/internal/infrastructure/events"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/monitoring"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/realtime"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/scheduler"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/storage"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	log, err := logger.New(&restConfig.Logger, config.ServiceRestAPI)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetDefault(log)

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db              *gorm.DB
	bus             events.Bus
	hub             *realtime.Hub
	dashboard       *monitoring.Dashboard
	collectors      *monitoring.Collectors
	scheduler       *scheduler.Scheduler
	rateLimiter     *v1.RateLimiter
	authRateLimiter *v1.RateLimiter
	services        *v1.Services

	// cancels the background loops started alongside the server
	stopBackground context.CancelFunc
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	repos, err := initializeRepositories(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	bus, err := eventsinfra.NewBus(&cfg.Events, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	hub := realtime.NewHub(cfg.CORSOrigins, log)
	collectors := monitoring.NewCollectors(hub.ConnectionCount)

	services, err := initializeApplicationServices(cfg, repos, bus, hub, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	deps := &appDependencies{
		db:         db,
		bus:        bus,
		hub:        hub,
		collectors: collectors,
		services:   services,
	}

	if cfg.Monitoring.Enabled {
		deps.dashboard, err = monitoring.NewDashboard(&cfg.Monitoring, monitoring.NewHostSampler(), log)
		if err != nil {
			return nil, fmt.Errorf("failed to create performance dashboard: %w", err)
		}
	}

	if cfg.RateLimit.Enabled {
		deps.rateLimiter, deps.authRateLimiter = v1.NewRateLimiters(cfg.RateLimit)
	}

	if cfg.Scheduler.Enabled {
		deps.scheduler, err = initializeScheduler(&cfg.Scheduler, services, collectors, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
		}
	}

	return deps, nil
}

// repositories groups the persistence adapters
type repositories struct {
	transactor    shared.Transactor
	users         users.UserRepository
	sessions      users.SessionRepository
	therapists    therapists.TherapistRepository
	files         therapists.TherapistFileRepository
	relationships clients.RelationshipRepository
	assessments   clients.PreAssessmentRepository
	meetings      meetings.MeetingRepository
	availability  meetings.AvailabilityRepository
	conversations messaging.ConversationRepository
	messages      messaging.MessageRepository
	blocks        messaging.BlockRepository
	reports       moderation.ReportRepository
	actions       moderation.ActionRepository
	auditLogs     auditlogs.AuditLogRepository
	systemEvents  auditlogs.SystemEventRepository
	worksheets    worksheets.WorksheetRepository
	notifications notifications.NotificationRepository
	reviews       reviews.ReviewRepository
	dashboards    dashboards.Repository
}

// initializeRepositories creates every GORM repository on db
func initializeRepositories(db *gorm.DB, log logger.Logger) (*repositories, error) {
	repos := &repositories{transactor: persistence.NewGormTransactor(db)}

	var err error
	if repos.users, err = persistence.NewGormUserRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	if repos.sessions, err = persistence.NewGormSessionRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create session repository: %w", err)
	}
	if repos.therapists, err = persistence.NewGormTherapistRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create therapist repository: %w", err)
	}
	if repos.files, err = persistence.NewGormTherapistFileRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create therapist file repository: %w", err)
	}
	if repos.relationships, err = persistence.NewGormRelationshipRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create relationship repository: %w", err)
	}
	if repos.assessments, err = persistence.NewGormPreAssessmentRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create pre-assessment repository: %w", err)
	}
	if repos.meetings, err = persistence.NewGormMeetingRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create meeting repository: %w", err)
	}
	if repos.availability, err = persistence.NewGormAvailabilityRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create availability repository: %w", err)
	}
	if repos.conversations, err = persistence.NewGormConversationRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create conversation repository: %w", err)
	}
	if repos.messages, err = persistence.NewGormMessageRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create message repository: %w", err)
	}
	if repos.blocks, err = persistence.NewGormBlockRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create block repository: %w", err)
	}
	if repos.reports, err = persistence.NewGormReportRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create report repository: %w", err)
	}
	if repos.actions, err = persistence.NewGormActionRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create moderation action repository: %w", err)
	}
	if repos.auditLogs, err = persistence.NewGormAuditLogRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create audit log repository: %w", err)
	}
	if repos.systemEvents, err = persistence.NewGormSystemEventRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create system event repository: %w", err)
	}
	if repos.worksheets, err = persistence.NewGormWorksheetRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create worksheet repository: %w", err)
	}
	if repos.notifications, err = persistence.NewGormNotificationRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create notification repository: %w", err)
	}
	if repos.reviews, err = persistence.NewGormReviewRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create review repository: %w", err)
	}
	if repos.dashboards, err = persistence.NewGormDashboardRepository(db, log); err != nil {
		return nil, fmt.Errorf("failed to create dashboard repository: %w", err)
	}
	return repos, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.RestConfig,
	repos *repositories,
	bus events.Bus,
	hub *realtime.Hub,
	log logger.Logger,
) (*v1.Services, error) {
	hasher, err := authinfra.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	issuer, err := authinfra.NewJWTIssuer(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}
	mailer, err := email.NewMailer(&cfg.Email, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}
	renderer, err := email.NewRenderer(cfg.Email.SupportURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create email renderer: %w", err)
	}
	store, err := storage.NewLocalStore(&cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}
	key, err := cfg.Messaging.Key()
	if err != nil {
		return nil, err
	}
	cipher, err := crypto.NewAESGCMCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create message cipher: %w", err)
	}

	services := &v1.Services{}

	if services.Auth, err = app.NewAuthService(repos.users, repos.sessions, hasher, issuer, repos.transactor, bus, mailer, renderer, &cfg.Auth, log); err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	if services.Profile, err = app.NewProfileService(repos.users, repos.sessions, hasher, bus, log); err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}
	if services.Applications, err = app.NewTherapistApplicationService(
		repos.therapists, repos.files, repos.users, hasher, store,
		repos.transactor, bus, mailer, renderer, cfg.Auth.FrontendURL, log,
	); err != nil {
		return nil, fmt.Errorf("failed to create therapist application service: %w", err)
	}
	if services.TherapistManagement, err = app.NewTherapistManagementService(repos.therapists, repos.users, repos.relationships, repos.assessments, bus, log); err != nil {
		return nil, fmt.Errorf("failed to create therapist management service: %w", err)
	}
	if services.Directory, err = app.NewTherapistDirectoryService(repos.therapists, repos.users, log); err != nil {
		return nil, fmt.Errorf("failed to create therapist directory service: %w", err)
	}
	if services.Clients, err = app.NewClientService(repos.relationships, repos.assessments, repos.therapists, repos.users, bus, log); err != nil {
		return nil, fmt.Errorf("failed to create client service: %w", err)
	}
	if services.Booking, err = app.NewBookingService(
		repos.meetings, repos.availability, repos.relationships, repos.therapists, repos.users,
		calendar.NewICSExporter(), bus, mailer, renderer, log,
	); err != nil {
		return nil, fmt.Errorf("failed to create booking service: %w", err)
	}
	if services.Availability, err = app.NewAvailabilityService(repos.availability, log); err != nil {
		return nil, fmt.Errorf("failed to create availability service: %w", err)
	}
	if services.Audit, err = app.NewAuditService(repos.auditLogs, repos.systemEvents, log); err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	screener, err := app.NewContentScreener(nil, repos.reports, services.Audit, bus, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create content screener: %w", err)
	}
	if services.Messaging, err = app.NewMessagingService(
		repos.conversations, repos.messages, repos.blocks, repos.users,
		cipher, screener, hub, repos.transactor, bus, log,
	); err != nil {
		return nil, fmt.Errorf("failed to create messaging service: %w", err)
	}
	if services.Moderation, err = app.NewModerationService(repos.reports, repos.actions, repos.users, repos.sessions, services.Messaging, repos.reviews, repos.transactor, bus, log); err != nil {
		return nil, fmt.Errorf("failed to create moderation service: %w", err)
	}
	if services.Worksheets, err = app.NewWorksheetService(repos.worksheets, repos.relationships, bus, log); err != nil {
		return nil, fmt.Errorf("failed to create worksheet service: %w", err)
	}
	if services.Notifications, err = app.NewNotificationService(repos.notifications, hub, log); err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}
	if services.Reviews, err = app.NewReviewService(repos.reviews, repos.meetings, bus, log); err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}
	if services.Dashboards, err = app.NewDashboardService(
		repos.dashboards, repos.users, repos.therapists, repos.relationships, repos.assessments, repos.reviews, log,
	); err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}

	if err := app.NewAuditSubscriber(services.Audit, log).Register(bus); err != nil {
		return nil, fmt.Errorf("failed to subscribe audit log: %w", err)
	}
	if err := app.NewNotificationSubscriber(services.Notifications, log).Register(bus); err != nil {
		return nil, fmt.Errorf("failed to subscribe notifications: %w", err)
	}

	log.Info("Application services initialized successfully")
	return services, nil
}

// initializeScheduler registers the background jobs
func initializeScheduler(settings *config.SchedulerSettings, services *v1.Services, collectors *monitoring.Collectors, log logger.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.NewScheduler(time.UTC, collectors, log)

	jobs := []struct {
		name string
		spec string
		job  scheduler.Job
	}{
		{"meeting-reminders", settings.MeetingReminders, func(ctx context.Context) error {
			sent, err := services.Booking.SendReminders(ctx)
			if sent > 0 {
				log.Info("Sent ", sent, " meeting reminders")
			}
			return err
		}},
		{"token-cleanup", settings.TokenCleanup, func(ctx context.Context) error {
			removed, err := services.Auth.CleanupExpiredTokens(ctx)
			if removed > 0 {
				log.Info("Removed ", removed, " expired refresh tokens")
			}
			return err
		}},
		{"overdue-worksheets", settings.OverdueWorksheet, func(ctx context.Context) error {
			marked, err := services.Worksheets.MarkOverdue(ctx)
			if marked > 0 {
				log.Info("Marked ", marked, " worksheets overdue")
			}
			return err
		}},
	}
	for _, j := range jobs {
		if err := s.Register(j.name, j.spec, j.job); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// startBackground starts the loops that live as long as the server
func (deps *appDependencies) startBackground() {
	ctx, cancel := context.WithCancel(context.Background())
	deps.stopBackground = cancel

	if deps.dashboard != nil {
		deps.dashboard.StartMonitoring(ctx)
	}
	if deps.rateLimiter != nil {
		deps.rateLimiter.StartCleanup(ctx, time.Minute)
		deps.authRateLimiter.StartCleanup(ctx, time.Minute)
	}
	if deps.scheduler != nil {
		deps.scheduler.Start()
	}
}

// close releases everything in reverse start order
func (deps *appDependencies) close(log logger.Logger) {
	if deps.stopBackground != nil {
		deps.stopBackground()
	}
	if deps.scheduler != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := deps.scheduler.Stop(ctx); err != nil {
			log.Warn("Scheduler did not stop cleanly: ", err)
		}
		cancel()
	}
	if deps.dashboard != nil {
		deps.dashboard.StopMonitoring()
	}
	deps.hub.Close()
	if err := deps.bus.Close(); err != nil {
		log.Warn("Failed to close event bus: ", err)
	}
	if err := persistence.CloseDB(deps.db); err != nil {
		log.Warn("Failed to close database: ", err)
	}
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", v1.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", v1.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	sqlDB, err := deps.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %w", err)
	}

	// Setup API routes
	v1.SetupRoutes(r, deps.services, &v1.Infrastructure{
		AuthSettings:    &cfg.Auth,
		Database:        sqlDB,
		Dashboard:       deps.dashboard,
		Collectors:      deps.collectors,
		Hub:             deps.hub,
		RateLimiter:     deps.rateLimiter,
		AuthRateLimiter: deps.authRateLimiter,
		Logger:          log,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	deps.startBackground()

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 2)

	var grpcServer *grpc.Server
	if cfg.Grpc.Enabled {
		watchCtx, stopWatch := context.WithCancel(context.Background())
		defer stopWatch()

		grpcServer, err = startGrpcServer(watchCtx, &cfg.Grpc, sqlDB, serverErrors, log)
		if err != nil {
			return err
		}
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// startGrpcServer serves the gRPC health service and keeps it in step with the database until ctx is done
func startGrpcServer(ctx context.Context, settings *config.GrpcSettings, database grpcv1.DatabasePinger, serverErrors chan<- error, log logger.Logger) (*grpc.Server, error) {
	healthServer, err := grpcv1.NewHealthServer(database, settings.CheckInterval, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC health server: %w", err)
	}
	grpcServer := grpcv1.NewServer(healthServer)

	lis, err := net.Listen("tcp", ":"+settings.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %s: %w", settings.Port, err)
	}

	go healthServer.Watch(ctx)
	go func() {
		log.Info("gRPC health server starting on port ", settings.Port)
		if err := grpcServer.Serve(lis); err != nil {
			serverErrors <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()
	return grpcServer, nil
}
