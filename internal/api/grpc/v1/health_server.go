package v1

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported for the Mentara API. The empty name
// reports the same status for the whole server.
const ServiceName = "mentara.api.v1"

const pingTimeout = 3 * time.Second

// DatabasePinger checks database connectivity. *sql.DB satisfies it.
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer publishes database reachability through the standard gRPC health service
type HealthServer struct {
	health   *health.Server
	database DatabasePinger
	interval time.Duration
	logger   logger.Logger

	mu      sync.Mutex
	serving bool
}

// NewHealthServer creates a HealthServer that starts as NOT_SERVING until the first check
func NewHealthServer(database DatabasePinger, interval time.Duration, logger logger.Logger) (*HealthServer, error) {
	if database == nil {
		return nil, fmt.Errorf("database pinger is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("check interval must be positive")
	}

	s := &HealthServer{
		health:   health.NewServer(),
		database: database,
		interval: interval,
		logger:   logger,
	}
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s, nil
}

// Register adds the health service to server
func (s *HealthServer) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, s.health)
}

// Check pings the database once and publishes the result. It reports whether the database answered.
func (s *HealthServer) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := s.database.PingContext(pingCtx)

	s.mu.Lock()
	changed := s.serving != (err == nil)
	s.serving = err == nil
	s.mu.Unlock()

	if err != nil {
		if changed {
			s.logger.Error("gRPC health: database unreachable: ", err)
		}
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return false
	}
	if changed {
		s.logger.Info("gRPC health: serving")
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
	return true
}

// Watch checks immediately and then on every interval until ctx is done. Afterwards every
// service reports NOT_SERVING.
func (s *HealthServer) Watch(ctx context.Context) {
	s.Check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

func (s *HealthServer) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// NewServer creates a gRPC server carrying the health service. Reflection is enabled for grpcurl.
func NewServer(healthServer *HealthServer, opts ...grpc.ServerOption) *grpc.Server {
	server := grpc.NewServer(opts...)
	healthServer.Register(server)
	reflection.Register(server)
	return server
}
