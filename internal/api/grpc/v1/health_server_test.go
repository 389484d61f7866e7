//go:build unit
// +build unit

package v1

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// startHealthServer serves healthServer over an in-memory listener and returns a connected client
func startHealthServer(t *testing.T, healthServer *HealthServer) healthpb.HealthClient {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := NewServer(healthServer)
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func statusOf(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestNewHealthServer_Validation(t *testing.T) {
	_, err := NewHealthServer(nil, time.Second, testutil.SetupTestLogger(t))
	assert.Error(t, err)

	_, err = NewHealthServer(&fakePinger{}, 0, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestHealthServer_FollowsDatabase(t *testing.T) {
	pinger := &fakePinger{}
	healthServer, err := NewHealthServer(pinger, time.Hour, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	client := startHealthServer(t, healthServer)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, statusOf(t, client, ""), "not serving before the first check")

	assert.True(t, healthServer.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, statusOf(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, statusOf(t, client, ServiceName))

	pinger.fail(errors.New("connection refused"))
	assert.False(t, healthServer.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, statusOf(t, client, ServiceName))
}

func TestHealthServer_UnknownService(t *testing.T) {
	healthServer, err := NewHealthServer(&fakePinger{}, time.Hour, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	client := startHealthServer(t, healthServer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "billing"})
	assert.Error(t, err)
}

func TestHealthServer_WatchStopsServingOnCancel(t *testing.T) {
	healthServer, err := NewHealthServer(&fakePinger{}, 10*time.Millisecond, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	client := startHealthServer(t, healthServer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		healthServer.Watch(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, statusOf(t, client, ""))
}
