//go:build unit
// +build unit

package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSampler struct {
	mu     sync.Mutex
	sample SystemMetrics
	err    error
	calls  int
}

func (f *fakeSampler) Sample(ctx context.Context) (SystemMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.sample, f.err
}

func (f *fakeSampler) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func setupDashboard(t *testing.T, sampler SystemSampler) (*Dashboard, *time.Time) {
	t.Helper()

	if sampler == nil {
		sampler = &fakeSampler{}
	}
	settings := &config.MonitoringSettings{Enabled: true, SampleInterval: 10 * time.Millisecond, MaxMetrics: 50}
	d, err := NewDashboard(settings, sampler, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	now := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	return d, &now
}

func TestRing(t *testing.T) {
	r := newRing[int](3)
	assert.Empty(t, r.values())

	for i := 1; i <= 5; i++ {
		r.push(i)
	}
	assert.Equal(t, 3, r.len())
	assert.Equal(t, []int{3, 4, 5}, r.values())
	assert.Equal(t, []int{4, 5}, r.last(2))

	r.reset()
	assert.Equal(t, 0, r.len())
}

func TestDashboard_RecordRequest(t *testing.T) {
	t.Run("AggregatesPerEndpoint", func(t *testing.T) {
		d, _ := setupDashboard(t, nil)

		d.RecordRequest("/api/v1/meetings", "GET", 100*time.Millisecond, 200)
		d.RecordRequest("/api/v1/meetings", "GET", 300*time.Millisecond, 500)
		d.RecordRequest("/api/v1/auth/login", "POST", 50*time.Millisecond, 200)

		stats := d.GetEndpointStats()
		require.Len(t, stats, 2)

		meetings := stats[0]
		assert.Equal(t, "GET /api/v1/meetings", meetings.Endpoint)
		assert.Equal(t, int64(2), meetings.TotalRequests)
		assert.Equal(t, int64(1), meetings.ErrorCount)
		assert.Equal(t, 200.0, meetings.AverageResponseTime)
		assert.Equal(t, 100.0, meetings.MinResponseTime)
		assert.Equal(t, 300.0, meetings.MaxResponseTime)
		assert.Equal(t, 50.0, meetings.ErrorRate)
		assert.Equal(t, 300.0, meetings.P95ResponseTime)
		assert.Equal(t, 2, meetings.RequestsPerMinute)
	})

	t.Run("WindowsExcludeOldRequests", func(t *testing.T) {
		d, now := setupDashboard(t, nil)

		d.RecordRequest("/api/v1/users", "GET", 900*time.Millisecond, 200)
		*now = now.Add(10 * time.Minute)
		d.RecordRequest("/api/v1/users", "GET", 10*time.Millisecond, 200)

		stats := d.GetEndpointStats()
		require.Len(t, stats, 1)
		assert.Equal(t, int64(2), stats[0].TotalRequests)
		assert.Equal(t, 10.0, stats[0].P99ResponseTime)
		assert.Equal(t, 1, stats[0].RequestsPerMinute)
	})

	t.Run("SlowRequestRaisesAlert", func(t *testing.T) {
		d, _ := setupDashboard(t, nil)

		d.RecordRequest("/api/v1/messaging/conversations", "GET", 1500*time.Millisecond, 200)
		d.RecordRequest("/api/v1/messaging/conversations", "GET", 6*time.Second, 200)

		alerts := d.GetRecentAlerts(0)
		require.Len(t, alerts, 2)
		assert.Equal(t, AlertResponseTime, alerts[0].Type)
		assert.Equal(t, SeverityCritical, alerts[0].Severity)
		assert.Equal(t, 5000.0, alerts[0].Threshold)
		assert.Equal(t, SeverityHigh, alerts[1].Severity)
		assert.Contains(t, alerts[1].Message, "GET /api/v1/messaging/conversations")
	})

	t.Run("ThresholdsAreExclusive", func(t *testing.T) {
		d, _ := setupDashboard(t, nil)

		d.RecordRequest("/api/v1/meetings", "GET", time.Second, 200)
		d.RecordRequest("/api/v1/meetings", "GET", 5*time.Second, 200)
		d.RecordDatabaseLatency(500 * time.Millisecond)

		alerts := d.GetRecentAlerts(0)
		require.Len(t, alerts, 1, "only the 5s request passes the 1000ms warning")
		assert.Equal(t, SeverityHigh, alerts[0].Severity)
		assert.Equal(t, 1000.0, alerts[0].Threshold)
	})

	t.Run("ErrorRateCheckedOnEveryRequest", func(t *testing.T) {
		d, _ := setupDashboard(t, nil)

		d.RecordRequest("/api/v1/auth/login", "POST", time.Millisecond, 500)

		alerts := d.GetRecentAlerts(0)
		require.Len(t, alerts, 1)
		assert.Equal(t, AlertErrorRate, alerts[0].Type)
		assert.Equal(t, SeverityCritical, alerts[0].Severity)
		assert.Contains(t, alerts[0].Message, "POST /api/v1/auth/login")
	})

	t.Run("AlertsAreCapped", func(t *testing.T) {
		d, _ := setupDashboard(t, nil)

		for i := 0; i < maxAlerts+20; i++ {
			d.RecordDatabaseLatency(3 * time.Second)
		}
		assert.Len(t, d.GetRecentAlerts(1000), maxAlerts)
	})
}

func TestDashboard_SystemMetrics(t *testing.T) {
	t.Run("CollectRaisesAlerts", func(t *testing.T) {
		sampler := &fakeSampler{sample: SystemMetrics{MemoryUsage: 85, CPUUsage: 95, Goroutines: 12, HeapMB: 30}}
		d, _ := setupDashboard(t, sampler)

		d.CollectSystemMetrics(context.Background())

		data := d.GetDashboardData()
		require.NotNil(t, data.SystemMetrics)
		assert.Equal(t, 85.0, data.SystemMetrics.MemoryUsage)
		assert.Len(t, data.Timeline, 1)

		types := map[string]string{}
		for _, a := range data.RecentAlerts {
			types[a.Type] = a.Severity
		}
		assert.Equal(t, SeverityHigh, types[AlertMemoryUsage])
		assert.Equal(t, SeverityCritical, types[AlertCPUUsage])
		require.NotEmpty(t, data.Recommendations)
		assert.Contains(t, data.Recommendations[0], "Memory usage")
	})

	t.Run("SamplerErrorIsSkipped", func(t *testing.T) {
		d, _ := setupDashboard(t, &fakeSampler{err: errors.New("no procfs")})

		d.CollectSystemMetrics(context.Background())

		data := d.GetDashboardData()
		assert.Nil(t, data.SystemMetrics)
		assert.Empty(t, data.Timeline)
	})

	t.Run("HealthyRecommendation", func(t *testing.T) {
		d, _ := setupDashboard(t, &fakeSampler{sample: SystemMetrics{MemoryUsage: 20, CPUUsage: 5}})
		d.CollectSystemMetrics(context.Background())

		data := d.GetDashboardData()
		assert.Equal(t, []string{"All monitored metrics are within thresholds."}, data.Recommendations)
	})
}

func TestDashboard_StartStop(t *testing.T) {
	sampler := &fakeSampler{sample: SystemMetrics{MemoryUsage: 10}}
	d, _ := setupDashboard(t, sampler)

	d.StartMonitoring(context.Background())
	d.StartMonitoring(context.Background())
	assert.True(t, d.IsMonitoring())

	require.Eventually(t, func() bool { return sampler.Calls() >= 2 }, time.Second, 5*time.Millisecond)

	d.StopMonitoring()
	assert.False(t, d.IsMonitoring())

	calls := sampler.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, sampler.Calls())

	d.StopMonitoring()
}

func TestDashboard_ResetMetrics(t *testing.T) {
	d, _ := setupDashboard(t, &fakeSampler{sample: SystemMetrics{MemoryUsage: 95}})
	d.RecordRequest("/api/v1/users", "GET", 2*time.Second, 200)
	d.CollectSystemMetrics(context.Background())

	d.ResetMetrics()

	data := d.GetDashboardData()
	assert.Empty(t, data.EndpointStats)
	assert.Empty(t, data.RecentAlerts)
	assert.Empty(t, data.Timeline)
	assert.Nil(t, data.SystemMetrics)
}

func TestCollectors(t *testing.T) {
	c := NewCollectors(func() int { return 3 })

	end := c.BeginRequest()
	assert.Equal(t, 1.0, promtestutil.ToFloat64(c.httpInFlight))
	end()
	assert.Equal(t, 0.0, promtestutil.ToFloat64(c.httpInFlight))

	c.ObserveRequest("get", "/api/v1/meetings/:id", 200, 20*time.Millisecond)
	c.ObserveRequest("GET", "/api/v1/meetings/:id", 200, 40*time.Millisecond)
	assert.Equal(t, 2.0, promtestutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/api/v1/meetings/:id", "200")))

	c.ObserveJob("meeting-reminders", 0, true)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(c.jobRuns.WithLabelValues("meeting-reminders", "true")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "mentara_http_requests_total"))
	assert.Contains(t, body, "mentara_realtime_connections 3")
}
