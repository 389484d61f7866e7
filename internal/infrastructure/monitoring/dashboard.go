package monitoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
	"github.com/google/uuid"
)

const (
	// DefaultMaxMetrics is the size of the request ring buffer
	DefaultMaxMetrics = 1000
	// DefaultSampleInterval is how often system metrics are taken
	DefaultSampleInterval = 5 * time.Second

	maxAlerts          = 100
	maxTimeline        = 100
	dashboardAlerts    = 10
	defaultAlertsLimit = 20
	percentileWindow   = 5 * time.Minute
	rateWindow         = time.Minute
	slowEndpointCount  = 3
)

type endpointAggregate struct {
	stats EndpointStats
	// sum of response times so the running mean does not drift
	total float64
}

// Dashboard is the in-process performance monitor
type Dashboard struct {
	mu         sync.RWMutex
	thresholds Thresholds
	metrics    *ring[RequestMetric]
	endpoints  map[string]*endpointAggregate
	alerts     *ring[Alert]
	timeline   *ring[SystemMetrics]
	latest     *SystemMetrics

	sampler  SystemSampler
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	now      func() time.Time
	logger   logger.Logger
}

// NewDashboard creates a Dashboard from the monitoring settings
func NewDashboard(settings *config.MonitoringSettings, sampler SystemSampler, logger logger.Logger) (*Dashboard, error) {
	if sampler == nil {
		return nil, fmt.Errorf("system sampler is required")
	}

	maxMetrics := DefaultMaxMetrics
	interval := DefaultSampleInterval
	if settings != nil {
		if settings.MaxMetrics > 0 {
			maxMetrics = settings.MaxMetrics
		}
		if settings.SampleInterval > 0 {
			interval = settings.SampleInterval
		}
	}

	return &Dashboard{
		thresholds: DefaultThresholds(),
		metrics:    newRing[RequestMetric](maxMetrics),
		endpoints:  make(map[string]*endpointAggregate),
		alerts:     newRing[Alert](maxAlerts),
		timeline:   newRing[SystemMetrics](maxTimeline),
		sampler:    sampler,
		interval:   interval,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// Thresholds returns the limits the dashboard alerts on
func (d *Dashboard) Thresholds() Thresholds {
	return d.thresholds
}

// StartMonitoring begins periodic system sampling
func (d *Dashboard) StartMonitoring(ctx context.Context) {
	d.mu.Lock()
	if d.cancel != nil {
		d.mu.Unlock()
		d.logger.Warn("Monitoring already started")
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	done := d.done
	d.mu.Unlock()

	d.logger.Info("Performance monitoring started, sampling every ", d.interval)
	go d.loop(runCtx, done)
}

// StopMonitoring stops sampling and waits for the loop to exit
func (d *Dashboard) StopMonitoring() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	d.logger.Info("Performance monitoring stopped")
}

// IsMonitoring reports whether the sampling loop is running
func (d *Dashboard) IsMonitoring() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cancel != nil
}

func (d *Dashboard) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.CollectSystemMetrics(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.CollectSystemMetrics(ctx)
		}
	}
}

// CollectSystemMetrics takes one sample and checks it against the thresholds
func (d *Dashboard) CollectSystemMetrics(ctx context.Context) {
	sample, err := d.sampler.Sample(ctx)
	if err != nil {
		d.logger.Warn("Failed to collect system metrics: ", err)
		return
	}
	if sample.Timestamp.IsZero() {
		sample.Timestamp = d.now().UTC()
	}

	d.mu.Lock()
	d.timeline.push(sample)
	latest := sample
	d.latest = &latest
	d.checkLevel(AlertMemoryUsage, "Memory usage", sample.MemoryUsage, d.thresholds.MemoryWarning, d.thresholds.MemoryCritical, "%", "")
	d.checkLevel(AlertCPUUsage, "CPU usage", sample.CPUUsage, d.thresholds.CPUWarning, d.thresholds.CPUCritical, "%", "")
	d.mu.Unlock()
}

// RecordRequest stores one handled request and updates its endpoint stats
func (d *Dashboard) RecordRequest(endpoint, method string, responseTime time.Duration, statusCode int) {
	now := d.now().UTC()
	ms := float64(responseTime) / float64(time.Millisecond)
	metric := RequestMetric{
		Endpoint:       endpoint,
		Method:         method,
		ResponseTimeMs: ms,
		StatusCode:     statusCode,
		Timestamp:      now,
	}
	key := method + " " + endpoint

	d.mu.Lock()
	defer d.mu.Unlock()

	d.metrics.push(metric)

	agg, ok := d.endpoints[key]
	if !ok {
		agg = &endpointAggregate{stats: EndpointStats{Endpoint: key, MinResponseTime: ms, MaxResponseTime: ms}}
		d.endpoints[key] = agg
	}
	s := &agg.stats
	s.TotalRequests++
	if metric.IsError() {
		s.ErrorCount++
	}
	agg.total += ms
	s.AverageResponseTime = round2(agg.total / float64(s.TotalRequests))
	s.MinResponseTime = math.Min(s.MinResponseTime, ms)
	s.MaxResponseTime = math.Max(s.MaxResponseTime, ms)
	s.ErrorRate = round2(float64(s.ErrorCount) / float64(s.TotalRequests) * 100)
	s.LastRequestAt = now

	d.checkLevel(AlertResponseTime, "Response time", ms, d.thresholds.ResponseTimeWarningMs, d.thresholds.ResponseTimeCriticalMs, "ms", key)
	d.checkLevel(AlertErrorRate, "Error rate", s.ErrorRate, d.thresholds.ErrorRateWarning, d.thresholds.ErrorRateCritical, "%", key)
}

// RecordDatabaseLatency checks a database round trip against the thresholds
func (d *Dashboard) RecordDatabaseLatency(latency time.Duration) {
	ms := float64(latency) / float64(time.Millisecond)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.checkLevel(AlertDatabaseLatency, "Database latency", ms, d.thresholds.DatabaseWarningMs, d.thresholds.DatabaseCriticalMs, "ms", "")
}

// checkLevel must be called with mu held
func (d *Dashboard) checkLevel(alertType, label string, value, warning, critical float64, unit, endpoint string) {
	var severity string
	var limit float64
	switch {
	case value > critical:
		severity, limit = SeverityCritical, critical
	case value > warning:
		severity, limit = SeverityHigh, warning
	default:
		return
	}

	message := fmt.Sprintf("%s %.2f%s exceeds %.0f%s", label, value, unit, limit, unit)
	if endpoint != "" {
		message += " on " + endpoint
	}
	alert := Alert{
		ID:        uuid.NewString(),
		Type:      alertType,
		Severity:  severity,
		Message:   message,
		Value:     round2(value),
		Threshold: limit,
		Endpoint:  endpoint,
		Timestamp: d.now().UTC(),
	}
	d.alerts.push(alert)

	if severity == SeverityCritical {
		d.logger.Error("Performance alert [", severity, "] ", message)
	} else {
		d.logger.Warn("Performance alert [", severity, "] ", message)
	}
}

// GetEndpointStats returns a snapshot of every endpoint, slowest first
func (d *Dashboard) GetEndpointStats() []*EndpointStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.endpointStatsLocked()
}

func (d *Dashboard) endpointStatsLocked() []*EndpointStats {
	now := d.now().UTC()
	windowed := make(map[string][]float64)
	perMinute := make(map[string]int)
	for _, m := range d.metrics.values() {
		key := m.Method + " " + m.Endpoint
		age := now.Sub(m.Timestamp)
		if age <= percentileWindow {
			windowed[key] = append(windowed[key], m.ResponseTimeMs)
		}
		if age <= rateWindow {
			perMinute[key]++
		}
	}

	out := make([]*EndpointStats, 0, len(d.endpoints))
	for key, agg := range d.endpoints {
		s := agg.stats
		samples := windowed[key]
		sort.Float64s(samples)
		s.P95ResponseTime = percentile(samples, 95)
		s.P99ResponseTime = percentile(samples, 99)
		s.RequestsPerMinute = perMinute[key]
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageResponseTime == out[j].AverageResponseTime {
			return out[i].Endpoint < out[j].Endpoint
		}
		return out[i].AverageResponseTime > out[j].AverageResponseTime
	})
	return out
}

// GetRecentAlerts returns the newest alerts first; limit <= 0 means 20
func (d *Dashboard) GetRecentAlerts(limit int) []Alert {
	if limit <= 0 {
		limit = defaultAlertsLimit
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return newestFirst(d.alerts.last(limit))
}

// GetDashboardData assembles the admin performance view
func (d *Dashboard) GetDashboardData() *DashboardData {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var system *SystemMetrics
	if d.latest != nil {
		snapshot := *d.latest
		system = &snapshot
	}
	endpoints := d.endpointStatsLocked()

	return &DashboardData{
		SystemMetrics:   system,
		EndpointStats:   endpoints,
		RecentAlerts:    newestFirst(d.alerts.last(dashboardAlerts)),
		Timeline:        d.timeline.last(maxTimeline),
		Recommendations: d.recommendations(system, endpoints),
		IsMonitoring:    d.cancel != nil,
		GeneratedAt:     d.now().UTC(),
	}
}

// ResetMetrics clears requests, endpoint stats, alerts and the timeline
func (d *Dashboard) ResetMetrics() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.metrics.reset()
	d.alerts.reset()
	d.timeline.reset()
	d.endpoints = make(map[string]*endpointAggregate)
	d.latest = nil
	d.logger.Info("Performance metrics reset")
}

func (d *Dashboard) recommendations(system *SystemMetrics, endpoints []*EndpointStats) []string {
	var out []string
	t := d.thresholds

	if system != nil {
		if system.MemoryUsage > t.MemoryWarning {
			out = append(out, fmt.Sprintf("Memory usage is %.1f%%. Review caching and large result sets or scale the instance.", system.MemoryUsage))
		}
		if system.CPUUsage > t.CPUWarning {
			out = append(out, fmt.Sprintf("CPU usage is %.1f%%. Profile hot endpoints or add capacity.", system.CPUUsage))
		}
	}

	slow := 0
	for _, s := range endpoints {
		if s.AverageResponseTime > t.ResponseTimeWarningMs && slow < slowEndpointCount {
			out = append(out, fmt.Sprintf("%s averages %.0fms. Check its queries and add indexes or pagination.", s.Endpoint, s.AverageResponseTime))
			slow++
		}
	}
	for _, s := range endpoints {
		if s.ErrorRate > t.ErrorRateWarning {
			out = append(out, fmt.Sprintf("%s fails %.1f%% of requests. Inspect its error logs.", s.Endpoint, s.ErrorRate))
		}
	}

	if len(out) == 0 {
		out = append(out, "All monitored metrics are within thresholds.")
	}
	return out
}

// percentile expects sorted input
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return round2(sorted[idx])
}

func newestFirst(alerts []Alert) []Alert {
	for i, j := 0, len(alerts)-1; i < j; i, j = i+1, j-1 {
		alerts[i], alerts[j] = alerts[j], alerts[i]
	}
	return alerts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
