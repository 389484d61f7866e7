package monitoring

import "time"

// Thresholds are the warning and critical limits of the dashboard
type Thresholds struct {
	ResponseTimeWarningMs  float64
	ResponseTimeCriticalMs float64
	ErrorRateWarning       float64
	ErrorRateCritical      float64
	MemoryWarning          float64
	MemoryCritical         float64
	CPUWarning             float64
	CPUCritical            float64
	DatabaseWarningMs      float64
	DatabaseCriticalMs     float64
}

// DefaultThresholds returns the platform's alerting limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		ResponseTimeWarningMs:  1000,
		ResponseTimeCriticalMs: 5000,
		ErrorRateWarning:       5,
		ErrorRateCritical:      10,
		MemoryWarning:          80,
		MemoryCritical:         90,
		CPUWarning:             80,
		CPUCritical:            90,
		DatabaseWarningMs:      500,
		DatabaseCriticalMs:     2000,
	}
}

// Alert types
const (
	AlertResponseTime    = "RESPONSE_TIME"
	AlertErrorRate       = "ERROR_RATE"
	AlertMemoryUsage     = "MEMORY_USAGE"
	AlertCPUUsage        = "CPU_USAGE"
	AlertDatabaseLatency = "DATABASE_LATENCY"
)

// Alert severities
const (
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// RequestMetric is one handled HTTP request
type RequestMetric struct {
	Endpoint       string    `json:"endpoint"`
	Method         string    `json:"method"`
	ResponseTimeMs float64   `json:"responseTime"`
	StatusCode     int       `json:"statusCode"`
	Timestamp      time.Time `json:"timestamp"`
}

// IsError reports whether the request failed
func (m RequestMetric) IsError() bool {
	return m.StatusCode >= 400
}

// EndpointStats aggregates the requests of one "METHOD path" key
type EndpointStats struct {
	Endpoint            string    `json:"endpoint"`
	TotalRequests       int64     `json:"totalRequests"`
	ErrorCount          int64     `json:"errorCount"`
	AverageResponseTime float64   `json:"averageResponseTime"`
	MinResponseTime     float64   `json:"minResponseTime"`
	MaxResponseTime     float64   `json:"maxResponseTime"`
	ErrorRate           float64   `json:"errorRate"`
	P95ResponseTime     float64   `json:"p95ResponseTime"`
	P99ResponseTime     float64   `json:"p99ResponseTime"`
	RequestsPerMinute   int       `json:"requestsPerMinute"`
	LastRequestAt       time.Time `json:"lastRequestAt"`
}

// Alert is a threshold breach
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Endpoint  string    `json:"endpoint,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SystemMetrics is one sample of the host and runtime
type SystemMetrics struct {
	MemoryUsage float64   `json:"memoryUsage"`
	CPUUsage    float64   `json:"cpuUsage"`
	Goroutines  int       `json:"goroutines"`
	HeapMB      float64   `json:"heapMB"`
	Timestamp   time.Time `json:"timestamp"`
}

// DashboardData is everything the admin performance page shows
type DashboardData struct {
	SystemMetrics   *SystemMetrics   `json:"systemMetrics"`
	EndpointStats   []*EndpointStats `json:"endpointStats"`
	RecentAlerts    []Alert          `json:"recentAlerts"`
	Timeline        []SystemMetrics  `json:"timeline"`
	Recommendations []string         `json:"recommendations"`
	IsMonitoring    bool             `json:"isMonitoring"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}
