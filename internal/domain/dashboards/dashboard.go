package dashboards

import (
	"context"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
)

// List sizes
const (
	ClientListLimit     = 5
	TherapistListLimit  = 10
	RecentSessionsLimit = 5
	AdminListLimit      = 10
)

// UpcomingStatuses are the meeting statuses shown as upcoming
var UpcomingStatuses = []string{meetings.StatusScheduled, meetings.StatusConfirmed}

// PendingWorksheetStatuses are the worksheet statuses still waiting on the client
var PendingWorksheetStatuses = []string{worksheets.StatusAssigned, worksheets.StatusOverdue}

// CompletedWorksheetStatuses are the worksheet statuses the client has handed in
var CompletedWorksheetStatuses = []string{worksheets.StatusSubmitted, worksheets.StatusReviewed}

// MeetingFilter selects meetings. Empty fields do not filter.
type MeetingFilter struct {
	TherapistID string
	ClientID    string
	Statuses    []string
	StartsFrom  *time.Time
	UpdatedFrom *time.Time
	UpdatedTo   *time.Time
	// NewestFirst orders by start time descending instead of ascending
	NewestFirst bool
	Limit       int
}

// WorksheetFilter selects worksheets ordered by due date, undated last
type WorksheetFilter struct {
	TherapistID string
	ClientID    string
	Statuses    []string
	Limit       int
}

// Repository runs the read queries behind the dashboards
type Repository interface {
	CountMeetings(ctx context.Context, filter *MeetingFilter) (int64, error)
	ListMeetings(ctx context.Context, filter *MeetingFilter) ([]*meetings.Meeting, error)
	CountWorksheets(ctx context.Context, filter *WorksheetFilter) (int64, error)
	ListWorksheets(ctx context.Context, filter *WorksheetFilter) ([]*worksheets.Worksheet, error)
	CountUsersByRole(ctx context.Context) (map[string]int64, error)
}

// ClientStats counts a client's activity
type ClientStats struct {
	CompletedMeetings   int64 `json:"completedMeetings"`
	CompletedWorksheets int64 `json:"completedWorksheets"`
	UpcomingMeetings    int64 `json:"upcomingMeetings"`
	PendingWorksheets   int64 `json:"pendingWorksheets"`
}

// ClientDashboard is the landing page of a client
type ClientDashboard struct {
	Client             *users.User
	Stats              ClientStats
	UpcomingMeetings   []*meetings.Details
	PendingWorksheets  []*worksheets.Worksheet
	AssignedTherapists []*users.User
	HasPreAssessment   bool
}

// TherapistStats counts a therapist's caseload. The *Today counts cover the current UTC day.
type TherapistStats struct {
	ActivePatients    int64   `json:"activePatients"`
	CompletedMeetings int64   `json:"completedMeetings"`
	UpcomingMeetings  int64   `json:"upcomingMeetings"`
	PendingWorksheets int64   `json:"pendingWorksheets"`
	CancelledToday    int64   `json:"cancelledToday"`
	AverageRating     float64 `json:"averageRating"`
	TotalReviews      int64   `json:"totalReviews"`
}

// TherapistDashboard is the landing page of a therapist
type TherapistDashboard struct {
	Therapist            *users.User
	Profile              *therapists.Therapist
	Stats                TherapistStats
	UpcomingAppointments []*meetings.Details
	PendingWorksheets    []*worksheets.Worksheet
	AssignedClients      []*users.User
	RecentSessions       []*meetings.Details
}

// PlatformStats counts platform wide records
type PlatformStats struct {
	TotalUsers        int64            `json:"totalUsers"`
	UsersByRole       map[string]int64 `json:"usersByRole"`
	PendingTherapists int64            `json:"pendingTherapists"`
	TotalMeetings     int64            `json:"totalMeetings"`
	CompletedMeetings int64            `json:"completedMeetings"`
}

// AdminDashboard is the landing page of an administrator
type AdminDashboard struct {
	Stats               PlatformStats
	RecentUsers         []*users.User
	PendingApplications []*therapists.Therapist
}

// DashboardService builds the per-role dashboards
type DashboardService interface {
	GetClientDashboard(ctx context.Context, clientID string) (*ClientDashboard, error)
	GetTherapistDashboard(ctx context.Context, therapistID string) (*TherapistDashboard, error)
	GetAdminDashboard(ctx context.Context) (*AdminDashboard, error)
}

// DayBounds returns the start and end of the UTC day containing now
func DayBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
