package therapists

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
)

// RecentMatchWindow separates recent matches from older ones
const RecentMatchWindow = 30 * 24 * time.Hour

// Profile is a therapist profile joined with its account
type Profile struct {
	Therapist         *Therapist
	User              *users.User
	YearsOfExperience *int
}

// Specialties are the areas of expertise shown to clients
func (p *Profile) Specialties() []string {
	if p.Therapist == nil || p.Therapist.AreasOfExpertise == nil {
		return []string{}
	}
	return p.Therapist.AreasOfExpertise
}

// AssignedPatient is an active relationship seen from the therapist side
type AssignedPatient struct {
	RelationshipID string
	Client         *users.User
	AssignedAt     time.Time
}

// PendingRequest is a request awaiting the therapist
type PendingRequest struct {
	RelationshipID string
	Client         *users.User
	RequestedAt    time.Time
}

// ClientDetail is a client account with its latest pre-assessment
type ClientDetail struct {
	Client        *users.User
	PreAssessment *clients.PreAssessment
}

// MatchInfo describes how long ago a client was matched
type MatchInfo struct {
	AssignedAt     time.Time
	DaysSinceMatch int
	Status         string
}

// AssessmentInfo summarises a client's latest pre-assessment
type AssessmentInfo struct {
	HasAssessment       bool
	CompletedAt         *time.Time
	AssessmentType      *string
	DaysSinceAssessment *int
}

// MatchedClient is one relationship in the matched clients view
type MatchedClient struct {
	RelationshipID string
	Client         *users.User
	MatchInfo      MatchInfo
	AssessmentInfo AssessmentInfo
}

// MatchedClientsSummary counts the matched clients view
type MatchedClientsSummary struct {
	TotalRecentMatches int
	TotalAllMatches    int
	TotalMatches       int
}

// MatchedClients splits a therapist's relationships into recent and all matches
type MatchedClients struct {
	RecentMatches []*MatchedClient
	AllMatches    []*MatchedClient
	Summary       MatchedClientsSummary
}

// NewMatchedClient builds a matched client entry. assessment may be nil.
func NewMatchedClient(relationship *clients.ClientTherapist, client *users.User, assessment *clients.PreAssessment, now time.Time) *MatchedClient {
	match := &MatchedClient{
		RelationshipID: relationship.ID,
		Client:         client,
		MatchInfo: MatchInfo{
			AssignedAt:     relationship.AssignedAt,
			DaysSinceMatch: DaysBetween(relationship.AssignedAt, now),
			Status:         relationship.Status,
		},
	}

	if assessment != nil {
		completedAt := assessment.CreatedAt
		assessmentType := clients.PreAssessmentType
		days := DaysBetween(completedAt, now)
		match.AssessmentInfo = AssessmentInfo{
			HasAssessment:       true,
			CompletedAt:         &completedAt,
			AssessmentType:      &assessmentType,
			DaysSinceAssessment: &days,
		}
	}
	return match
}

// IsRecent reports whether the match happened within RecentMatchWindow of now
func (m *MatchedClient) IsRecent(now time.Time) bool {
	return !m.MatchInfo.AssignedAt.Before(now.Add(-RecentMatchWindow))
}

// DaysBetween returns the number of whole days from since to now
func DaysBetween(since, now time.Time) int {
	if now.Before(since) {
		return 0
	}
	return int(now.Sub(since).Hours() / 24)
}

// DirectoryQuery filters the approved therapist directory
type DirectoryQuery struct {
	Province      string
	Expertise     string
	Language      string
	MaxHourlyRate float64 `validate:"gte=0"`
	Page          int
	Limit         int
}
