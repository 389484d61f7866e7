package app

import (
	"context"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
)

// dashboardService implements the DashboardService interface
type dashboardService struct {
	dashboards    dashboards.Repository
	users         users.UserRepository
	therapists    therapists.TherapistRepository
	relationships clients.RelationshipRepository
	assessments   clients.PreAssessmentRepository
	reviews       reviews.ReviewRepository
	now           Clock
	logger        logger.Logger
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(
	dashboardRepo dashboards.Repository,
	userRepo users.UserRepository,
	therapistRepo therapists.TherapistRepository,
	relationshipRepo clients.RelationshipRepository,
	assessmentRepo clients.PreAssessmentRepository,
	reviewRepo reviews.ReviewRepository,
	logger logger.Logger,
) (dashboards.DashboardService, error) {
	return &dashboardService{
		dashboards:    dashboardRepo,
		users:         userRepo,
		therapists:    therapistRepo,
		relationships: relationshipRepo,
		assessments:   assessmentRepo,
		reviews:       reviewRepo,
		now:           utcNow,
		logger:        logger,
	}, nil
}

func (s *dashboardService) GetClientDashboard(ctx context.Context, clientID string) (*dashboards.ClientDashboard, error) {
	client, err := s.account(ctx, clientID, "Client not found")
	if err != nil {
		return nil, err
	}
	now := s.now()
	dashboard := &dashboards.ClientDashboard{Client: client}

	counts := []struct {
		target *int64
		count  func() (int64, error)
	}{
		{&dashboard.Stats.CompletedMeetings, func() (int64, error) {
			return s.dashboards.CountMeetings(ctx, &dashboards.MeetingFilter{ClientID: clientID, Statuses: []string{meetings.StatusCompleted}})
		}},
		{&dashboard.Stats.UpcomingMeetings, func() (int64, error) {
			return s.dashboards.CountMeetings(ctx, &dashboards.MeetingFilter{ClientID: clientID, Statuses: dashboards.UpcomingStatuses, StartsFrom: &now})
		}},
		{&dashboard.Stats.CompletedWorksheets, func() (int64, error) {
			return s.dashboards.CountWorksheets(ctx, &dashboards.WorksheetFilter{ClientID: clientID, Statuses: dashboards.CompletedWorksheetStatuses})
		}},
		{&dashboard.Stats.PendingWorksheets, func() (int64, error) {
			return s.dashboards.CountWorksheets(ctx, &dashboards.WorksheetFilter{ClientID: clientID, Statuses: dashboards.PendingWorksheetStatuses})
		}},
	}
	for _, c := range counts {
		if *c.target, err = c.count(); err != nil {
			return nil, err
		}
	}

	upcoming, err := s.dashboards.ListMeetings(ctx, &dashboards.MeetingFilter{
		ClientID:   clientID,
		Statuses:   dashboards.UpcomingStatuses,
		StartsFrom: &now,
		Limit:      dashboards.ClientListLimit,
	})
	if err != nil {
		return nil, err
	}
	if dashboard.UpcomingMeetings, err = s.withNames(ctx, upcoming); err != nil {
		return nil, err
	}

	dashboard.PendingWorksheets, err = s.dashboards.ListWorksheets(ctx, &dashboards.WorksheetFilter{
		ClientID: clientID,
		Statuses: dashboards.PendingWorksheetStatuses,
		Limit:    dashboards.ClientListLimit,
	})
	if err != nil {
		return nil, err
	}

	active, err := s.relationships.List(ctx, &clients.RelationshipQuery{ClientID: clientID, Status: clients.RelationshipActive})
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	ids := make([]string, len(active))
	for i, r := range active {
		ids[i] = r.TherapistID
	}
	if dashboard.AssignedTherapists, err = s.accounts(ctx, ids); err != nil {
		return nil, err
	}

	if _, err := s.assessments.GetLatest(ctx, clientID); err == nil {
		dashboard.HasPreAssessment = true
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, fmt.Errorf("failed to load pre-assessment: %w", err)
	}
	return dashboard, nil
}

func (s *dashboardService) GetTherapistDashboard(ctx context.Context, therapistID string) (*dashboards.TherapistDashboard, error) {
	therapist, err := s.account(ctx, therapistID, "Therapist not found")
	if err != nil {
		return nil, err
	}
	profile, err := s.therapists.GetByUserID(ctx, therapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Therapist profile not found")
		}
		return nil, err
	}

	now := s.now()
	dayStart, dayEnd := dashboards.DayBounds(now)
	dashboard := &dashboards.TherapistDashboard{Therapist: therapist, Profile: profile}

	active, err := s.relationships.List(ctx, &clients.RelationshipQuery{TherapistID: therapistID, Status: clients.RelationshipActive})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	dashboard.Stats.ActivePatients = int64(len(active))

	counts := []struct {
		target *int64
		filter *dashboards.MeetingFilter
	}{
		{&dashboard.Stats.CompletedMeetings, &dashboards.MeetingFilter{TherapistID: therapistID, Statuses: []string{meetings.StatusCompleted}}},
		{&dashboard.Stats.UpcomingMeetings, &dashboards.MeetingFilter{TherapistID: therapistID, Statuses: dashboards.UpcomingStatuses, StartsFrom: &now}},
		{&dashboard.Stats.CancelledToday, &dashboards.MeetingFilter{
			TherapistID: therapistID,
			Statuses:    []string{meetings.StatusCancelled},
			UpdatedFrom: &dayStart,
			UpdatedTo:   &dayEnd,
		}},
	}
	for _, c := range counts {
		if *c.target, err = s.dashboards.CountMeetings(ctx, c.filter); err != nil {
			return nil, err
		}
	}
	pending := &dashboards.WorksheetFilter{TherapistID: therapistID, Statuses: dashboards.PendingWorksheetStatuses}
	if dashboard.Stats.PendingWorksheets, err = s.dashboards.CountWorksheets(ctx, pending); err != nil {
		return nil, err
	}

	ratings, err := s.reviews.RatingCounts(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	summary := reviews.Summarize(ratings)
	dashboard.Stats.AverageRating = summary.AverageRating
	dashboard.Stats.TotalReviews = summary.TotalReviews

	upcoming, err := s.dashboards.ListMeetings(ctx, &dashboards.MeetingFilter{
		TherapistID: therapistID,
		Statuses:    dashboards.UpcomingStatuses,
		StartsFrom:  &now,
		Limit:       dashboards.TherapistListLimit,
	})
	if err != nil {
		return nil, err
	}
	if dashboard.UpcomingAppointments, err = s.withNames(ctx, upcoming); err != nil {
		return nil, err
	}

	recent, err := s.dashboards.ListMeetings(ctx, &dashboards.MeetingFilter{
		TherapistID: therapistID,
		Statuses:    []string{meetings.StatusCompleted},
		NewestFirst: true,
		Limit:       dashboards.RecentSessionsLimit,
	})
	if err != nil {
		return nil, err
	}
	if dashboard.RecentSessions, err = s.withNames(ctx, recent); err != nil {
		return nil, err
	}

	pending.Limit = dashboards.TherapistListLimit
	if dashboard.PendingWorksheets, err = s.dashboards.ListWorksheets(ctx, pending); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(active))
	for _, r := range active {
		if len(ids) == dashboards.TherapistListLimit {
			break
		}
		ids = append(ids, r.ClientID)
	}
	if dashboard.AssignedClients, err = s.accounts(ctx, ids); err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (s *dashboardService) GetAdminDashboard(ctx context.Context) (*dashboards.AdminDashboard, error) {
	dashboard := &dashboards.AdminDashboard{}

	byRole, err := s.dashboards.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	dashboard.Stats.UsersByRole = byRole
	for _, n := range byRole {
		dashboard.Stats.TotalUsers += n
	}

	if dashboard.Stats.TotalMeetings, err = s.dashboards.CountMeetings(ctx, &dashboards.MeetingFilter{}); err != nil {
		return nil, err
	}
	completed := &dashboards.MeetingFilter{Statuses: []string{meetings.StatusCompleted}}
	if dashboard.Stats.CompletedMeetings, err = s.dashboards.CountMeetings(ctx, completed); err != nil {
		return nil, err
	}

	page := shared.NewPagination(1, dashboards.AdminListLimit, dashboards.AdminListLimit)
	applications, pendingTotal, err := s.therapists.ListApplications(ctx, therapists.StatusPending, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	dashboard.PendingApplications = applications
	dashboard.Stats.PendingTherapists = pendingTotal

	recent, _, err := s.users.List(ctx, &users.UserQuery{Limit: dashboards.AdminListLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	dashboard.RecentUsers = recent
	return dashboard, nil
}

func (s *dashboardService) account(ctx context.Context, userID, missing string) (*users.User, error) {
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound(missing)
		}
		return nil, err
	}
	return user, nil
}

// accounts returns the users with ids in the order of ids, skipping missing ones
func (s *dashboardService) accounts(ctx context.Context, ids []string) ([]*users.User, error) {
	byID, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*users.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (s *dashboardService) withNames(ctx context.Context, list []*meetings.Meeting) ([]*meetings.Details, error) {
	ids := make([]string, 0, 2*len(list))
	for _, m := range list {
		ids = append(ids, m.TherapistID, m.ClientID)
	}
	byID, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*meetings.Details, len(list))
	for i, m := range list {
		result[i] = newDetails(m, byID)
	}
	return result, nil
}
