package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// therapistManagementService implements the ManagementService interface for the therapist role
type therapistManagementService struct {
	therapists    therapists.TherapistRepository
	users         users.UserRepository
	relationships clients.RelationshipRepository
	assessments   clients.PreAssessmentRepository
	events        eventPublisher
	now           Clock
	logger        logger.Logger
}

// NewTherapistManagementService creates a new instance of ManagementService
func NewTherapistManagementService(
	therapistRepo therapists.TherapistRepository,
	userRepo users.UserRepository,
	relationshipRepo clients.RelationshipRepository,
	assessmentRepo clients.PreAssessmentRepository,
	bus events.Publisher,
	logger logger.Logger,
) (therapists.ManagementService, error) {
	return &therapistManagementService{
		therapists:    therapistRepo,
		users:         userRepo,
		relationships: relationshipRepo,
		assessments:   assessmentRepo,
		events:        eventPublisher{bus: bus, logger: logger},
		now:           utcNow,
		logger:        logger,
	}, nil
}

func (s *therapistManagementService) GetTherapistProfile(ctx context.Context, therapistID string) (*therapists.Profile, error) {
	therapist, err := s.loadTherapist(ctx, therapistID, "Therapist profile not found")
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	return newProfile(therapist, user, s.now()), nil
}

// UpdateTherapistProfile applies a partial update to the caller's profile
func (s *therapistManagementService) UpdateTherapistProfile(ctx context.Context, therapistID string, update *therapists.ProfileUpdate) (*therapists.Profile, error) {
	if update == nil {
		return nil, apperr.Validation("validation failed: profile data is required", nil)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	therapist, err := s.loadTherapist(ctx, therapistID, "Therapist profile not found")
	if err != nil {
		return nil, err
	}
	update.Apply(therapist)
	therapist.UpdatedAt = s.now()
	if err := s.therapists.Update(ctx, therapist); err != nil {
		return nil, apperr.PassThrough("failed to update therapist profile", err)
	}

	s.events.publish(ctx, events.TherapistProfileUpdated, therapistID, nil)
	return s.GetTherapistProfile(ctx, therapistID)
}

// GetAssignedPatients lists the clients of active relationships
func (s *therapistManagementService) GetAssignedPatients(ctx context.Context, therapistID string) ([]*therapists.AssignedPatient, error) {
	relationships, err := s.relationships.List(ctx, &clients.RelationshipQuery{
		TherapistID: therapistID,
		Status:      clients.RelationshipActive,
	})
	if err != nil {
		return nil, err
	}
	clientsByID, err := s.clientsOf(ctx, relationships)
	if err != nil {
		return nil, err
	}

	patients := make([]*therapists.AssignedPatient, 0, len(relationships))
	for _, rel := range relationships {
		client, ok := clientsByID[rel.ClientID]
		if !ok {
			continue
		}
		patients = append(patients, &therapists.AssignedPatient{
			RelationshipID: rel.ID,
			Client:         client,
			AssignedAt:     rel.AssignedAt,
		})
	}
	return patients, nil
}

// GetPendingRequests lists open requests, newest first
func (s *therapistManagementService) GetPendingRequests(ctx context.Context, therapistID string) ([]*therapists.PendingRequest, error) {
	relationships, err := s.relationships.List(ctx, &clients.RelationshipQuery{
		TherapistID: therapistID,
		Status:      clients.RelationshipInactive,
	})
	if err != nil {
		return nil, err
	}
	clientsByID, err := s.clientsOf(ctx, relationships)
	if err != nil {
		return nil, err
	}

	requests := make([]*therapists.PendingRequest, 0, len(relationships))
	for _, rel := range relationships {
		client, ok := clientsByID[rel.ClientID]
		if !ok || !rel.IsPending() {
			continue
		}
		requests = append(requests, &therapists.PendingRequest{
			RelationshipID: rel.ID,
			Client:         client,
			RequestedAt:    rel.AssignedAt,
		})
	}
	return requests, nil
}

func (s *therapistManagementService) AcceptPatientRequest(ctx context.Context, therapistID, clientID string) (*clients.ClientTherapist, error) {
	rel, err := s.pendingRequest(ctx, therapistID, clientID)
	if err != nil {
		return nil, err
	}
	rel.Accept()
	if err := s.relationships.Update(ctx, rel); err != nil {
		return nil, apperr.PassThrough("failed to accept request", err)
	}

	s.logger.Info("Therapist ", therapistID, " accepted client ", clientID)
	s.events.publish(ctx, events.ClientTherapistAccepted, rel.ID, relationshipPayload(rel))
	return rel, nil
}

func (s *therapistManagementService) DenyPatientRequest(ctx context.Context, therapistID, clientID string) error {
	rel, err := s.pendingRequest(ctx, therapistID, clientID)
	if err != nil {
		return err
	}
	if err := s.relationships.Delete(ctx, rel.ID); err != nil {
		return err
	}

	s.logger.Info("Therapist ", therapistID, " denied client ", clientID)
	s.events.publish(ctx, events.ClientTherapistDenied, rel.ID, relationshipPayload(rel))
	return nil
}

func (s *therapistManagementService) RemovePatient(ctx context.Context, therapistID, clientID string) error {
	rel, err := s.relationships.Get(ctx, clientID, therapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.NotFound("Active patient relationship not found")
		}
		return err
	}
	if !rel.IsActive() {
		return apperr.NotFound("Active patient relationship not found")
	}

	rel.Remove(s.now())
	if err := s.relationships.Update(ctx, rel); err != nil {
		return apperr.PassThrough("failed to remove patient", err)
	}

	s.logger.Info("Therapist ", therapistID, " removed client ", clientID)
	s.events.publish(ctx, events.ClientTherapistRemoved, rel.ID, relationshipPayload(rel))
	return nil
}

// GetAllClients pages through every client account
func (s *therapistManagementService) GetAllClients(ctx context.Context, page shared.Pagination) (*shared.Page[*users.User], error) {
	page = shared.NewPagination(page.Page, page.Limit, shared.DefaultLimit)
	list, total, err := s.users.List(ctx, &users.UserQuery{
		Role:   users.RoleClient,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return shared.NewPage(list, total, page), nil
}

func (s *therapistManagementService) GetClientByID(ctx context.Context, clientID string) (*therapists.ClientDetail, error) {
	client, err := s.users.GetByID(ctx, clientID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Client not found")
		}
		return nil, err
	}
	if client.Role != users.RoleClient {
		return nil, apperr.NotFound("Client not found")
	}

	assessment, err := s.assessments.GetLatest(ctx, clientID)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindNotFound {
			return nil, err
		}
		assessment = nil
	}
	return &therapists.ClientDetail{Client: client, PreAssessment: assessment}, nil
}

// GetMatchedClients splits active and pending relationships into recent and all matches
func (s *therapistManagementService) GetMatchedClients(ctx context.Context, therapistID string) (*therapists.MatchedClients, error) {
	if _, err := s.loadTherapist(ctx, therapistID, "Therapist not found"); err != nil {
		return nil, err
	}

	relationships, err := s.relationships.List(ctx, &clients.RelationshipQuery{TherapistID: therapistID})
	if err != nil {
		return nil, err
	}
	clientsByID, err := s.clientsOf(ctx, relationships)
	if err != nil {
		return nil, err
	}

	clientIDs := make([]string, 0, len(clientsByID))
	for id := range clientsByID {
		clientIDs = append(clientIDs, id)
	}
	assessments, err := s.assessments.GetLatestForClients(ctx, clientIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &therapists.MatchedClients{
		RecentMatches: []*therapists.MatchedClient{},
		AllMatches:    []*therapists.MatchedClient{},
	}
	for _, rel := range relationships {
		client, ok := clientsByID[rel.ClientID]
		if !ok {
			continue
		}
		match := therapists.NewMatchedClient(rel, client, assessments[rel.ClientID], now)
		result.AllMatches = append(result.AllMatches, match)
		if match.IsRecent(now) {
			result.RecentMatches = append(result.RecentMatches, match)
		}
	}
	result.Summary = therapists.MatchedClientsSummary{
		TotalRecentMatches: len(result.RecentMatches),
		TotalAllMatches:    len(result.AllMatches),
		TotalMatches:       len(result.AllMatches),
	}
	return result, nil
}

func (s *therapistManagementService) loadTherapist(ctx context.Context, therapistID, notFound string) (*therapists.Therapist, error) {
	therapist, err := s.therapists.GetByUserID(ctx, therapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound(notFound)
		}
		return nil, err
	}
	return therapist, nil
}

func (s *therapistManagementService) pendingRequest(ctx context.Context, therapistID, clientID string) (*clients.ClientTherapist, error) {
	rel, err := s.relationships.Get(ctx, clientID, therapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Patient request not found")
		}
		return nil, err
	}
	if !rel.IsPending() {
		return nil, apperr.NotFound("Patient request not found")
	}
	return rel, nil
}

func (s *therapistManagementService) clientsOf(ctx context.Context, relationships []*clients.ClientTherapist) (map[string]*users.User, error) {
	ids := make([]string, 0, len(relationships))
	for _, rel := range relationships {
		ids = append(ids, rel.ClientID)
	}
	return usersByID(ctx, s.users, ids)
}

// therapistDirectoryService implements the DirectoryService interface
type therapistDirectoryService struct {
	therapists therapists.TherapistRepository
	users      users.UserRepository
	now        Clock
	logger     logger.Logger
}

// NewTherapistDirectoryService creates a new instance of DirectoryService
func NewTherapistDirectoryService(
	therapistRepo therapists.TherapistRepository,
	userRepo users.UserRepository,
	logger logger.Logger,
) (therapists.DirectoryService, error) {
	return &therapistDirectoryService{
		therapists: therapistRepo,
		users:      userRepo,
		now:        utcNow,
		logger:     logger,
	}, nil
}

// ListApprovedTherapists pages through approved therapists with active accounts
func (s *therapistDirectoryService) ListApprovedTherapists(ctx context.Context, query *therapists.DirectoryQuery) (*shared.Page[*therapists.Profile], error) {
	if query == nil {
		query = &therapists.DirectoryQuery{}
	}
	if err := validators.ValidateStruct(query); err != nil {
		return nil, err
	}

	page := shared.NewPagination(query.Page, query.Limit, shared.DefaultLimit)
	list, total, err := s.therapists.ListApproved(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}

	ids := make([]string, len(list))
	for i, t := range list {
		ids[i] = t.UserID
	}
	accounts, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profiles := make([]*therapists.Profile, 0, len(list))
	for _, t := range list {
		user, ok := accounts[t.UserID]
		if !ok || !user.IsActive {
			continue
		}
		profiles = append(profiles, newProfile(t, user, now))
	}
	return shared.NewPage(profiles, total, page), nil
}

// GetTherapistPublicProfile returns an approved therapist's profile
func (s *therapistDirectoryService) GetTherapistPublicProfile(ctx context.Context, therapistID string) (*therapists.Profile, error) {
	therapist, err := s.therapists.GetByUserID(ctx, therapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Therapist not found")
		}
		return nil, err
	}
	if !therapist.IsApproved() {
		return nil, apperr.NotFound("Therapist not found")
	}

	user, err := s.users.GetByID(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.NotFound("Therapist not found")
	}
	return newProfile(therapist, user, s.now()), nil
}

func newProfile(therapist *therapists.Therapist, user *users.User, now time.Time) *therapists.Profile {
	if therapist.TreatmentSuccessRates == nil {
		therapist.TreatmentSuccessRates = map[string]float64{}
	}
	return &therapists.Profile{
		Therapist:         therapist,
		User:              user,
		YearsOfExperience: therapist.YearsOfExperience(now),
	}
}

func relationshipPayload(rel *clients.ClientTherapist) map[string]interface{} {
	return map[string]interface{}{
		"clientId":    rel.ClientID,
		"therapistId": rel.TherapistID,
		"status":      rel.Status,
	}
}

// usersByID loads accounts keyed by ID, skipping duplicates and blanks
func usersByID(ctx context.Context, repo users.UserRepository, ids []string) (map[string]*users.User, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	result := make(map[string]*users.User, len(unique))
	if len(unique) == 0 {
		return result, nil
	}

	list, err := repo.ListByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range list {
		result[u.ID] = u
	}
	return result, nil
}
