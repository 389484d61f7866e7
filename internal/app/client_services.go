package app

import (
	"context"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// clientService implements the ClientService interface
type clientService struct {
	relationships clients.RelationshipRepository
	assessments   clients.PreAssessmentRepository
	therapists    therapists.TherapistRepository
	users         users.UserRepository
	events        eventPublisher
	now           Clock
	logger        logger.Logger
}

// NewClientService creates a new instance of ClientService
func NewClientService(
	relationshipRepo clients.RelationshipRepository,
	assessmentRepo clients.PreAssessmentRepository,
	therapistRepo therapists.TherapistRepository,
	userRepo users.UserRepository,
	bus events.Publisher,
	logger logger.Logger,
) (clients.ClientService, error) {
	return &clientService{
		relationships: relationshipRepo,
		assessments:   assessmentRepo,
		therapists:    therapistRepo,
		users:         userRepo,
		events:        eventPublisher{bus: bus, logger: logger},
		now:           utcNow,
		logger:        logger,
	}, nil
}

// RequestTherapist opens a pending request to an approved therapist.
// A relationship the therapist removed earlier is re-opened.
func (s *clientService) RequestTherapist(ctx context.Context, clientID, therapistID string) (*clients.ClientTherapist, error) {
	if err := requireID("therapistId", therapistID); err != nil {
		return nil, err
	}
	if clientID == therapistID {
		return nil, apperr.Validation("validation failed: cannot request yourself", nil)
	}

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

	now := s.now()
	rel, err := s.relationships.Get(ctx, clientID, therapistID)
	switch {
	case err == nil && rel.IsPending():
		return nil, apperr.Conflict("Request already pending")
	case err == nil && rel.IsActive():
		return nil, apperr.Conflict("Therapist already assigned")
	case err == nil:
		rel.Reopen(now)
		if err := s.relationships.Update(ctx, rel); err != nil {
			return nil, apperr.PassThrough("failed to request therapist", err)
		}
	case apperr.KindOf(err) == apperr.KindNotFound:
		rel = &clients.ClientTherapist{
			ID:          uuid.NewString(),
			ClientID:    clientID,
			TherapistID: therapistID,
			Status:      clients.RelationshipInactive,
			AssignedAt:  now,
		}
		if err := s.relationships.Create(ctx, rel); err != nil {
			return nil, apperr.PassThrough("failed to request therapist", err)
		}
	default:
		return nil, err
	}

	s.logger.Info("Client ", clientID, " requested therapist ", therapistID)
	s.events.publish(ctx, events.ClientTherapistRequested, rel.ID, relationshipPayload(rel))
	return rel, nil
}

// CancelRequest withdraws a pending request
func (s *clientService) CancelRequest(ctx context.Context, clientID, therapistID string) error {
	rel, err := s.relationships.Get(ctx, clientID, therapistID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.NotFound("Pending request not found")
		}
		return err
	}
	if !rel.IsPending() {
		return apperr.NotFound("Pending request not found")
	}
	if err := s.relationships.Delete(ctx, rel.ID); err != nil {
		return err
	}

	s.logger.Info("Client ", clientID, " cancelled request to ", therapistID)
	payload := relationshipPayload(rel)
	payload["reason"] = "cancelled"
	s.events.publish(ctx, events.ClientTherapistRemoved, rel.ID, payload)
	return nil
}

// ListMyTherapists returns pending and active relationships of the client
func (s *clientService) ListMyTherapists(ctx context.Context, clientID string) ([]*clients.TherapistAssignment, error) {
	relationships, err := s.relationships.List(ctx, &clients.RelationshipQuery{ClientID: clientID})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(relationships))
	for i, rel := range relationships {
		ids[i] = rel.TherapistID
	}
	accounts, err := usersByID(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	assignments := make([]*clients.TherapistAssignment, 0, len(relationships))
	for _, rel := range relationships {
		therapist, ok := accounts[rel.TherapistID]
		if !ok {
			continue
		}
		assignments = append(assignments, &clients.TherapistAssignment{Relationship: rel, Therapist: therapist})
	}
	return assignments, nil
}

func (s *clientService) SubmitPreAssessment(ctx context.Context, clientID string, input *clients.PreAssessmentInput) (*clients.PreAssessment, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: answers are required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	assessment := &clients.PreAssessment{
		ID:             uuid.NewString(),
		ClientID:       clientID,
		Answers:        input.Answers,
		Scores:         input.Scores,
		SeverityLevels: input.SeverityLevels,
		CreatedAt:      s.now(),
	}
	if assessment.Scores == nil {
		assessment.Scores = map[string]float64{}
	}
	if assessment.SeverityLevels == nil {
		assessment.SeverityLevels = map[string]string{}
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to save pre-assessment: %w", err)
	}

	s.logger.Info("Pre-assessment ", assessment.ID, " submitted by ", clientID)
	return assessment, nil
}

func (s *clientService) GetLatestPreAssessment(ctx context.Context, clientID string) (*clients.PreAssessment, error) {
	assessment, err := s.assessments.GetLatest(ctx, clientID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Pre-assessment not found")
		}
		return nil, err
	}
	return assessment, nil
}

// GetWelcomeStatus reports whether the client has not seen therapist recommendations yet
func (s *clientService) GetWelcomeStatus(ctx context.Context, clientID string) (*clients.WelcomeStatus, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &clients.WelcomeStatus{
		NeedsWelcomeFlow: !client.SeenRecommendations,
		MemberSince:      client.CreatedAt,
	}, nil
}

func (s *clientService) MarkRecommendationsSeen(ctx context.Context, clientID string) (*users.User, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.SeenRecommendations {
		return client, nil
	}

	client.SeenRecommendations = true
	client.UpdatedAt = s.now()
	if err := s.users.Update(ctx, client); err != nil {
		return nil, apperr.PassThrough("failed to mark recommendations seen", err)
	}

	s.logger.Info("Client ", clientID, " finished the welcome flow")
	return client, nil
}

func (s *clientService) client(ctx context.Context, clientID string) (*users.User, error) {
	user, err := s.users.GetByID(ctx, clientID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Client not found")
		}
		return nil, err
	}
	if user.Role != users.RoleClient {
		return nil, apperr.NotFound("Client not found")
	}
	return user, nil
}
