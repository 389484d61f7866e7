package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// worksheetService implements the WorksheetService interface
type worksheetService struct {
	worksheets    worksheets.WorksheetRepository
	relationships clients.RelationshipRepository
	events        eventPublisher
	now           Clock
	logger        logger.Logger
}

// NewWorksheetService creates a new instance of WorksheetService
func NewWorksheetService(
	worksheetRepo worksheets.WorksheetRepository,
	relationshipRepo clients.RelationshipRepository,
	bus events.Publisher,
	logger logger.Logger,
) (worksheets.WorksheetService, error) {
	return &worksheetService{
		worksheets:    worksheetRepo,
		relationships: relationshipRepo,
		events:        eventPublisher{bus: bus, logger: logger},
		now:           utcNow,
		logger:        logger,
	}, nil
}

// Assign gives a worksheet to an actively assigned client
func (s *worksheetService) Assign(ctx context.Context, therapistID string, input *worksheets.AssignInput) (*worksheets.Worksheet, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: worksheet data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	rel, err := s.relationships.Get(ctx, input.ClientID, therapistID)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}
	if err != nil || !rel.IsActive() {
		return nil, apperr.Forbidden("Client is not assigned to you")
	}

	now := s.now()
	if input.DueDate != nil && !input.DueDate.After(now) {
		return nil, apperr.Validation("validation failed: due date must be in the future", nil)
	}
	worksheet := &worksheets.Worksheet{
		ID:           uuid.NewString(),
		TherapistID:  therapistID,
		ClientID:     input.ClientID,
		Title:        strings.TrimSpace(input.Title),
		Instructions: input.Instructions,
		DueDate:      input.DueDate,
		Status:       worksheets.StatusAssigned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.worksheets.Create(ctx, worksheet); err != nil {
		return nil, apperr.PassThrough("failed to assign worksheet", err)
	}

	s.logger.Info("Worksheet ", worksheet.ID, " assigned to ", worksheet.ClientID)
	s.events.publish(ctx, events.WorksheetAssigned, worksheet.ID, worksheetPayload(worksheet))
	return worksheet, nil
}

func (s *worksheetService) ListForClient(ctx context.Context, clientID string, query *worksheets.Query) (*shared.Page[*worksheets.Worksheet], error) {
	return s.list(query, func(query *worksheets.Query, page shared.Pagination) ([]*worksheets.Worksheet, int64, error) {
		return s.worksheets.ListForClient(ctx, clientID, query, page)
	})
}

func (s *worksheetService) ListForTherapist(ctx context.Context, therapistID string, query *worksheets.Query) (*shared.Page[*worksheets.Worksheet], error) {
	return s.list(query, func(query *worksheets.Query, page shared.Pagination) ([]*worksheets.Worksheet, int64, error) {
		return s.worksheets.ListForTherapist(ctx, therapistID, query, page)
	})
}

func (s *worksheetService) Get(ctx context.Context, userID, worksheetID string) (*worksheets.Worksheet, error) {
	worksheet, err := s.worksheets.GetByID(ctx, worksheetID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Worksheet not found")
		}
		return nil, err
	}
	if !worksheet.IsParticipant(userID) {
		return nil, apperr.Forbidden("You do not have access to this worksheet")
	}
	return worksheet, nil
}

// Submit hands in an assigned or overdue worksheet
func (s *worksheetService) Submit(ctx context.Context, clientID, worksheetID string, input *worksheets.SubmitInput) (*worksheets.Worksheet, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: submission content is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	worksheet, err := s.Get(ctx, clientID, worksheetID)
	if err != nil {
		return nil, err
	}
	if worksheet.ClientID != clientID {
		return nil, apperr.Forbidden("Only the assigned client can submit this worksheet")
	}
	if !worksheet.CanSubmit() {
		return nil, apperr.Validation("validation failed: worksheet has already been submitted", nil)
	}

	now := s.now()
	worksheet.Status = worksheets.StatusSubmitted
	worksheet.SubmissionContent = input.Content
	worksheet.SubmittedAt = &now
	worksheet.UpdatedAt = now
	if err := s.worksheets.Update(ctx, worksheet); err != nil {
		return nil, apperr.PassThrough("failed to submit worksheet", err)
	}

	s.events.publish(ctx, events.WorksheetSubmitted, worksheet.ID, worksheetPayload(worksheet))
	return worksheet, nil
}

// Review records the therapist's feedback on a submitted worksheet
func (s *worksheetService) Review(ctx context.Context, therapistID, worksheetID string, input *worksheets.ReviewInput) (*worksheets.Worksheet, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: feedback is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	worksheet, err := s.Get(ctx, therapistID, worksheetID)
	if err != nil {
		return nil, err
	}
	if worksheet.TherapistID != therapistID {
		return nil, apperr.Forbidden("Only the assigning therapist can review this worksheet")
	}
	if worksheet.Status != worksheets.StatusSubmitted {
		return nil, apperr.Validation("validation failed: only submitted worksheets can be reviewed", nil)
	}

	now := s.now()
	worksheet.Status = worksheets.StatusReviewed
	worksheet.Feedback = input.Feedback
	worksheet.ReviewedAt = &now
	worksheet.UpdatedAt = now
	if err := s.worksheets.Update(ctx, worksheet); err != nil {
		return nil, apperr.PassThrough("failed to review worksheet", err)
	}

	s.events.publish(ctx, events.WorksheetReviewed, worksheet.ID, worksheetPayload(worksheet))
	return worksheet, nil
}

// MarkOverdue flags assigned worksheets whose due date has passed
func (s *worksheetService) MarkOverdue(ctx context.Context) (int, error) {
	overdue, err := s.worksheets.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue worksheets: %w", err)
	}
	if len(overdue) > 0 {
		s.logger.Info("Marked ", len(overdue), " worksheets overdue")
	}
	return len(overdue), nil
}

func (s *worksheetService) list(query *worksheets.Query, find func(*worksheets.Query, shared.Pagination) ([]*worksheets.Worksheet, int64, error)) (*shared.Page[*worksheets.Worksheet], error) {
	if query == nil {
		query = &worksheets.Query{}
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	page := shared.NewPagination(query.Page, query.Limit, shared.DefaultLimit)
	list, total, err := find(query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list worksheets: %w", err)
	}
	return shared.NewPage(list, total, page), nil
}

func worksheetPayload(w *worksheets.Worksheet) map[string]interface{} {
	return map[string]interface{}{
		"therapistId": w.TherapistID,
		"clientId":    w.ClientID,
		"title":       w.Title,
		"status":      w.Status,
	}
}
