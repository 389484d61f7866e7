package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// reviewService implements the ReviewService interface
type reviewService struct {
	reviews  reviews.ReviewRepository
	meetings meetings.MeetingRepository
	events   eventPublisher
	now      Clock
	logger   logger.Logger
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(
	reviewRepo reviews.ReviewRepository,
	meetingRepo meetings.MeetingRepository,
	bus events.Publisher,
	logger logger.Logger,
) (reviews.ReviewService, error) {
	return &reviewService{
		reviews:  reviewRepo,
		meetings: meetingRepo,
		events:   eventPublisher{bus: bus, logger: logger},
		now:      utcNow,
		logger:   logger,
	}, nil
}

// Create reviews a completed meeting of the client with the therapist. One review per meeting.
func (s *reviewService) Create(ctx context.Context, clientID string, input *reviews.CreateInput) (*reviews.Review, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: review data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	meeting, err := s.meetings.GetByID(ctx, input.MeetingID)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}
	if err != nil || meeting.ClientID != clientID || meeting.TherapistID != input.TherapistID || meeting.Status != meetings.StatusCompleted {
		return nil, apperr.Validation("validation failed: you can only review therapists after completing a session with them", nil)
	}

	exists, err := s.reviews.ExistsForMeeting(ctx, clientID, input.MeetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reviews: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("You have already reviewed this session")
	}

	now := s.now()
	review := &reviews.Review{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		TherapistID: input.TherapistID,
		MeetingID:   input.MeetingID,
		Rating:      input.Rating,
		Title:       strings.TrimSpace(input.Title),
		Content:     strings.TrimSpace(input.Content),
		IsAnonymous: input.IsAnonymous,
		Status:      reviews.StatusApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperr.PassThrough("failed to create review", err)
	}

	s.logger.Info("Review ", review.ID, " submitted for therapist ", review.TherapistID)
	s.events.publish(ctx, events.ReviewSubmitted, review.ID, reviewPayload(review))
	return review, nil
}

// Update changes the caller's own review
func (s *reviewService) Update(ctx context.Context, clientID, reviewID string, input *reviews.UpdateInput) (*reviews.Review, error) {
	if input == nil || input.IsEmpty() {
		return nil, apperr.Validation("validation failed: no review fields to update", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	review, err := s.ownReview(ctx, clientID, reviewID, "update")
	if err != nil {
		return nil, err
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Title != nil {
		review.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		review.Content = strings.TrimSpace(*input.Content)
	}
	if input.IsAnonymous != nil {
		review.IsAnonymous = *input.IsAnonymous
	}
	review.UpdatedAt = s.now()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, apperr.PassThrough("failed to update review", err)
	}
	return review, nil
}

// Delete removes the caller's own review
func (s *reviewService) Delete(ctx context.Context, clientID, reviewID string) error {
	review, err := s.ownReview(ctx, clientID, reviewID, "delete")
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return apperr.PassThrough("failed to delete review", err)
	}

	s.events.publish(ctx, events.ReviewDeleted, review.ID, reviewPayload(review))
	return nil
}

// List returns a page of reviews. Only moderators, administrators and the author see reviews that are not approved.
func (s *reviewService) List(ctx context.Context, viewerID, viewerRole string, query *reviews.Query) (*reviews.List, error) {
	if query == nil {
		query = &reviews.Query{}
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	staff := isStaff(viewerRole)
	q := *query
	if !staff && (q.ClientID == "" || q.ClientID != viewerID) {
		q.Status = reviews.StatusApproved
	}

	page := shared.NewPagination(q.Page, q.Limit, shared.DefaultLimit)
	list, total, err := s.reviews.List(ctx, &q, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	average, distribution := reviews.SummarizeList(list)
	visible := make([]*reviews.Review, len(list))
	for i, review := range list {
		visible[i] = review
		if !staff && review.ClientID != viewerID {
			visible[i] = review.Redacted()
		}
	}
	return &reviews.List{
		Page:               shared.NewPage(visible, total, page),
		AverageRating:      average,
		RatingDistribution: distribution,
	}, nil
}

// GetStats summarises the approved reviews of a therapist
func (s *reviewService) GetStats(ctx context.Context, therapistID string) (*reviews.Stats, error) {
	if err := requireID("therapistId", therapistID); err != nil {
		return nil, err
	}

	counts, err := s.reviews.RatingCounts(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	stats := reviews.Summarize(counts)

	if stats.TotalHelpfulVotes, err = s.reviews.HelpfulVotes(ctx, therapistID); err != nil {
		return nil, fmt.Errorf("failed to count helpful votes: %w", err)
	}

	recent, err := s.reviews.ListApprovedSince(ctx, therapistID, reviews.StatsSince(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reviews: %w", err)
	}
	stats.Monthly = reviews.MonthlyBreakdown(recent)

	if len(recent) > reviews.StatsRecentLimit {
		recent = recent[:reviews.StatsRecentLimit]
	}
	stats.RecentReviews = make([]*reviews.Review, len(recent))
	for i, review := range recent {
		stats.RecentReviews[i] = review.Redacted()
	}
	return stats, nil
}

// MarkHelpful counts the user's helpful vote once per review
func (s *reviewService) MarkHelpful(ctx context.Context, userID, reviewID string) (*reviews.HelpfulResult, error) {
	review, err := s.get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.IsPublic() {
		return nil, apperr.NotFound("Review not found")
	}
	if review.ClientID == userID {
		return nil, apperr.Validation("validation failed: you cannot mark your own review as helpful", nil)
	}

	counted, count, err := s.reviews.AddHelpfulVote(ctx, &reviews.HelpfulVote{
		ReviewID:  review.ID,
		UserID:    userID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to mark review helpful", err)
	}
	return &reviews.HelpfulResult{ReviewID: review.ID, HelpfulCount: count, Counted: counted}, nil
}

// Moderate sets the review status on a moderator's decision
func (s *reviewService) Moderate(ctx context.Context, moderatorID, reviewID string, input *reviews.ModerateInput) (*reviews.Review, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: moderation data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	review, err := s.get(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	review.Status = input.Status
	review.ModeratedBy = moderatorID
	review.ModerationNote = strings.TrimSpace(input.Note)
	review.ModeratedAt = &now
	review.UpdatedAt = now
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, apperr.PassThrough("failed to moderate review", err)
	}

	s.logger.Info("Review ", review.ID, " moderated by ", moderatorID, " to ", review.Status)
	payload := reviewPayload(review)
	payload["moderatorId"] = moderatorID
	s.events.publish(ctx, events.ReviewModerated, review.ID, payload)
	return review, nil
}

func (s *reviewService) get(ctx context.Context, reviewID string) (*reviews.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Review not found")
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ownReview(ctx context.Context, clientID, reviewID, verb string) (*reviews.Review, error) {
	review, err := s.get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ClientID != clientID {
		return nil, apperr.Forbidden("You can only " + verb + " your own reviews")
	}
	return review, nil
}

func isStaff(role string) bool {
	return role == users.RoleModerator || role == users.RoleAdmin
}

func reviewPayload(r *reviews.Review) map[string]interface{} {
	return map[string]interface{}{
		"therapistId": r.TherapistID,
		"clientId":    r.ClientID,
		"meetingId":   r.MeetingID,
		"rating":      strconv.Itoa(r.Rating),
		"status":      r.Status,
	}
}
