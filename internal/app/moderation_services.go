package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/events"
	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// moderationService implements the ModerationService interface
type moderationService struct {
	reports    moderation.ReportRepository
	actions    moderation.ActionRepository
	users      users.UserRepository
	sessions   users.SessionRepository
	messages   messaging.MessagingService
	reviews    reviews.ReviewRepository
	transactor shared.Transactor
	events     eventPublisher
	now        Clock
	logger     logger.Logger
}

// NewModerationService creates a new instance of ModerationService
func NewModerationService(
	reportRepo moderation.ReportRepository,
	actionRepo moderation.ActionRepository,
	userRepo users.UserRepository,
	sessionRepo users.SessionRepository,
	messages messaging.MessagingService,
	reviewRepo reviews.ReviewRepository,
	transactor shared.Transactor,
	bus events.Publisher,
	logger logger.Logger,
) (moderation.ModerationService, error) {
	return &moderationService{
		reports:    reportRepo,
		actions:    actionRepo,
		users:      userRepo,
		sessions:   sessionRepo,
		messages:   messages,
		reviews:    reviewRepo,
		transactor: transactor,
		events:     eventPublisher{bus: bus, logger: logger},
		now:        utcNow,
		logger:     logger,
	}, nil
}

// CreateReport files a pending report. A reporter can hold one open report per content.
func (s *moderationService) CreateReport(ctx context.Context, reporterID string, input *moderation.CreateReportInput) (*moderation.ContentReport, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: report data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.reports.ExistsPending(ctx, reporterID, input.ContentType, input.ContentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reports: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("You have already reported this content")
	}

	now := s.now()
	report := &moderation.ContentReport{
		ID:             uuid.NewString(),
		ReporterID:     reporterID,
		ContentType:    input.ContentType,
		ContentID:      input.ContentID,
		ReportedUserID: input.ReportedUserID,
		Reason:         input.Reason,
		Details:        strings.TrimSpace(input.Details),
		Status:         moderation.ReportPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if report.ReportedUserID == "" {
		switch report.ContentType {
		case moderation.ContentUser:
			report.ReportedUserID = report.ContentID
		case moderation.ContentReview:
			review, err := s.reviews.GetByID(ctx, report.ContentID)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindNotFound {
					return nil, apperr.NotFound("Review not found")
				}
				return nil, err
			}
			report.ReportedUserID = review.ClientID
		}
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperr.PassThrough("failed to create report", err)
	}

	s.logger.Info("Report ", report.ID, " filed by ", reporterID, " for ", report.ContentType, " ", report.ContentID)
	return report, nil
}

func (s *moderationService) ListReports(ctx context.Context, query *moderation.ReportQuery) (*shared.Page[*moderation.ContentReport], error) {
	if query == nil {
		query = &moderation.ReportQuery{}
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	page := shared.NewPagination(query.Page, query.Limit, shared.DefaultLimit)
	list, total, err := s.reports.List(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return shared.NewPage(list, total, page), nil
}

func (s *moderationService) GetReport(ctx context.Context, reportID string) (*moderation.ContentReport, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Report not found")
		}
		return nil, err
	}
	return report, nil
}

// ReviewReport closes an open report with a moderator action
func (s *moderationService) ReviewReport(ctx context.Context, moderatorID, reportID string, input *moderation.ReviewInput) (*moderation.ContentReport, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: review data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsOpen() {
		return nil, apperr.Conflict("Report has already been reviewed")
	}
	if input.Action == moderation.ActionSuspend && report.ReportedUserID == "" {
		return nil, apperr.Validation("validation failed: report has no reported user to suspend", nil)
	}

	now := s.now()
	action := &moderation.ModerationAction{
		ID:           uuid.NewString(),
		ModeratorID:  moderatorID,
		TargetUserID: report.ReportedUserID,
		ReportID:     report.ID,
		Action:       input.Action,
		Reason:       input.Notes,
		DurationDays: input.DurationDays,
		CreatedAt:    now,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		switch input.Action {
		case moderation.ActionRemoveContent:
			if err := s.removeContent(ctx, report, moderatorID, input.Notes, now); err != nil {
				return err
			}
		case moderation.ActionSuspend:
			if err := s.suspend(ctx, report.ReportedUserID, input.Notes, input.DurationDays, now); err != nil {
				return err
			}
		}

		report.Status = input.ResultingStatus()
		report.ReviewedBy = moderatorID
		report.ReviewedAt = &now
		report.ActionTaken = input.Action
		report.ModeratorNotes = input.Notes
		report.UpdatedAt = now
		if err := s.reports.Update(ctx, report); err != nil {
			return err
		}
		return s.actions.Create(ctx, action)
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to review report", err)
	}

	s.logger.Info("Report ", report.ID, " reviewed by ", moderatorID, " with action ", input.Action)
	s.publishAction(ctx, action)
	return report, nil
}

// SuspendUser suspends a user outside of a report and revokes their sessions
func (s *moderationService) SuspendUser(ctx context.Context, moderatorID, userID string, input *moderation.SuspendInput) (*moderation.ModerationAction, error) {
	if input == nil {
		return nil, apperr.Validation("validation failed: suspension data is required", nil)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if moderatorID == userID {
		return nil, apperr.Validation("validation failed: cannot suspend yourself", nil)
	}

	now := s.now()
	action := &moderation.ModerationAction{
		ID:           uuid.NewString(),
		ModeratorID:  moderatorID,
		TargetUserID: userID,
		Action:       moderation.ActionSuspend,
		Reason:       input.Reason,
		DurationDays: input.DurationDays,
		CreatedAt:    now,
	}
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.suspend(ctx, userID, input.Reason, input.DurationDays, now); err != nil {
			return err
		}
		return s.actions.Create(ctx, action)
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to suspend user", err)
	}

	s.logger.Info("User ", userID, " suspended for ", input.DurationDays, " days by ", moderatorID)
	s.publishAction(ctx, action)
	return action, nil
}

func (s *moderationService) UnsuspendUser(ctx context.Context, moderatorID, userID, reason string) (*moderation.ModerationAction, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !user.IsSuspended(now) {
		return nil, apperr.Validation("validation failed: user is not suspended", nil)
	}

	action := &moderation.ModerationAction{
		ID:           uuid.NewString(),
		ModeratorID:  moderatorID,
		TargetUserID: userID,
		Action:       moderation.ActionUnsuspend,
		Reason:       reason,
		CreatedAt:    now,
	}
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user.SuspendedUntil = nil
		user.SuspensionReason = ""
		user.UpdatedAt = now
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		return s.actions.Create(ctx, action)
	})
	if err != nil {
		return nil, apperr.PassThrough("failed to unsuspend user", err)
	}

	s.logger.Info("User ", userID, " unsuspended by ", moderatorID)
	s.publishAction(ctx, action)
	return action, nil
}

func (s *moderationService) ListActions(ctx context.Context, query *moderation.ActionQuery) (*shared.Page[*moderation.ModerationAction], error) {
	if query == nil {
		query = &moderation.ActionQuery{}
	}
	page := shared.NewPagination(query.Page, query.Limit, shared.DefaultLimit)
	list, total, err := s.actions.List(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation actions: %w", err)
	}
	return shared.NewPage(list, total, page), nil
}

// GetModerationStats counts reports by status and reason
func (s *moderationService) GetModerationStats(ctx context.Context) (*moderation.Stats, error) {
	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	byReason, err := s.reports.CountByReason(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	actions, err := s.actions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count moderation actions: %w", err)
	}

	stats := &moderation.Stats{
		ByStatus:     make(map[string]int64, len(moderation.ReportStatuses)),
		ByReason:     make(map[string]int64, len(moderation.Reasons)),
		TotalActions: actions,
	}
	for _, status := range moderation.ReportStatuses {
		stats.ByStatus[status] = byStatus[status]
		stats.TotalReports += byStatus[status]
	}
	for _, reason := range moderation.Reasons {
		stats.ByReason[reason] = byReason[reason]
	}
	return stats, nil
}

// removeContent takes reported content down: a message is blanked and a review is rejected
func (s *moderationService) removeContent(ctx context.Context, report *moderation.ContentReport, moderatorID, notes string, now time.Time) error {
	switch report.ContentType {
	case moderation.ContentMessage:
		return s.messages.RemoveMessageContent(ctx, report.ContentID)
	case moderation.ContentReview:
		review, err := s.reviews.GetByID(ctx, report.ContentID)
		if err != nil {
			return err
		}
		review.Status = reviews.StatusRejected
		review.ModeratedBy = moderatorID
		review.ModerationNote = notes
		review.ModeratedAt = &now
		review.UpdatedAt = now
		return s.reviews.Update(ctx, review)
	}
	return nil
}

func (s *moderationService) suspend(ctx context.Context, userID, reason string, days int, now time.Time) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == users.RoleAdmin {
		return apperr.Forbidden("Administrators cannot be suspended")
	}

	until := now.AddDate(0, 0, days)
	user.SuspendedUntil = &until
	user.SuspensionReason = reason
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if _, err := s.sessions.RevokeUserRefreshTokens(ctx, userID, "", now); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

func (s *moderationService) loadUser(ctx context.Context, userID string) (*users.User, error) {
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *moderationService) publishAction(ctx context.Context, action *moderation.ModerationAction) {
	s.events.publish(ctx, events.ModerationActionTaken, action.ID, map[string]interface{}{
		"action":       action.Action,
		"targetUserId": action.TargetUserID,
		"reportId":     action.ReportID,
		"reason":       action.Reason,
		"durationDays": action.DurationDays,
	})
}

// contentScreener screens user text, raising a critical system event and a self harm report on crisis phrases
type contentScreener struct {
	screener *moderation.Screener
	reports  moderation.ReportRepository
	audit    auditlogs.AuditService
	events   eventPublisher
	now      Clock
	logger   logger.Logger
}

// NewContentScreener creates a new instance of ContentScreener
func NewContentScreener(
	screener *moderation.Screener,
	reportRepo moderation.ReportRepository,
	audit auditlogs.AuditService,
	bus events.Publisher,
	logger logger.Logger,
) (moderation.ContentScreener, error) {
	if screener == nil {
		screener = moderation.NewScreener(nil)
	}
	return &contentScreener{
		screener: screener,
		reports:  reportRepo,
		audit:    audit,
		events:   eventPublisher{bus: bus, logger: logger},
		now:      utcNow,
		logger:   logger,
	}, nil
}

// Screen never fails the caller. Follow-up errors are logged.
func (c *contentScreener) Screen(ctx context.Context, authorID, contentType, contentID, text string) moderation.ScreeningResult {
	result := c.screener.Screen(text)
	if !result.Flagged {
		return result
	}

	c.logger.Warn("Content ", contentType, " ", contentID, " flagged as ", strings.Join(result.Categories, ","))
	c.events.publish(ctx, events.ContentFlagged, contentID, map[string]interface{}{
		"authorId":    authorID,
		"contentType": contentType,
		"categories":  result.Categories,
	})

	if result.IsCrisis() {
		c.raiseCrisis(ctx, authorID, contentType, contentID, result)
	}
	return result
}

func (c *contentScreener) raiseCrisis(ctx context.Context, authorID, contentType, contentID string, result moderation.ScreeningResult) {
	if c.audit != nil {
		_, err := c.audit.CreateSystemEvent(ctx, &auditlogs.SystemEventInput{
			EventType:   auditlogs.EventCrisisContent,
			Severity:    auditlogs.SeverityCritical,
			Title:       "Crisis language detected",
			Description: "A user wrote content matching crisis phrases and may need support",
			Component:   "moderation",
			Metadata: map[string]interface{}{
				"authorId":    authorID,
				"contentType": contentType,
				"contentId":   contentID,
				"matches":     result.Matches[moderation.CategoryCrisis],
			},
		})
		if err != nil {
			c.logger.Error("Failed to raise crisis event for ", contentID, ": ", err)
		}
	}

	if c.reports == nil {
		return
	}
	exists, err := c.reports.ExistsPending(ctx, authorID, contentType, contentID)
	if err != nil || exists {
		return
	}
	now := c.now()
	report := &moderation.ContentReport{
		ID:             uuid.NewString(),
		ReporterID:     authorID,
		ContentType:    contentType,
		ContentID:      contentID,
		ReportedUserID: authorID,
		Reason:         moderation.ReasonSelfHarm,
		Details:        "Automatically flagged: crisis language detected",
		Status:         moderation.ReportPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.reports.Create(ctx, report); err != nil {
		c.logger.Error("Failed to file crisis report for ", contentID, ": ", err)
	}
}
