package moderation

import (
	"context"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
)

// ReportRepository persists content reports
type ReportRepository interface {
	Create(ctx context.Context, report *ContentReport) error
	GetByID(ctx context.Context, reportID string) (*ContentReport, error)
	Update(ctx context.Context, report *ContentReport) error
	List(ctx context.Context, query *ReportQuery, page shared.Pagination) ([]*ContentReport, int64, error)
	// ExistsPending reports whether reporterID already has an open report about the content
	ExistsPending(ctx context.Context, reporterID, contentType, contentID string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByReason(ctx context.Context) (map[string]int64, error)
}

// ActionRepository persists moderator actions
type ActionRepository interface {
	Create(ctx context.Context, action *ModerationAction) error
	List(ctx context.Context, query *ActionQuery, page shared.Pagination) ([]*ModerationAction, int64, error)
	Count(ctx context.Context) (int64, error)
}

// ContentScreener screens user generated text
type ContentScreener interface {
	// Screen inspects text written by authorID in the given content. It never blocks delivery.
	Screen(ctx context.Context, authorID, contentType, contentID, text string) ScreeningResult
}

// ModerationService handles reports and moderator actions
type ModerationService interface {
	CreateReport(ctx context.Context, reporterID string, input *CreateReportInput) (*ContentReport, error)
	ListReports(ctx context.Context, query *ReportQuery) (*shared.Page[*ContentReport], error)
	GetReport(ctx context.Context, reportID string) (*ContentReport, error)
	ReviewReport(ctx context.Context, moderatorID, reportID string, input *ReviewInput) (*ContentReport, error)
	SuspendUser(ctx context.Context, moderatorID, userID string, input *SuspendInput) (*ModerationAction, error)
	UnsuspendUser(ctx context.Context, moderatorID, userID, reason string) (*ModerationAction, error)
	ListActions(ctx context.Context, query *ActionQuery) (*shared.Page[*ModerationAction], error)
	GetModerationStats(ctx context.Context) (*Stats, error)
}
