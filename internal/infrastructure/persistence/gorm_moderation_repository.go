package persistence

import (
	"context"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/moderation"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormReportRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormReportRepository creates a new GORM-based ReportRepository implementation
func NewGormReportRepository(db *gorm.DB, logger logger.Logger) (moderation.ReportRepository, error) {
	return &gormReportRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormReportRepository) Create(ctx context.Context, report *moderation.ContentReport) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContentReportModel{}
	model.FromDomain(report)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create report", err)
	}

	r.logger.Info("Created content report with id ", report.ID)
	return nil
}

func (r *gormReportRepository) GetByID(ctx context.Context, reportID string) (*moderation.ContentReport, error) {
	var model models.ContentReportModel
	if err := conn(ctx, r.db).Where("id = ?", reportID).First(&model).Error; err != nil {
		return nil, readError("report", err)
	}
	return model.ToDomain(), nil
}

func (r *gormReportRepository) Update(ctx context.Context, report *moderation.ContentReport) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContentReportModel{}
	model.FromDomain(report)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update report", err)
	}

	r.logger.Info("Updated content report with id ", report.ID)
	return nil
}

func (r *gormReportRepository) List(ctx context.Context, query *moderation.ReportQuery, page shared.Pagination) ([]*moderation.ContentReport, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.ContentReportModel{})
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.ContentType != "" {
		dbQuery = dbQuery.Where("content_type = ?", query.ContentType)
	}
	if query.Reason != "" {
		dbQuery = dbQuery.Where("reason = ?", query.Reason)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var modelList []*models.ContentReportModel
	if err := paginate(dbQuery.Order("created_at DESC"), page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reports: %w", err)
	}

	domainList := make([]*moderation.ContentReport, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

func (r *gormReportRepository) ExistsPending(ctx context.Context, reporterID, contentType, contentID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ContentReportModel{}).
		Where("reporter_id = ? AND content_type = ? AND content_id = ?", reporterID, contentType, contentID).
		Where("status IN ?", []string{moderation.ReportPending, moderation.ReportUnderReview}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check open reports: %w", err)
	}
	return count > 0, nil
}

func (r *gormReportRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countBy(conn(ctx, r.db).Model(&models.ContentReportModel{}), "status")
}

func (r *gormReportRepository) CountByReason(ctx context.Context) (map[string]int64, error) {
	return countBy(conn(ctx, r.db).Model(&models.ContentReportModel{}), "reason")
}

type gormActionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormActionRepository creates a new GORM-based ActionRepository implementation
func NewGormActionRepository(db *gorm.DB, logger logger.Logger) (moderation.ActionRepository, error) {
	return &gormActionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormActionRepository) Create(ctx context.Context, action *moderation.ModerationAction) error {
	if err := action.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ModerationActionModel{}
	model.FromDomain(action)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create moderation action", err)
	}

	r.logger.Info(fmt.Sprintf("Recorded moderation action %s by %s", action.Action, action.ModeratorID))
	return nil
}

func (r *gormActionRepository) List(ctx context.Context, query *moderation.ActionQuery, page shared.Pagination) ([]*moderation.ModerationAction, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.ModerationActionModel{})
	if query.ModeratorID != "" {
		dbQuery = dbQuery.Where("moderator_id = ?", query.ModeratorID)
	}
	if query.TargetUserID != "" {
		dbQuery = dbQuery.Where("target_user_id = ?", query.TargetUserID)
	}
	if query.Action != "" {
		dbQuery = dbQuery.Where("action = ?", query.Action)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count moderation actions: %w", err)
	}

	var modelList []*models.ModerationActionModel
	if err := paginate(dbQuery.Order("created_at DESC"), page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch moderation actions: %w", err)
	}

	domainList := make([]*moderation.ModerationAction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

func (r *gormActionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.ModerationActionModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count moderation actions: %w", err)
	}
	return count, nil
}
