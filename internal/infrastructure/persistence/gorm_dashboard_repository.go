package persistence

import (
	"context"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/dashboards"
	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormDashboardRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDashboardRepository creates a new GORM-based dashboards.Repository implementation
func NewGormDashboardRepository(db *gorm.DB, logger logger.Logger) (dashboards.Repository, error) {
	return &gormDashboardRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDashboardRepository) meetingQuery(ctx context.Context, filter *dashboards.MeetingFilter) *gorm.DB {
	dbQuery := conn(ctx, r.db).Model(&models.MeetingModel{})
	if filter.TherapistID != "" {
		dbQuery = dbQuery.Where("therapist_id = ?", filter.TherapistID)
	}
	if filter.ClientID != "" {
		dbQuery = dbQuery.Where("client_id = ?", filter.ClientID)
	}
	if len(filter.Statuses) > 0 {
		dbQuery = dbQuery.Where("status IN ?", filter.Statuses)
	}
	if filter.StartsFrom != nil {
		dbQuery = dbQuery.Where("start_time >= ?", *filter.StartsFrom)
	}
	return withinColumnDates(dbQuery, "updated_at", filter.UpdatedFrom, filter.UpdatedTo)
}

func (r *gormDashboardRepository) CountMeetings(ctx context.Context, filter *dashboards.MeetingFilter) (int64, error) {
	var total int64
	if err := r.meetingQuery(ctx, filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return total, nil
}

func (r *gormDashboardRepository) ListMeetings(ctx context.Context, filter *dashboards.MeetingFilter) ([]*meetings.Meeting, error) {
	order := "start_time ASC"
	if filter.NewestFirst {
		order = "start_time DESC"
	}
	dbQuery := r.meetingQuery(ctx, filter).Order(order)
	if filter.Limit > 0 {
		dbQuery = dbQuery.Limit(filter.Limit)
	}

	var modelList []*models.MeetingModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch meetings: %w", err)
	}
	return meetingsToDomain(modelList), nil
}

func (r *gormDashboardRepository) worksheetQuery(ctx context.Context, filter *dashboards.WorksheetFilter) *gorm.DB {
	dbQuery := conn(ctx, r.db).Model(&models.WorksheetModel{})
	if filter.TherapistID != "" {
		dbQuery = dbQuery.Where("therapist_id = ?", filter.TherapistID)
	}
	if filter.ClientID != "" {
		dbQuery = dbQuery.Where("client_id = ?", filter.ClientID)
	}
	if len(filter.Statuses) > 0 {
		dbQuery = dbQuery.Where("status IN ?", filter.Statuses)
	}
	return dbQuery
}

func (r *gormDashboardRepository) CountWorksheets(ctx context.Context, filter *dashboards.WorksheetFilter) (int64, error) {
	var total int64
	if err := r.worksheetQuery(ctx, filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count worksheets: %w", err)
	}
	return total, nil
}

func (r *gormDashboardRepository) ListWorksheets(ctx context.Context, filter *dashboards.WorksheetFilter) ([]*worksheets.Worksheet, error) {
	dbQuery := r.worksheetQuery(ctx, filter).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at ASC")
	if filter.Limit > 0 {
		dbQuery = dbQuery.Limit(filter.Limit)
	}

	var modelList []*models.WorksheetModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch worksheets: %w", err)
	}
	return worksheetsToDomain(modelList), nil
}

func (r *gormDashboardRepository) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	return countBy(conn(ctx, r.db).Model(&models.UserModel{}), "role")
}
