package persistence

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/meetings"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormMeetingRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMeetingRepository creates a new GORM-based MeetingRepository implementation
func NewGormMeetingRepository(db *gorm.DB, logger logger.Logger) (meetings.MeetingRepository, error) {
	return &gormMeetingRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMeetingRepository) Create(ctx context.Context, meeting *meetings.Meeting) error {
	if err := meeting.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MeetingModel{}
	model.FromDomain(meeting)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create meeting", err)
	}

	r.logger.Info("Created meeting with id ", meeting.ID)
	return nil
}

func (r *gormMeetingRepository) GetByID(ctx context.Context, meetingID string) (*meetings.Meeting, error) {
	var model models.MeetingModel
	if err := conn(ctx, r.db).Where("id = ?", meetingID).First(&model).Error; err != nil {
		return nil, readError("meeting", err)
	}
	return model.ToDomain(), nil
}

func (r *gormMeetingRepository) Update(ctx context.Context, meeting *meetings.Meeting) error {
	if err := meeting.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MeetingModel{}
	model.FromDomain(meeting)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update meeting", err)
	}

	r.logger.Info("Updated meeting with id ", meeting.ID)
	return nil
}

func (r *gormMeetingRepository) ListForUser(ctx context.Context, userID string, query *meetings.Query) ([]*meetings.Meeting, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.MeetingModel{}).
		Where("therapist_id = ? OR client_id = ?", userID, userID)

	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.From != nil {
		dbQuery = dbQuery.Where("start_time >= ?", *query.From)
	}
	if query.To != nil {
		dbQuery = dbQuery.Where("start_time < ?", *query.To)
	}

	dbQuery = dbQuery.Order("start_time DESC")
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	var modelList []*models.MeetingModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch meetings: %w", err)
	}
	return meetingsToDomain(modelList), nil
}

func (r *gormMeetingRepository) ListOverlapping(ctx context.Context, userIDs []string, start, end time.Time) ([]*meetings.Meeting, error) {
	if len(userIDs) == 0 {
		return []*meetings.Meeting{}, nil
	}

	var modelList []*models.MeetingModel
	err := conn(ctx, r.db).
		Where("therapist_id IN ? OR client_id IN ?", userIDs, userIDs).
		Where("status IN ?", meetings.BlockingStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overlapping meetings: %w", err)
	}
	return meetingsToDomain(modelList), nil
}

func (r *gormMeetingRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*meetings.Meeting, error) {
	var modelList []*models.MeetingModel
	err := conn(ctx, r.db).
		Where("status IN ?", meetings.BlockingStatuses).
		Where("reminder_sent_at IS NULL").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meetings due for reminder: %w", err)
	}
	return meetingsToDomain(modelList), nil
}

func (r *gormMeetingRepository) MarkReminderSent(ctx context.Context, meetingID string, at time.Time) error {
	err := conn(ctx, r.db).Model(&models.MeetingModel{}).
		Where("id = ?", meetingID).
		Update("reminder_sent_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return nil
}

func meetingsToDomain(modelList []*models.MeetingModel) []*meetings.Meeting {
	domainList := make([]*meetings.Meeting, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}

type gormAvailabilityRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAvailabilityRepository creates a new GORM-based AvailabilityRepository implementation
func NewGormAvailabilityRepository(db *gorm.DB, logger logger.Logger) (meetings.AvailabilityRepository, error) {
	return &gormAvailabilityRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAvailabilityRepository) Create(ctx context.Context, availability *meetings.Availability) error {
	if err := availability.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AvailabilityModel{}
	model.FromDomain(availability)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create availability", err)
	}

	r.logger.Info("Created availability with id ", availability.ID)
	return nil
}

func (r *gormAvailabilityRepository) GetByID(ctx context.Context, availabilityID string) (*meetings.Availability, error) {
	var model models.AvailabilityModel
	if err := conn(ctx, r.db).Where("id = ?", availabilityID).First(&model).Error; err != nil {
		return nil, readError("availability", err)
	}
	return model.ToDomain(), nil
}

func (r *gormAvailabilityRepository) ListByTherapist(ctx context.Context, therapistID string) ([]*meetings.Availability, error) {
	var modelList []*models.AvailabilityModel
	if err := conn(ctx, r.db).Where("therapist_id = ?", therapistID).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	domainList := make([]*meetings.Availability, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	sort.SliceStable(domainList, func(i, j int) bool {
		di, dj := meetings.WeekdayIndex(domainList[i].DayOfWeek), meetings.WeekdayIndex(domainList[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		return domainList[i].StartTime < domainList[j].StartTime
	})
	return domainList, nil
}

func (r *gormAvailabilityRepository) Update(ctx context.Context, availability *meetings.Availability) error {
	if err := availability.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AvailabilityModel{}
	model.FromDomain(availability)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update availability", err)
	}

	r.logger.Info("Updated availability with id ", availability.ID)
	return nil
}

func (r *gormAvailabilityRepository) Delete(ctx context.Context, availabilityID string) error {
	if err := conn(ctx, r.db).Where("id = ?", availabilityID).Delete(&models.AvailabilityModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}

	r.logger.Info("Deleted availability with id ", availabilityID)
	return nil
}
