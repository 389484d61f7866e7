package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/auditlogs"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAuditLogRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAuditLogRepository creates a new GORM-based AuditLogRepository implementation
func NewGormAuditLogRepository(db *gorm.DB, logger logger.Logger) (auditlogs.AuditLogRepository, error) {
	return &gormAuditLogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAuditLogRepository) Create(ctx context.Context, log *auditlogs.AuditLog) error {
	if err := log.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AuditLogModel{}
	model.FromDomain(log)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create audit log", err)
	}

	r.logger.Debug("Created audit log with id ", log.ID)
	return nil
}

func (r *gormAuditLogRepository) Find(ctx context.Context, query *auditlogs.Query, page shared.Pagination) ([]*auditlogs.AuditLog, int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.AuditLogModel{})

	if query.UserID != "" {
		dbQuery = dbQuery.Where("user_id = ?", query.UserID)
	}
	if query.Action != "" {
		dbQuery = dbQuery.Where("action = ?", query.Action)
	}
	if query.Entity != "" {
		dbQuery = dbQuery.Where("entity = ?", query.Entity)
	}
	if query.EntityID != "" {
		dbQuery = dbQuery.Where("entity_id = ?", query.EntityID)
	}
	dbQuery = withinDates(dbQuery, query.DateFrom, query.DateTo)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var modelList []*models.AuditLogModel
	if err := paginate(dbQuery.Order("created_at DESC"), page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	domainList := make([]*auditlogs.AuditLog, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

func (r *gormAuditLogRepository) CountByAction(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	return countBy(withinDates(conn(ctx, r.db).Model(&models.AuditLogModel{}), from, to), "action")
}

func (r *gormAuditLogRepository) CountByEntity(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	return countBy(withinDates(conn(ctx, r.db).Model(&models.AuditLogModel{}), from, to), "entity")
}

func withinDates(dbQuery *gorm.DB, from, to *time.Time) *gorm.DB {
	return withinColumnDates(dbQuery, "created_at", from, to)
}

// withinColumnDates keeps rows whose column lies in [from, to]. Nil bounds are open.
func withinColumnDates(dbQuery *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		dbQuery = dbQuery.Where(fmt.Sprintf("%s >= ?", column), *from)
	}
	if to != nil {
		dbQuery = dbQuery.Where(fmt.Sprintf("%s <= ?", column), *to)
	}
	return dbQuery
}

type gormSystemEventRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSystemEventRepository creates a new GORM-based SystemEventRepository implementation
func NewGormSystemEventRepository(db *gorm.DB, logger logger.Logger) (auditlogs.SystemEventRepository, error) {
	return &gormSystemEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSystemEventRepository) Create(ctx context.Context, event *auditlogs.SystemEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SystemEventModel{}
	model.FromDomain(event)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create system event", err)
	}

	r.logger.Info(fmt.Sprintf("Recorded system event %s (%s)", event.EventType, event.Severity))
	return nil
}

func (r *gormSystemEventRepository) GetByID(ctx context.Context, eventID string) (*auditlogs.SystemEvent, error) {
	var model models.SystemEventModel
	if err := conn(ctx, r.db).Where("id = ?", eventID).First(&model).Error; err != nil {
		return nil, readError("system event", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSystemEventRepository) Update(ctx context.Context, event *auditlogs.SystemEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SystemEventModel{}
	model.FromDomain(event)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update system event", err)
	}
	return nil
}

func (r *gormSystemEventRepository) Find(ctx context.Context, query *auditlogs.SystemEventQuery, page shared.Pagination) ([]*auditlogs.SystemEvent, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.SystemEventModel{})
	if query.EventType != "" {
		dbQuery = dbQuery.Where("event_type = ?", query.EventType)
	}
	if query.Severity != "" {
		dbQuery = dbQuery.Where("severity = ?", query.Severity)
	}
	if query.IsResolved != nil {
		dbQuery = dbQuery.Where("is_resolved = ?", *query.IsResolved)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count system events: %w", err)
	}

	var modelList []*models.SystemEventModel
	if err := paginate(dbQuery.Order("created_at DESC"), page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch system events: %w", err)
	}

	domainList := make([]*auditlogs.SystemEvent, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}
