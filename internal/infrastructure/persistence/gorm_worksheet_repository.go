package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/worksheets"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormWorksheetRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormWorksheetRepository creates a new GORM-based WorksheetRepository implementation
func NewGormWorksheetRepository(db *gorm.DB, logger logger.Logger) (worksheets.WorksheetRepository, error) {
	return &gormWorksheetRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormWorksheetRepository) Create(ctx context.Context, worksheet *worksheets.Worksheet) error {
	if err := worksheet.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.WorksheetModel{}
	model.FromDomain(worksheet)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create worksheet", err)
	}

	r.logger.Info("Created worksheet with id ", worksheet.ID)
	return nil
}

func (r *gormWorksheetRepository) GetByID(ctx context.Context, worksheetID string) (*worksheets.Worksheet, error) {
	var model models.WorksheetModel
	if err := conn(ctx, r.db).Where("id = ?", worksheetID).First(&model).Error; err != nil {
		return nil, readError("worksheet", err)
	}
	return model.ToDomain(), nil
}

func (r *gormWorksheetRepository) Update(ctx context.Context, worksheet *worksheets.Worksheet) error {
	if err := worksheet.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.WorksheetModel{}
	model.FromDomain(worksheet)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update worksheet", err)
	}

	r.logger.Info("Updated worksheet with id ", worksheet.ID)
	return nil
}

func (r *gormWorksheetRepository) ListForClient(ctx context.Context, clientID string, query *worksheets.Query, page shared.Pagination) ([]*worksheets.Worksheet, int64, error) {
	return r.list(ctx, "client_id", clientID, query, page)
}

func (r *gormWorksheetRepository) ListForTherapist(ctx context.Context, therapistID string, query *worksheets.Query, page shared.Pagination) ([]*worksheets.Worksheet, int64, error) {
	return r.list(ctx, "therapist_id", therapistID, query, page)
}

func (r *gormWorksheetRepository) list(ctx context.Context, column, userID string, query *worksheets.Query, page shared.Pagination) ([]*worksheets.Worksheet, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.WorksheetModel{}).
		Where(fmt.Sprintf("%s = ?", column), userID)
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count worksheets: %w", err)
	}

	var modelList []*models.WorksheetModel
	if err := paginate(dbQuery.Order("created_at DESC"), page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch worksheets: %w", err)
	}
	return worksheetsToDomain(modelList), total, nil
}

func (r *gormWorksheetRepository) MarkOverdue(ctx context.Context, now time.Time) ([]*worksheets.Worksheet, error) {
	var modelList []*models.WorksheetModel
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("status = ? AND due_date IS NOT NULL AND due_date < ?", worksheets.StatusAssigned, now).
			Find(&modelList).Error; err != nil {
			return err
		}
		if len(modelList) == 0 {
			return nil
		}

		ids := make([]string, len(modelList))
		for i, model := range modelList {
			ids[i] = model.ID
			model.Status = worksheets.StatusOverdue
			model.UpdatedAt = now
		}
		return tx.Model(&models.WorksheetModel{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{"status": worksheets.StatusOverdue, "updated_at": now}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue worksheets: %w", err)
	}

	if len(modelList) > 0 {
		r.logger.Info(fmt.Sprintf("Marked %d worksheets overdue", len(modelList)))
	}
	return worksheetsToDomain(modelList), nil
}

func worksheetsToDomain(modelList []*models.WorksheetModel) []*worksheets.Worksheet {
	domainList := make([]*worksheets.Worksheet, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
