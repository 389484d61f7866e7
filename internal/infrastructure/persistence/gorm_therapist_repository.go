package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/therapists"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTherapistRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTherapistRepository creates a new GORM-based TherapistRepository implementation
func NewGormTherapistRepository(db *gorm.DB, logger logger.Logger) (therapists.TherapistRepository, error) {
	return &gormTherapistRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTherapistRepository) Create(ctx context.Context, therapist *therapists.Therapist) error {
	if err := therapist.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TherapistModel{}
	model.FromDomain(therapist)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create therapist", err)
	}

	r.logger.Info("Created therapist application for user ", therapist.UserID)
	return nil
}

func (r *gormTherapistRepository) GetByUserID(ctx context.Context, userID string) (*therapists.Therapist, error) {
	var model models.TherapistModel
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, readError("therapist", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTherapistRepository) Update(ctx context.Context, therapist *therapists.Therapist) error {
	if err := therapist.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TherapistModel{}
	model.FromDomain(therapist)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update therapist", err)
	}

	r.logger.Info("Updated therapist ", therapist.UserID)
	return nil
}

func (r *gormTherapistRepository) ListApplications(ctx context.Context, status string, page shared.Pagination) ([]*therapists.Therapist, int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.TherapistModel{})
	if status != "" {
		dbQuery = dbQuery.Where("status = ?", status)
	}
	return r.findPage(dbQuery.Order("submission_date DESC"), page)
}

func (r *gormTherapistRepository) ListApproved(ctx context.Context, query *therapists.DirectoryQuery, page shared.Pagination) ([]*therapists.Therapist, int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.TherapistModel{}).
		Where("status = ?", therapists.StatusApproved)

	if query.Province != "" {
		dbQuery = dbQuery.Where("LOWER(province) = ?", strings.ToLower(query.Province))
	}
	if query.Expertise != "" {
		like := "%" + strings.ToLower(query.Expertise) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(CAST(expertise AS TEXT)) LIKE ? OR LOWER(CAST(areas_of_expertise AS TEXT)) LIKE ?",
			like, like,
		)
	}
	if query.Language != "" {
		like := "%" + strings.ToLower(query.Language) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(CAST(languages AS TEXT)) LIKE ? OR LOWER(CAST(languages_offered AS TEXT)) LIKE ?",
			like, like,
		)
	}
	if query.MaxHourlyRate > 0 {
		dbQuery = dbQuery.Where("hourly_rate <= ?", query.MaxHourlyRate)
	}

	return r.findPage(dbQuery.Order("processing_date DESC"), page)
}

func (r *gormTherapistRepository) findPage(dbQuery *gorm.DB, page shared.Pagination) ([]*therapists.Therapist, int64, error) {
	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count therapists: %w", err)
	}

	var modelList []*models.TherapistModel
	if err := paginate(dbQuery, page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch therapists: %w", err)
	}

	domainList := make([]*therapists.Therapist, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

type gormTherapistFileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTherapistFileRepository creates a new GORM-based TherapistFileRepository implementation
func NewGormTherapistFileRepository(db *gorm.DB, logger logger.Logger) (therapists.TherapistFileRepository, error) {
	return &gormTherapistFileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTherapistFileRepository) Create(ctx context.Context, file *therapists.TherapistFile) error {
	model := &models.TherapistFileModel{}
	model.FromDomain(file)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create therapist file", err)
	}

	r.logger.Info("Created therapist file with id ", file.ID)
	return nil
}

func (r *gormTherapistFileRepository) GetByID(ctx context.Context, fileID string) (*therapists.TherapistFile, error) {
	var model models.TherapistFileModel
	if err := conn(ctx, r.db).Where("id = ?", fileID).First(&model).Error; err != nil {
		return nil, readError("file", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTherapistFileRepository) ListByTherapist(ctx context.Context, therapistID string) ([]*therapists.TherapistFile, error) {
	var modelList []*models.TherapistFileModel
	err := conn(ctx, r.db).
		Where("therapist_id = ?", therapistID).
		Order("uploaded_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist files: %w", err)
	}

	domainList := make([]*therapists.TherapistFile, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
