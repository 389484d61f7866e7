package persistence

import (
	"context"
	"fmt"

	"github.com/Wetooa/mentara-sub026/internal/domain/clients"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRelationshipRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRelationshipRepository creates a new GORM-based RelationshipRepository implementation
func NewGormRelationshipRepository(db *gorm.DB, logger logger.Logger) (clients.RelationshipRepository, error) {
	return &gormRelationshipRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRelationshipRepository) Create(ctx context.Context, relationship *clients.ClientTherapist) error {
	if err := relationship.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ClientTherapistModel{}
	model.FromDomain(relationship)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create relationship", err)
	}

	r.logger.Info("Created client therapist relationship with id ", relationship.ID)
	return nil
}

func (r *gormRelationshipRepository) Get(ctx context.Context, clientID, therapistID string) (*clients.ClientTherapist, error) {
	var model models.ClientTherapistModel
	err := conn(ctx, r.db).
		Where("client_id = ? AND therapist_id = ?", clientID, therapistID).
		First(&model).Error
	if err != nil {
		return nil, readError("relationship", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRelationshipRepository) List(ctx context.Context, query *clients.RelationshipQuery) ([]*clients.ClientTherapist, error) {
	dbQuery := conn(ctx, r.db).Model(&models.ClientTherapistModel{})

	if query.ClientID != "" {
		dbQuery = dbQuery.Where("client_id = ?", query.ClientID)
	}
	if query.TherapistID != "" {
		dbQuery = dbQuery.Where("therapist_id = ?", query.TherapistID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if !query.IncludeRemoved {
		dbQuery = dbQuery.Where("removed_at IS NULL")
	}

	var modelList []*models.ClientTherapistModel
	if err := dbQuery.Order("assigned_at DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch relationships: %w", err)
	}

	domainList := make([]*clients.ClientTherapist, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormRelationshipRepository) Update(ctx context.Context, relationship *clients.ClientTherapist) error {
	if err := relationship.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ClientTherapistModel{}
	model.FromDomain(relationship)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update relationship", err)
	}

	r.logger.Info("Updated client therapist relationship with id ", relationship.ID)
	return nil
}

func (r *gormRelationshipRepository) Delete(ctx context.Context, relationshipID string) error {
	if err := conn(ctx, r.db).Where("id = ?", relationshipID).Delete(&models.ClientTherapistModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	r.logger.Info("Deleted client therapist relationship with id ", relationshipID)
	return nil
}

type gormPreAssessmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPreAssessmentRepository creates a new GORM-based PreAssessmentRepository implementation
func NewGormPreAssessmentRepository(db *gorm.DB, logger logger.Logger) (clients.PreAssessmentRepository, error) {
	return &gormPreAssessmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPreAssessmentRepository) Create(ctx context.Context, assessment *clients.PreAssessment) error {
	if err := assessment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PreAssessmentModel{}
	model.FromDomain(assessment)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create pre-assessment", err)
	}

	r.logger.Info("Created pre-assessment with id ", assessment.ID)
	return nil
}

func (r *gormPreAssessmentRepository) GetLatest(ctx context.Context, clientID string) (*clients.PreAssessment, error) {
	var model models.PreAssessmentModel
	err := conn(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, readError("pre-assessment", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPreAssessmentRepository) GetLatestForClients(ctx context.Context, clientIDs []string) (map[string]*clients.PreAssessment, error) {
	latest := make(map[string]*clients.PreAssessment, len(clientIDs))
	if len(clientIDs) == 0 {
		return latest, nil
	}

	var modelList []*models.PreAssessmentModel
	err := conn(ctx, r.db).
		Where("client_id IN ?", clientIDs).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pre-assessments: %w", err)
	}

	// Rows arrive newest first, so the first row seen per client wins
	for _, model := range modelList {
		if _, ok := latest[model.ClientID]; !ok {
			latest[model.ClientID] = model.ToDomain()
		}
	}
	return latest, nil
}
