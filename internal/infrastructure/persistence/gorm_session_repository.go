package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormSessionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSessionRepository creates a new GORM-based SessionRepository implementation
func NewGormSessionRepository(db *gorm.DB, logger logger.Logger) (users.SessionRepository, error) {
	return &gormSessionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSessionRepository) CreateRefreshToken(ctx context.Context, token *users.RefreshToken) error {
	model := &models.RefreshTokenModel{}
	model.FromDomain(token)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create refresh token", err)
	}
	return nil
}

func (r *gormSessionRepository) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*users.RefreshToken, error) {
	var model models.RefreshTokenModel
	if err := conn(ctx, r.db).Where("token_hash = ?", tokenHash).First(&model).Error; err != nil {
		return nil, readError("refresh token", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSessionRepository) ListActiveRefreshTokens(ctx context.Context, userID string, now time.Time) ([]*users.RefreshToken, error) {
	var modelList []*models.RefreshTokenModel
	err := conn(ctx, r.db).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	domainList := make([]*users.RefreshToken, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormSessionRepository) TouchRefreshToken(ctx context.Context, tokenID string, at time.Time) error {
	err := conn(ctx, r.db).Model(&models.RefreshTokenModel{}).
		Where("id = ?", tokenID).
		Update("last_used_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to touch refresh token: %w", err)
	}
	return nil
}

func (r *gormSessionRepository) RevokeRefreshToken(ctx context.Context, tokenID string, at time.Time) error {
	result := conn(ctx, r.db).Model(&models.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", tokenID).
		Update("revoked_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return readError("session", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *gormSessionRepository) RevokeUserRefreshTokens(ctx context.Context, userID string, exceptID string, at time.Time) (int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID)
	if exceptID != "" {
		dbQuery = dbQuery.Where("id <> ?", exceptID)
	}

	result := dbQuery.Update("revoked_at", at)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke sessions: %w", result.Error)
	}

	r.logger.Info(fmt.Sprintf("Revoked %d sessions of user %s", result.RowsAffected, userID))
	return result.RowsAffected, nil
}

func (r *gormSessionRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	result := conn(ctx, r.db).
		Where("expires_at < ? OR revoked_at < ?", before, before).
		Delete(&models.RefreshTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormSessionRepository) CreateUserToken(ctx context.Context, token *users.UserToken) error {
	model := &models.UserTokenModel{}
	model.FromDomain(token)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create user token", err)
	}
	return nil
}

func (r *gormSessionRepository) GetUserTokenByHash(ctx context.Context, purpose, tokenHash string) (*users.UserToken, error) {
	var model models.UserTokenModel
	err := conn(ctx, r.db).
		Where("purpose = ? AND token_hash = ?", purpose, tokenHash).
		First(&model).Error
	if err != nil {
		return nil, readError("token", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSessionRepository) MarkUserTokenUsed(ctx context.Context, tokenID string, at time.Time) error {
	result := conn(ctx, r.db).Model(&models.UserTokenModel{}).
		Where("id = ? AND used_at IS NULL", tokenID).
		Update("used_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to mark token used: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return readError("token", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *gormSessionRepository) DeleteExpiredUserTokens(ctx context.Context, before time.Time) (int64, error) {
	result := conn(ctx, r.db).
		Where("expires_at < ? OR used_at < ?", before, before).
		Delete(&models.UserTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired user tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
