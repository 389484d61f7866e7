package persistence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/reviews"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var reviewSortColumns = map[string]string{
	reviews.SortCreatedAt: "created_at",
	reviews.SortRating:    "rating",
	reviews.SortHelpful:   "helpful_count",
}

type gormReviewRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormReviewRepository creates a new GORM-based ReviewRepository implementation
func NewGormReviewRepository(db *gorm.DB, logger logger.Logger) (reviews.ReviewRepository, error) {
	return &gormReviewRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormReviewRepository) Create(ctx context.Context, review *reviews.Review) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ReviewModel{}
	model.FromDomain(review)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create review", err)
	}

	r.logger.Info("Created review with id ", review.ID)
	return nil
}

func (r *gormReviewRepository) GetByID(ctx context.Context, reviewID string) (*reviews.Review, error) {
	var model models.ReviewModel
	if err := conn(ctx, r.db).Where("id = ?", reviewID).First(&model).Error; err != nil {
		return nil, readError("review", err)
	}
	return model.ToDomain(), nil
}

func (r *gormReviewRepository) ExistsForMeeting(ctx context.Context, clientID, meetingID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ReviewModel{}).
		Where("client_id = ? AND meeting_id = ?", clientID, meetingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return count > 0, nil
}

func (r *gormReviewRepository) Update(ctx context.Context, review *reviews.Review) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ReviewModel{}
	model.FromDomain(review)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update review", err)
	}

	r.logger.Info("Updated review with id ", review.ID)
	return nil
}

func (r *gormReviewRepository) Delete(ctx context.Context, reviewID string) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewHelpfulVoteModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", reviewID).Delete(&models.ReviewModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return readError("review", err)
	}

	r.logger.Info("Deleted review with id ", reviewID)
	return nil
}

func (r *gormReviewRepository) List(ctx context.Context, query *reviews.Query, page shared.Pagination) ([]*reviews.Review, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := conn(ctx, r.db).Model(&models.ReviewModel{})
	if query.TherapistID != "" {
		dbQuery = dbQuery.Where("therapist_id = ?", query.TherapistID)
	}
	if query.ClientID != "" {
		dbQuery = dbQuery.Where("client_id = ?", query.ClientID)
	}
	if query.Rating != 0 {
		dbQuery = dbQuery.Where("rating = ?", query.Rating)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	column, ok := reviewSortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if query.SortOrder == "asc" {
		direction = "ASC"
	}

	var modelList []*models.ReviewModel
	ordered := dbQuery.Order(fmt.Sprintf("%s %s", column, direction)).Order("id")
	if err := paginate(ordered, page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviewsToDomain(modelList), total, nil
}

func (r *gormReviewRepository) RatingCounts(ctx context.Context, therapistID string) (map[int]int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.ReviewModel{}).
		Where("therapist_id = ? AND status = ?", therapistID, reviews.StatusApproved)

	byKey, err := countBy(dbQuery, "rating")
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(byKey))
	for key, total := range byKey {
		rating, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("unexpected rating %q: %w", key, err)
		}
		counts[rating] = total
	}
	return counts, nil
}

func (r *gormReviewRepository) HelpfulVotes(ctx context.Context, therapistID string) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&models.ReviewModel{}).
		Select("COALESCE(SUM(helpful_count), 0)").
		Where("therapist_id = ? AND status = ?", therapistID, reviews.StatusApproved).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum helpful votes: %w", err)
	}
	return total, nil
}

func (r *gormReviewRepository) ListApprovedSince(ctx context.Context, therapistID string, since time.Time) ([]*reviews.Review, error) {
	var modelList []*models.ReviewModel
	err := conn(ctx, r.db).
		Where("therapist_id = ? AND status = ? AND created_at >= ?", therapistID, reviews.StatusApproved, since).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviewsToDomain(modelList), nil
}

func (r *gormReviewRepository) AddHelpfulVote(ctx context.Context, vote *reviews.HelpfulVote) (bool, int, error) {
	var (
		added bool
		count int
	)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.ReviewHelpfulVoteModel{
			ReviewID:  vote.ReviewID,
			UserID:    vote.UserID,
			CreatedAt: vote.CreatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		added = result.RowsAffected > 0

		if added {
			if err := tx.Model(&models.ReviewModel{}).
				Where("id = ?", vote.ReviewID).
				UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error; err != nil {
				return err
			}
		}

		var model models.ReviewModel
		if err := tx.Select("helpful_count").Where("id = ?", vote.ReviewID).First(&model).Error; err != nil {
			return err
		}
		count = model.HelpfulCount
		return nil
	})
	if err != nil {
		return false, 0, readError("review", err)
	}
	return added, count, nil
}

func reviewsToDomain(modelList []*models.ReviewModel) []*reviews.Review {
	domainList := make([]*reviews.Review, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
