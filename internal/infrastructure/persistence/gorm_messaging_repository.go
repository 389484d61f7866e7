package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/messaging"
	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/persistence/models"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormConversationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormConversationRepository creates a new GORM-based ConversationRepository implementation
func NewGormConversationRepository(db *gorm.DB, logger logger.Logger) (messaging.ConversationRepository, error) {
	return &gormConversationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormConversationRepository) Create(ctx context.Context, conversation *messaging.Conversation, participants []*messaging.Participant) error {
	if err := conversation.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ConversationModel{}
	model.FromDomain(conversation)

	participantModels := make([]*models.ParticipantModel, len(participants))
	for i, p := range participants {
		participantModels[i] = &models.ParticipantModel{}
		participantModels[i].FromDomain(p)
	}

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(participantModels) > 0 {
			return tx.Create(&participantModels).Error
		}
		return nil
	})
	if err != nil {
		return writeError("create conversation", err)
	}

	r.logger.Info("Created conversation with id ", conversation.ID)
	return nil
}

func (r *gormConversationRepository) GetByID(ctx context.Context, conversationID string) (*messaging.Conversation, error) {
	var model models.ConversationModel
	if err := conn(ctx, r.db).Where("id = ?", conversationID).First(&model).Error; err != nil {
		return nil, readError("conversation", err)
	}
	return model.ToDomain(), nil
}

func (r *gormConversationRepository) FindDirect(ctx context.Context, userA, userB string) (*messaging.Conversation, error) {
	var model models.ConversationModel
	err := conn(ctx, r.db).
		Joins("JOIN conversation_participants pa ON pa.conversation_id = conversations.id AND pa.user_id = ?", userA).
		Joins("JOIN conversation_participants pb ON pb.conversation_id = conversations.id AND pb.user_id = ?", userB).
		Where("conversations.type = ?", messaging.ConversationDirect).
		Order("conversations.created_at ASC").
		First(&model).Error
	if err != nil {
		return nil, readError("conversation", err)
	}
	return model.ToDomain(), nil
}

func (r *gormConversationRepository) ListForUser(ctx context.Context, userID string, page shared.Pagination) ([]*messaging.Conversation, int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.ConversationModel{}).
		Joins("JOIN conversation_participants p ON p.conversation_id = conversations.id").
		Where("p.user_id = ? AND p.is_active = ?", userID, true)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count conversations: %w", err)
	}

	var modelList []*models.ConversationModel
	err := paginate(dbQuery.Order("COALESCE(conversations.last_message_at, conversations.created_at) DESC"), page).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch conversations: %w", err)
	}

	domainList := make([]*messaging.Conversation, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

func (r *gormConversationRepository) ListParticipants(ctx context.Context, conversationID string) ([]*messaging.Participant, error) {
	var modelList []*models.ParticipantModel
	err := conn(ctx, r.db).
		Where("conversation_id = ?", conversationID).
		Order("joined_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}

	domainList := make([]*messaging.Participant, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormConversationRepository) GetParticipant(ctx context.Context, conversationID, userID string) (*messaging.Participant, error) {
	var model models.ParticipantModel
	err := conn(ctx, r.db).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&model).Error
	if err != nil {
		return nil, readError("participant", err)
	}
	return model.ToDomain(), nil
}

func (r *gormConversationRepository) ListConversationIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := conn(ctx, r.db).Model(&models.ParticipantModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("conversation_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation ids: %w", err)
	}
	return ids, nil
}

func (r *gormConversationRepository) TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error {
	err := conn(ctx, r.db).Model(&models.ConversationModel{}).
		Where("id = ?", conversationID).
		Updates(map[string]interface{}{"last_message_at": at, "updated_at": at}).Error
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

func (r *gormConversationRepository) UpdateLastRead(ctx context.Context, conversationID, userID string, at time.Time) error {
	err := conn(ctx, r.db).Model(&models.ParticipantModel{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last read: %w", err)
	}
	return nil
}

type gormMessageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMessageRepository creates a new GORM-based MessageRepository implementation.
// Content is stored as handed over, encryption happens in the service layer.
func NewGormMessageRepository(db *gorm.DB, logger logger.Logger) (messaging.MessageRepository, error) {
	return &gormMessageRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMessageRepository) Create(ctx context.Context, message *messaging.Message) error {
	if err := validators.ValidateStruct(message); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MessageModel{}
	model.FromDomain(message)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("create message", err)
	}

	r.logger.Debug("Created message with id ", message.ID)
	return nil
}

func (r *gormMessageRepository) GetByID(ctx context.Context, messageID string) (*messaging.Message, error) {
	var model models.MessageModel
	if err := conn(ctx, r.db).Where("id = ?", messageID).First(&model).Error; err != nil {
		return nil, readError("message", err)
	}
	return model.ToDomain(), nil
}

func (r *gormMessageRepository) Update(ctx context.Context, message *messaging.Message) error {
	if err := validators.ValidateStruct(message); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MessageModel{}
	model.FromDomain(message)

	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return writeError("update message", err)
	}
	return nil
}

func (r *gormMessageRepository) ListByConversation(ctx context.Context, conversationID string, page shared.Pagination) ([]*messaging.Message, int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.MessageModel{}).
		Where("conversation_id = ?", conversationID)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	var modelList []*models.MessageModel
	if err := paginate(dbQuery.Order("created_at DESC"), page).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messagesToDomain(modelList), total, nil
}

func (r *gormMessageRepository) GetLatest(ctx context.Context, conversationID string) (*messaging.Message, error) {
	var model models.MessageModel
	err := conn(ctx, r.db).
		Where("conversation_id = ? AND is_deleted = ?", conversationID, false).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, readError("message", err)
	}
	return model.ToDomain(), nil
}

func (r *gormMessageRepository) CountUnread(ctx context.Context, conversationID, userID string, since *time.Time) (int64, error) {
	dbQuery := conn(ctx, r.db).Model(&models.MessageModel{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_deleted = ?", conversationID, userID, false)
	if since != nil {
		dbQuery = dbQuery.Where("created_at > ?", *since)
	}

	var count int64
	if err := dbQuery.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (r *gormMessageRepository) ListInConversations(ctx context.Context, conversationIDs []string, limit int) ([]*messaging.Message, error) {
	if len(conversationIDs) == 0 {
		return []*messaging.Message{}, nil
	}

	dbQuery := conn(ctx, r.db).
		Where("conversation_id IN ? AND is_deleted = ?", conversationIDs, false).
		Order("created_at DESC")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	var modelList []*models.MessageModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messagesToDomain(modelList), nil
}

func (r *gormMessageRepository) MarkRead(ctx context.Context, receipt *messaging.ReadReceipt) error {
	model := &models.ReadReceiptModel{
		MessageID: receipt.MessageID,
		UserID:    receipt.UserID,
		ReadAt:    receipt.ReadAt,
	}

	err := conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (r *gormMessageRepository) AddReaction(ctx context.Context, reaction *messaging.Reaction) error {
	if err := validators.ValidateStruct(reaction); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ReactionModel{}
	model.FromDomain(reaction)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("add reaction", err)
	}
	return nil
}

func (r *gormMessageRepository) RemoveReaction(ctx context.Context, messageID, userID, emoji string) error {
	result := conn(ctx, r.db).
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&models.ReactionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove reaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return readError("reaction", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *gormMessageRepository) ListReactions(ctx context.Context, messageIDs []string) ([]*messaging.Reaction, error) {
	if len(messageIDs) == 0 {
		return []*messaging.Reaction{}, nil
	}

	var modelList []*models.ReactionModel
	err := conn(ctx, r.db).
		Where("message_id IN ?", messageIDs).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reactions: %w", err)
	}

	domainList := make([]*messaging.Reaction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func messagesToDomain(modelList []*models.MessageModel) []*messaging.Message {
	domainList := make([]*messaging.Message, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}

type gormBlockRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBlockRepository creates a new GORM-based BlockRepository implementation
func NewGormBlockRepository(db *gorm.DB, logger logger.Logger) (messaging.BlockRepository, error) {
	return &gormBlockRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBlockRepository) Create(ctx context.Context, block *messaging.Block) error {
	model := &models.BlockModel{
		BlockerID: block.BlockerID,
		BlockedID: block.BlockedID,
		Reason:    block.Reason,
		CreatedAt: block.CreatedAt,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return writeError("block user", err)
	}

	r.logger.Info(fmt.Sprintf("User %s blocked user %s", block.BlockerID, block.BlockedID))
	return nil
}

func (r *gormBlockRepository) Delete(ctx context.Context, blockerID, blockedID string) error {
	result := conn(ctx, r.db).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.BlockModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to unblock user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return readError("block", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *gormBlockRepository) Exists(ctx context.Context, blockerID, blockedID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.BlockModel{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return count > 0, nil
}

func (r *gormBlockRepository) IsBlockedEitherWay(ctx context.Context, userA, userB string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.BlockModel{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return count > 0, nil
}
