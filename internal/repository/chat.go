// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"gastronet/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for conversation and message data operations.
type ChatRepository interface {
	GetConversationByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error)
	MarkRead(ctx context.Context, convID, readerID uint) error
	UnreadCount(ctx context.Context, convID, userID uint) (int64, error)
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// GetConversationByPair finds the conversation for an unordered user pair.
// Returns nil when none exists.
func (r *chatRepository) GetConversationByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	a, b := models.NormalizePair(userA, userB)
	var conv models.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Preload("UserA").
		Preload("UserB").
		First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError(err)
	}
	return &conv, nil
}

func (r *chatRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.UserAID, conv.UserBID = models.NormalizePair(conv.UserAID, conv.UserBID)
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, storeError(err)
	}
	return &conv, nil
}

func (r *chatRepository) GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Preload("UserA").
		Preload("UserB").
		Order("last_message_time DESC NULLS LAST").
		Find(&convs).Error; err != nil {
		return nil, storeError(err)
	}
	return convs, nil
}

// CreateMessage stores the message and bumps the conversation's last-message
// fields in the same transaction.
func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Updates(map[string]interface{}{
				"last_message":      msg.Content,
				"last_message_time": now,
			}).Error
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (r *chatRepository) GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	var msgs []*models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, storeError(err)
	}
	return msgs, nil
}

// MarkRead flags every message in the conversation not sent by readerID.
func (r *chatRepository) MarkRead(ctx context.Context, convID, readerID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND read = ?", convID, readerID, false).
		Update("read", true).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *chatRepository) UnreadCount(ctx context.Context, convID, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND read = ?", convID, userID, false).
		Count(&count).Error; err != nil {
		return 0, storeError(err)
	}
	return count, nil
}
