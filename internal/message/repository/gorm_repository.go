package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/farmgate/marketplace/internal/message/domain"
)

// GormMessageRepository implements MessageRepository interface using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM message repository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// CreateConversation inserts a new conversation
func (r *GormMessageRepository) CreateConversation(conversation *domain.Conversation) error {
	if err := r.db.Create(conversation).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// FindConversationByID retrieves a conversation by ID
func (r *GormMessageRepository) FindConversationByID(id uint) (*domain.Conversation, error) {
	var conversation domain.Conversation
	if err := r.db.First(&conversation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return &conversation, nil
}

// FindConversationByPair retrieves the conversation between a consumer and a farmer
func (r *GormMessageRepository) FindConversationByPair(consumerID, farmerID uint) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := r.db.Where("consumer_id = ? AND farmer_id = ?", consumerID, farmerID).
		First(&conversation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return &conversation, nil
}

// FindConversationsByUser retrieves conversations where the user participates
func (r *GormMessageRepository) FindConversationsByUser(userID uint, limit, offset int) ([]domain.Conversation, error) {
	var conversations []domain.Conversation
	query := r.db.Where("consumer_id = ? OR farmer_id = ?", userID, userID).
		Order("updated_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&conversations).Error; err != nil {
		return nil, fmt.Errorf("failed to find conversations: %w", err)
	}
	return conversations, nil
}

// TouchConversation bumps a conversation's updated_at so it sorts first
func (r *GormMessageRepository) TouchConversation(id uint) error {
	return r.db.Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

// CreateMessage inserts a new message
func (r *GormMessageRepository) CreateMessage(message *domain.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindMessages retrieves messages of a conversation, oldest first
func (r *GormMessageRepository) FindMessages(conversationID uint, limit, offset int) ([]domain.Message, error) {
	var messages []domain.Message
	query := r.db.Where("conversation_id = ?", conversationID).Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	return messages, nil
}

// MarkRead marks all messages sent to the reader in a conversation as read
func (r *GormMessageRepository) MarkRead(conversationID, readerID uint) error {
	now := time.Now()
	return r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", now).Error
}

// CountUnread counts unread messages addressed to the user
func (r *GormMessageRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.consumer_id = ? OR conversations.farmer_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
