package domain

import (
	"time"
)

// Conversation links a consumer and a farmer discussing produce.
type Conversation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ConsumerID uint      `json:"consumer_id" gorm:"not null;index:idx_conversation_pair"`
	FarmerID   uint      `json:"farmer_id" gorm:"not null;index:idx_conversation_pair"`
	Subject    string    `json:"subject"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Messages   []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}

// TableName specifies the table name
func (Conversation) TableName() string {
	return "conversations"
}

// Involves reports whether the given user participates in the conversation.
func (c *Conversation) Involves(userID uint) bool {
	return c.ConsumerID == userID || c.FarmerID == userID
}

// Message is a single message inside a conversation.
type Message struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ConversationID uint       `json:"conversation_id" gorm:"not null;index"`
	SenderID       uint       `json:"sender_id" gorm:"not null"`
	Body           string     `json:"body" gorm:"not null"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (Message) TableName() string {
	return "messages"
}

// MessageRepository defines the contract for conversation data access
type MessageRepository interface {
	CreateConversation(conversation *Conversation) error
	FindConversationByID(id uint) (*Conversation, error)
	FindConversationByPair(consumerID, farmerID uint) (*Conversation, error)
	FindConversationsByUser(userID uint, limit, offset int) ([]Conversation, error)
	TouchConversation(id uint) error
	CreateMessage(message *Message) error
	FindMessages(conversationID uint, limit, offset int) ([]Message, error)
	MarkRead(conversationID, readerID uint) error
	CountUnread(userID uint) (int64, error)
}
