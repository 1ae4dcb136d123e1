package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/message/domain"
)

// ListMessagesQuery lists the messages of a conversation, oldest first.
type ListMessagesQuery struct {
	ConversationID uint
	RequesterID    uint
	Limit          int
	Offset         int
}

// ListMessagesHandler handles list messages queries
type ListMessagesHandler struct {
	repo domain.MessageRepository
}

// NewListMessagesHandler creates a new list messages handler
func NewListMessagesHandler(repo domain.MessageRepository) *ListMessagesHandler {
	return &ListMessagesHandler{repo: repo}
}

// Handle executes the list messages query
func (h *ListMessagesHandler) Handle(q ListMessagesQuery) ([]domain.Message, error) {
	if q.ConversationID == 0 {
		return nil, fmt.Errorf("conversation is required")
	}

	conversation, err := h.repo.FindConversationByID(q.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation not found")
	}
	if !conversation.Involves(q.RequesterID) {
		return nil, fmt.Errorf("not a participant of this conversation")
	}

	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}

	messages, err := h.repo.FindMessages(q.ConversationID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
