package query

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/message/domain"
)

// ListConversationsQuery lists a user's conversations, most recent first.
type ListConversationsQuery struct {
	UserID uint
	Limit  int
	Offset int
}

// ListConversationsHandler handles list conversations queries
type ListConversationsHandler struct {
	repo domain.MessageRepository
}

// NewListConversationsHandler creates a new list conversations handler
func NewListConversationsHandler(repo domain.MessageRepository) *ListConversationsHandler {
	return &ListConversationsHandler{repo: repo}
}

// Handle executes the list conversations query
func (h *ListConversationsHandler) Handle(q ListConversationsQuery) ([]domain.Conversation, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user is required")
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	conversations, err := h.repo.FindConversationsByUser(q.UserID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// UnreadCountQuery counts unread messages addressed to a user.
type UnreadCountQuery struct {
	UserID uint
}

// UnreadCountHandler handles unread count queries
type UnreadCountHandler struct {
	repo domain.MessageRepository
}

// NewUnreadCountHandler creates a new unread count handler
func NewUnreadCountHandler(repo domain.MessageRepository) *UnreadCountHandler {
	return &UnreadCountHandler{repo: repo}
}

// Handle executes the unread count query
func (h *UnreadCountHandler) Handle(q UnreadCountQuery) (int64, error) {
	if q.UserID == 0 {
		return 0, fmt.Errorf("user is required")
	}
	return h.repo.CountUnread(q.UserID)
}
