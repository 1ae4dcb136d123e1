package command

import (
	"fmt"

	"github.com/farmgate/marketplace/internal/message/domain"
)

// MarkReadCommand marks the other participant's messages as read.
type MarkReadCommand struct {
	ConversationID uint
	ReaderID       uint
}

// MarkReadHandler handles the mark read command
type MarkReadHandler struct {
	repo domain.MessageRepository
}

// NewMarkReadHandler creates a new mark read handler
func NewMarkReadHandler(repo domain.MessageRepository) *MarkReadHandler {
	return &MarkReadHandler{repo: repo}
}

// Handle executes the mark read command
func (h *MarkReadHandler) Handle(cmd MarkReadCommand) error {
	if cmd.ConversationID == 0 {
		return fmt.Errorf("conversation is required")
	}
	if cmd.ReaderID == 0 {
		return fmt.Errorf("reader is required")
	}

	conversation, err := h.repo.FindConversationByID(cmd.ConversationID)
	if err != nil {
		return fmt.Errorf("conversation not found")
	}
	if !conversation.Involves(cmd.ReaderID) {
		return fmt.Errorf("not a participant of this conversation")
	}

	if err := h.repo.MarkRead(cmd.ConversationID, cmd.ReaderID); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
