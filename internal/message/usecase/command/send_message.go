package command

import (
	"fmt"
	"time"

	"github.com/farmgate/marketplace/internal/message/domain"
	userdomain "github.com/farmgate/marketplace/internal/user/domain"
)

// SendMessageCommand sends a message from one user to another, creating the
// conversation on first contact.
type SendMessageCommand struct {
	SenderID    uint
	RecipientID uint
	Subject     string
	Body        string
}

// SendMessageHandler handles the send message command
type SendMessageHandler struct {
	repo  domain.MessageRepository
	users userdomain.UserRepository
}

// NewSendMessageHandler creates a new send message handler
func NewSendMessageHandler(repo domain.MessageRepository, users userdomain.UserRepository) *SendMessageHandler {
	return &SendMessageHandler{repo: repo, users: users}
}

// Handle executes the send message command
func (h *SendMessageHandler) Handle(cmd SendMessageCommand) (*domain.Message, error) {
	// Validation
	if cmd.SenderID == 0 {
		return nil, fmt.Errorf("sender is required")
	}
	if cmd.RecipientID == 0 {
		return nil, fmt.Errorf("recipient is required")
	}
	if cmd.SenderID == cmd.RecipientID {
		return nil, fmt.Errorf("cannot message yourself")
	}
	if cmd.Body == "" {
		return nil, fmt.Errorf("message body is required")
	}

	sender, err := h.users.FindByID(cmd.SenderID)
	if err != nil {
		return nil, fmt.Errorf("sender not found")
	}
	recipient, err := h.users.FindByID(cmd.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("recipient not found")
	}

	// Conversations are always keyed consumer-to-farmer.
	consumerID, farmerID, err := conversationPair(sender, recipient)
	if err != nil {
		return nil, err
	}

	conversation, err := h.repo.FindConversationByPair(consumerID, farmerID)
	if err != nil {
		conversation = &domain.Conversation{
			ConsumerID: consumerID,
			FarmerID:   farmerID,
			Subject:    cmd.Subject,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := h.repo.CreateConversation(conversation); err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
	}

	message := &domain.Message{
		ConversationID: conversation.ID,
		SenderID:       cmd.SenderID,
		Body:           cmd.Body,
		CreatedAt:      time.Now(),
	}

	if err := h.repo.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := h.repo.TouchConversation(conversation.ID); err != nil {
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}

	return message, nil
}

func conversationPair(a, b *userdomain.User) (consumerID, farmerID uint, err error) {
	switch {
	case a.IsFarmer() && !b.IsFarmer():
		return b.ID, a.ID, nil
	case !a.IsFarmer() && b.IsFarmer():
		return a.ID, b.ID, nil
	default:
		return 0, 0, fmt.Errorf("conversations connect a consumer and a farmer")
	}
}
