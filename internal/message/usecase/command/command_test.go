package command_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/farmgate/marketplace/internal/message/domain"
	"github.com/farmgate/marketplace/internal/message/usecase/command"
	"github.com/farmgate/marketplace/internal/message/usecase/query"
	userdomain "github.com/farmgate/marketplace/internal/user/domain"
)

// fakeMessageRepo is an in-memory MessageRepository for handler tests.
type fakeMessageRepo struct {
	nextConvID    uint
	nextMsgID     uint
	conversations map[uint]*domain.Conversation
	messages      []domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		nextConvID:    1,
		nextMsgID:     1,
		conversations: map[uint]*domain.Conversation{},
	}
}

func (f *fakeMessageRepo) CreateConversation(c *domain.Conversation) error {
	c.ID = f.nextConvID
	f.nextConvID++
	cp := *c
	f.conversations[c.ID] = &cp
	return nil
}

func (f *fakeMessageRepo) FindConversationByID(id uint) (*domain.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, fmt.Errorf("conversation not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeMessageRepo) FindConversationByPair(consumerID, farmerID uint) (*domain.Conversation, error) {
	for _, c := range f.conversations {
		if c.ConsumerID == consumerID && c.FarmerID == farmerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("conversation not found")
}

func (f *fakeMessageRepo) FindConversationsByUser(userID uint, limit, offset int) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, c := range f.conversations {
		if c.Involves(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) TouchConversation(id uint) error {
	c, ok := f.conversations[id]
	if !ok {
		return fmt.Errorf("conversation not found")
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (f *fakeMessageRepo) CreateMessage(m *domain.Message) error {
	m.ID = f.nextMsgID
	f.nextMsgID++
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeMessageRepo) FindMessages(conversationID uint, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(conversationID, readerID uint) error {
	now := time.Now()
	for i := range f.messages {
		m := &f.messages[i]
		if m.ConversationID == conversationID && m.SenderID != readerID && m.ReadAt == nil {
			m.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeMessageRepo) CountUnread(userID uint) (int64, error) {
	var n int64
	for _, m := range f.messages {
		conv, ok := f.conversations[m.ConversationID]
		if !ok || !conv.Involves(userID) {
			continue
		}
		if m.SenderID != userID && m.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

// fakeUserRepo provides just enough of UserRepository for messaging tests.
type fakeUserRepo struct {
	users map[uint]*userdomain.User
}

func (f *fakeUserRepo) FindByID(id uint) (*userdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) Create(*userdomain.User) error                    { return nil }
func (f *fakeUserRepo) FindByUsername(string) (*userdomain.User, error)  { return nil, fmt.Errorf("x") }
func (f *fakeUserRepo) FindByEmail(string) (*userdomain.User, error)     { return nil, fmt.Errorf("x") }
func (f *fakeUserRepo) FindAll(int, int) ([]userdomain.User, error)      { return nil, nil }
func (f *fakeUserRepo) FindByRole(string, int, int) ([]userdomain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(*userdomain.User) error           { return nil }
func (f *fakeUserRepo) Delete(uint) error                       { return nil }
func (f *fakeUserRepo) Count() (int64, error)                   { return 0, nil }
func (f *fakeUserRepo) CountByRole(string) (int64, error)       { return 0, nil }
func (f *fakeUserRepo) CountActive() (int64, error)             { return 0, nil }

func marketplaceUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*userdomain.User{
		1: {ID: 1, Username: "asha", Role: userdomain.RoleConsumer},
		2: {ID: 2, Username: "ramesh", Role: userdomain.RoleFarmer},
		3: {ID: 3, Username: "meena", Role: userdomain.RoleConsumer},
	}}
}

func TestSendMessageCreatesConversation(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := command.NewSendMessageHandler(repo, marketplaceUsers())

	msg, err := handler.Handle(command.SendMessageCommand{
		SenderID:    1,
		RecipientID: 2,
		Subject:     "Tomatoes",
		Body:        "Are the tomatoes from this week's harvest?",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	conv, err := repo.FindConversationByID(msg.ConversationID)
	if err != nil {
		t.Fatalf("conversation not created: %v", err)
	}
	if conv.ConsumerID != 1 || conv.FarmerID != 2 {
		t.Errorf("conversation pair = (%d, %d), want (1, 2)", conv.ConsumerID, conv.FarmerID)
	}
}

func TestSendMessageReusesConversation(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := command.NewSendMessageHandler(repo, marketplaceUsers())

	first, err := handler.Handle(command.SendMessageCommand{
		SenderID: 1, RecipientID: 2, Body: "First",
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}

	// Reply from the farmer lands in the same conversation.
	reply, err := handler.Handle(command.SendMessageCommand{
		SenderID: 2, RecipientID: 1, Body: "Reply",
	})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}

	if reply.ConversationID != first.ConversationID {
		t.Errorf("reply conversation = %d, want %d", reply.ConversationID, first.ConversationID)
	}
}

func TestSendMessageRejectsConsumerPair(t *testing.T) {
	repo := newFakeMessageRepo()
	handler := command.NewSendMessageHandler(repo, marketplaceUsers())

	if _, err := handler.Handle(command.SendMessageCommand{
		SenderID: 1, RecipientID: 3, Body: "Hi",
	}); err == nil {
		t.Fatal("expected error for consumer-to-consumer message")
	}
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	repo := newFakeMessageRepo()
	send := command.NewSendMessageHandler(repo, marketplaceUsers())
	markRead := command.NewMarkReadHandler(repo)
	unread := query.NewUnreadCountHandler(repo)

	msg, err := send.Handle(command.SendMessageCommand{
		SenderID: 1, RecipientID: 2, Body: "Hello",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	count, err := unread.Handle(query.UnreadCountQuery{UserID: 2})
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if count != 1 {
		t.Fatalf("unread = %d, want 1", count)
	}

	if err := markRead.Handle(command.MarkReadCommand{ConversationID: msg.ConversationID, ReaderID: 2}); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	count, err = unread.Handle(query.UnreadCountQuery{UserID: 2})
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if count != 0 {
		t.Errorf("unread after read = %d, want 0", count)
	}
}

func TestMarkReadRejectsOutsider(t *testing.T) {
	repo := newFakeMessageRepo()
	send := command.NewSendMessageHandler(repo, marketplaceUsers())
	markRead := command.NewMarkReadHandler(repo)

	msg, err := send.Handle(command.SendMessageCommand{
		SenderID: 1, RecipientID: 2, Body: "Hello",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := markRead.Handle(command.MarkReadCommand{ConversationID: msg.ConversationID, ReaderID: 3}); err == nil {
		t.Fatal("expected participant check to fail")
	}
}
