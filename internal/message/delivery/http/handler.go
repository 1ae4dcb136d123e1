package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/farmgate/marketplace/internal/message/domain"
	"github.com/farmgate/marketplace/internal/message/usecase/command"
	"github.com/farmgate/marketplace/internal/message/usecase/query"
	userhttp "github.com/farmgate/marketplace/internal/user/delivery/http"
	userdomain "github.com/farmgate/marketplace/internal/user/domain"
)

// MessageHandler handles HTTP requests for conversations and messages.
// It shares the user service binary and its auth middleware.
type MessageHandler struct {
	sendHandler         *command.SendMessageHandler
	markReadHandler     *command.MarkReadHandler
	listConvsHandler    *query.ListConversationsHandler
	listMessagesHandler *query.ListMessagesHandler
	unreadHandler       *query.UnreadCountHandler

	messagesSent prometheus.Counter
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(repo domain.MessageRepository, users userdomain.UserRepository) *MessageHandler {
	messagesSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_service_messages_sent_total",
		Help: "Total number of marketplace messages sent",
	})
	prometheus.MustRegister(messagesSent)

	return &MessageHandler{
		sendHandler:         command.NewSendMessageHandler(repo, users),
		markReadHandler:     command.NewMarkReadHandler(repo),
		listConvsHandler:    query.NewListConversationsHandler(repo),
		listMessagesHandler: query.NewListMessagesHandler(repo),
		unreadHandler:       query.NewUnreadCountHandler(repo),
		messagesSent:        messagesSent,
	}
}

// SendMessage handles POST /messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		RecipientID uint   `json:"recipient_id"`
		Subject     string `json:"subject"`
		Body        string `json:"body"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.SendMessageCommand{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}

	message, err := h.sendHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.messagesSent.Inc()
	h.respondJSON(w, http.StatusCreated, message)
}

// ListConversations handles GET /conversations
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	conversations, err := h.listConvsHandler.Handle(query.ListConversationsQuery{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, conversations)
}

// ListMessages handles GET /conversations/{id}/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	messages, err := h.listMessagesHandler.Handle(query.ListMessagesQuery{
		ConversationID: uint(id),
		RequesterID:    userID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		h.respondError(w, http.StatusForbidden, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, messages)
}

// MarkRead handles POST /conversations/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	cmd := command.MarkReadCommand{
		ConversationID: uint(id),
		ReaderID:       userID,
	}

	if err := h.markReadHandler.Handle(cmd); err != nil {
		h.respondError(w, http.StatusForbidden, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Conversation marked as read"})
}

// UnreadCount handles GET /messages/unread
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	count, err := h.unreadHandler.Handle(query.UnreadCountQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

// respondJSON sends a JSON response
func (h *MessageHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *MessageHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all messaging routes
func (h *MessageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/messages", userhttp.AuthMiddleware(h.SendMessage)).Methods("POST")
	router.HandleFunc("/messages/unread", userhttp.AuthMiddleware(h.UnreadCount)).Methods("GET")
	router.HandleFunc("/conversations", userhttp.AuthMiddleware(h.ListConversations)).Methods("GET")
	router.HandleFunc("/conversations/{id}/messages", userhttp.AuthMiddleware(h.ListMessages)).Methods("GET")
	router.HandleFunc("/conversations/{id}/read", userhttp.AuthMiddleware(h.MarkRead)).Methods("POST")
}
