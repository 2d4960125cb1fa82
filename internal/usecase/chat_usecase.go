package usecase

import (
	"context"
	"strings"
	"sync"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/domain/repository"
	"bookbazaar/pkg/errors"
	"bookbazaar/pkg/logger"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	notifier MessageNotifier
}

func NewChatUseCase(chatRepo repository.ChatRepository, notifier MessageNotifier) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		notifier: notifier,
	}
}

// GetConversation fetches conversation metadata and authorizes the user
// against its participant set. This mirrors the backend's own access rule;
// it is a UX check, not the security boundary.
func (uc *ChatUseCase) GetConversation(ctx context.Context, conversationID, userID string) (*entity.Conversation, error) {
	conversation, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	return conversation, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, conversationID, userID string) ([]*entity.ChatMessage, error) {
	if _, err := uc.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	return uc.chatRepo.ListMessages(ctx, conversationID)
}

// SendMessage stores a message and pushes it to the other participant's
// live connection.
func (uc *ChatUseCase) SendMessage(ctx context.Context, conversationID, senderID, text string) (*entity.ChatMessage, error) {
	conversation, err := uc.GetConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	return uc.send(ctx, conversation, senderID, text)
}

func (uc *ChatUseCase) send(ctx context.Context, conversation *entity.Conversation, senderID, text string) (*entity.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Validation("Message text is required")
	}

	message := &entity.ChatMessage{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Text:           text,
	}

	if err := uc.chatRepo.SendMessage(ctx, message); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		if other := conversation.OtherParticipant(senderID); other != "" {
			uc.notifier.NotifyMessage(other, message)
		}
	}

	return message, nil
}

// OpenConversation runs the conversation view's loading phase: fetch
// metadata, authorize, then open the message stream. The returned session is
// the active state machine; callers must Close it when the conversation id
// changes or the view goes away.
func (uc *ChatUseCase) OpenConversation(ctx context.Context, conversationID, userID string) (*ConversationSession, error) {
	conversation, err := uc.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	sub, err := uc.chatRepo.SubscribeMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	session := &ConversationSession{
		uc:           uc,
		conversation: conversation,
		userID:       userID,
		sub:          sub,
	}

	go session.pump()
	return session, nil
}

// ConversationSession is one conversation view instance. A different
// conversation id means a different session; messages never leak across.
type ConversationSession struct {
	uc           *ChatUseCase
	conversation *entity.Conversation
	userID       string
	sub          repository.MessageSubscription

	mu       sync.Mutex
	messages []*entity.ChatMessage
	draft    string
	closed   bool
	onUpdate func([]*entity.ChatMessage)
}

func (s *ConversationSession) pump() {
	for messages := range s.sub.Messages() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.messages = messages
		cb := s.onUpdate
		s.mu.Unlock()

		if cb != nil {
			cb(messages)
		}
	}
	if err := s.sub.Err(); err != nil {
		logger.Error("Message stream for conversation %s ended: %v", s.conversation.ID, err)
	}
}

func (s *ConversationSession) Conversation() *entity.Conversation {
	return s.conversation
}

// Messages returns the current list, oldest first.
func (s *ConversationSession) Messages() []*entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetOnUpdate installs a callback invoked on every message-list change,
// used to push updates over the live connection. The pump starts before any
// callback exists, so messages already applied are replayed to the new
// callback immediately; without this the initial history snapshot can land
// in the registration gap and never reach the client.
func (s *ConversationSession) SetOnUpdate(cb func([]*entity.ChatMessage)) {
	s.mu.Lock()
	s.onUpdate = cb
	messages := make([]*entity.ChatMessage, len(s.messages))
	copy(messages, s.messages)
	s.mu.Unlock()

	if cb != nil && len(messages) > 0 {
		cb(messages)
	}
}

func (s *ConversationSession) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

func (s *ConversationSession) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Send submits the current draft. The draft is cleared before the backend
// call (optimistic), and put back exactly as typed if the call fails; the
// user resubmits manually, there is no retry.
func (s *ConversationSession) Send(ctx context.Context) error {
	s.mu.Lock()
	text := s.draft
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return errors.Validation("Message text is required")
	}
	s.draft = ""
	s.mu.Unlock()

	if _, err := s.uc.send(ctx, s.conversation, s.userID, text); err != nil {
		s.mu.Lock()
		s.draft = text
		s.mu.Unlock()
		return err
	}

	return nil
}

// Close ends this session; late snapshots from the subscription are ignored.
func (s *ConversationSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.sub.Close()
}
