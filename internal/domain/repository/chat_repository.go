package repository

import (
	"context"

	"bookbazaar/internal/domain/entity"
)

// MessageSubscription streams the full ordered message list of one
// conversation (createdAt ascending). Same ownership rules as
// ListingSubscription: the consuming session must Close it.
type MessageSubscription interface {
	Messages() <-chan []*entity.ChatMessage
	Err() error
	Close()
}

type ChatRepository interface {
	GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error)
	SubscribeMessages(ctx context.Context, conversationID string) (MessageSubscription, error)
	ListMessages(ctx context.Context, conversationID string) ([]*entity.ChatMessage, error)
	SendMessage(ctx context.Context, message *entity.ChatMessage) error
}
