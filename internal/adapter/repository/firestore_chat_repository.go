package repository

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/domain/repository"
	"bookbazaar/pkg/errors"
	"bookbazaar/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

type messageSubscription struct {
	ch     chan []*entity.ChatMessage
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func (s *messageSubscription) Messages() <-chan []*entity.ChatMessage {
	return s.ch
}

func (s *messageSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *messageSubscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *messageSubscription) Close() {
	s.cancel()
}

// SubscribeMessages opens a snapshot listener on one conversation's messages
// subcollection, ordered ascending so the view can render oldest first.
func (r *firestoreChatRepository) SubscribeMessages(ctx context.Context, conversationID string) (repository.MessageSubscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	sub := &messageSubscription{
		ch:     make(chan []*entity.ChatMessage, 1),
		cancel: cancel,
	}

	snapIter := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		Snapshots(ctx)

	go func() {
		defer close(sub.ch)
		defer snapIter.Stop()

		for {
			snap, err := snapIter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("Message stream failed for conversation %s: %v", conversationID, err)
				sub.setErr(err)
				return
			}

			messages, err := collectMessages(snap.Documents)
			if err != nil {
				logger.Error("Failed to read message snapshot for conversation %s: %v", conversationID, err)
				sub.setErr(err)
				return
			}

			select {
			case sub.ch <- messages:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}

func collectMessages(iter *firestore.DocumentIterator) ([]*entity.ChatMessage, error) {
	var messages []*entity.ChatMessage
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var message entity.ChatMessage
		if err := doc.DataTo(&message); err != nil {
			return nil, err
		}
		messages = append(messages, &message)
	}
	return messages, nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, conversationID string) ([]*entity.ChatMessage, error) {
	iter := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)

	messages, err := collectMessages(iter)
	if err != nil {
		return nil, errors.Internal("Failed to list messages", err)
	}

	return messages, nil
}

func (r *firestoreChatRepository) SendMessage(ctx context.Context, message *entity.ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("conversations").Doc(message.ConversationID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Unavailable("Failed to send message", err)
	}

	_, err = r.client.Collection("conversations").Doc(message.ConversationID).Update(ctx, []firestore.Update{
		{Path: "lastMessageAt", Value: message.CreatedAt},
	})
	if err != nil {
		// The message itself is stored; a stale lastMessageAt only affects
		// conversation ordering.
		logger.Warn("Failed to update lastMessageAt for conversation %s: %v", message.ConversationID, err)
	}

	return nil
}
