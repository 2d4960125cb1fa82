package entity

import "time"

// ChatMessage is append-only; there are no edits or deletes, and rendering
// order is createdAt ascending.
type ChatMessage struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Text           string    `json:"text" firestore:"text"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
