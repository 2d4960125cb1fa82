package entity

import "time"

// Conversation is created by the backend when a buyer first contacts a
// seller; this core reads it and authorizes the current user against its
// participant set.
type Conversation struct {
	ID               string            `json:"id" firestore:"id"`
	Participants     []string          `json:"participants" firestore:"participants"`
	ParticipantNames map[string]string `json:"participant_names" firestore:"participantNames"`
	BookID           string            `json:"book_id" firestore:"bookId"`
	BookTitle        string            `json:"book_title" firestore:"bookTitle"`
	CreatedAt        time.Time         `json:"created_at" firestore:"createdAt"`
	LastMessageAt    time.Time         `json:"last_message_at" firestore:"lastMessageAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterpart of userID in a two-party
// conversation, or "" if userID is not a participant.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
