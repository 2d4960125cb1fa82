package entity

import (
	"time"
)

// UserProfile is owned by the auth collaborator; this core only reads it.
type UserProfile struct {
	ID          string    `json:"id" firestore:"id"`
	DisplayName string    `json:"display_name" firestore:"displayName"`
	Username    string    `json:"username,omitempty" firestore:"username,omitempty"`
	Email       string    `json:"email" firestore:"email"`
	PhotoURL    string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Phone       string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
