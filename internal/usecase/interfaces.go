package usecase

import (
	"context"
	"io"

	"bookbazaar/internal/domain/entity"
)

// ImageStore is the blob storage collaborator. Implemented by
// infrastructure/storage.CloudStorageClient.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, contentType string) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

// SnapshotNotifier is told whenever the catalog engine replaces its
// snapshot. Implemented by infrastructure/websocket.Manager.
type SnapshotNotifier interface {
	BroadcastSnapshot(listings []*entity.Listing)
}

// MessageNotifier pushes a stored chat message to its recipient.
// Implemented by infrastructure/websocket.Manager.
type MessageNotifier interface {
	NotifyMessage(userID string, message *entity.ChatMessage)
}
