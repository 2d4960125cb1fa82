package repository

import (
	"context"

	"bookbazaar/internal/domain/entity"
)

// ListingSubscription is a live feed of full catalog snapshots, newest
// listing first. The owning view must call Close when it is torn down;
// after Close the snapshot channel is closed and no further values arrive.
type ListingSubscription interface {
	// Snapshots delivers complete replacement snapshots in the order the
	// backend produced them. The engine never merges incrementally.
	Snapshots() <-chan []*entity.Listing
	// Err reports why the stream ended, nil after a plain Close.
	Err() error
	Close()
}

type ListingRepository interface {
	Subscribe(ctx context.Context) (ListingSubscription, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error)
	Create(ctx context.Context, listing *entity.Listing) error
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error
}
