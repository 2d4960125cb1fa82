package repository

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/domain/repository"
	"bookbazaar/pkg/errors"
	"bookbazaar/pkg/logger"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

type listingSubscription struct {
	ch     chan []*entity.Listing
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func (s *listingSubscription) Snapshots() <-chan []*entity.Listing {
	return s.ch
}

func (s *listingSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *listingSubscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *listingSubscription) Close() {
	s.cancel()
}

// Subscribe opens a snapshot listener on the listings collection ordered by
// creation time descending. Every change event is delivered as a complete
// snapshot; the Firestore client handles reconnection internally.
func (r *firestoreListingRepository) Subscribe(ctx context.Context) (repository.ListingSubscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	sub := &listingSubscription{
		ch:     make(chan []*entity.Listing, 1),
		cancel: cancel,
	}

	snapIter := r.client.Collection("listings").
		OrderBy("createdAt", firestore.Desc).
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
				logger.Error("Listing snapshot stream failed: %v", err)
				sub.setErr(err)
				return
			}

			listings, err := collectListings(snap.Documents)
			if err != nil {
				logger.Error("Failed to read listing snapshot: %v", err)
				sub.setErr(err)
				return
			}

			select {
			case sub.ch <- listings:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}

func collectListings(iter *firestore.DocumentIterator) ([]*entity.Listing, error) {
	var listings []*entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, err
		}
		listings = append(listings, &listing)
	}
	return listings, nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	iter := r.client.Collection("listings").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	listings, err := collectListings(iter)
	if err != nil {
		return nil, errors.Internal("Failed to list seller listings", err)
	}

	return listings, nil
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Unavailable("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Unavailable("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Unavailable("Failed to delete listing", err)
	}

	return nil
}
