package usecase

import (
	"context"
	"sync"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/domain/repository"
	"bookbazaar/pkg/logger"
)

// CatalogEngine owns the single live subscription to the listing collection
// and the in-memory snapshot it feeds. Snapshots are replaced whole, never
// merged. The engine is the only writer of the snapshot; readers get copies.
//
// A generation counter guards against stale writes: Close (or a restart)
// bumps the generation, so a pump goroutine still draining an old
// subscription can no longer touch the snapshot.
type CatalogEngine struct {
	listingRepo repository.ListingRepository
	notifier    SnapshotNotifier

	mu       sync.RWMutex
	snapshot []*entity.Listing
	sub      repository.ListingSubscription
	gen      uint64
}

func NewCatalogEngine(listingRepo repository.ListingRepository, notifier SnapshotNotifier) *CatalogEngine {
	return &CatalogEngine{
		listingRepo: listingRepo,
		notifier:    notifier,
	}
}

// Start opens the live subscription. Calling Start again closes the previous
// subscription first, so at most one is ever active.
func (e *CatalogEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.sub != nil {
		e.sub.Close()
		e.sub = nil
	}
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	sub, err := e.listingRepo.Subscribe(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.sub = sub
	e.mu.Unlock()

	go e.pump(gen, sub)
	return nil
}

func (e *CatalogEngine) pump(gen uint64, sub repository.ListingSubscription) {
	for snapshot := range sub.Snapshots() {
		e.apply(gen, snapshot)
	}
	if err := sub.Err(); err != nil {
		// Keep the last-known snapshot; the subscription layer owns
		// reconnection.
		logger.Error("Catalog subscription ended: %v", err)
	}
}

func (e *CatalogEngine) apply(gen uint64, listings []*entity.Listing) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.snapshot = listings
	notifier := e.notifier
	e.mu.Unlock()

	if notifier != nil {
		notifier.BroadcastSnapshot(listings)
	}
}

// Snapshot returns the current listings, newest first.
func (e *CatalogEngine) Snapshot() []*entity.Listing {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*entity.Listing, len(e.snapshot))
	copy(out, e.snapshot)
	return out
}

// Close tears down the subscription. It must be called when the owning view
// goes away; snapshots still in flight are discarded afterwards.
func (e *CatalogEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.sub != nil {
		e.sub.Close()
		e.sub = nil
	}
}

// RemoveLocal optimistically drops a listing from the snapshot ahead of the
// backend delete and returns the removed item so a failed delete can restore
// it.
func (e *CatalogEngine) RemoveLocal(id string) (*entity.Listing, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, l := range e.snapshot {
		if l.ID == id {
			removed := l
			next := make([]*entity.Listing, 0, len(e.snapshot)-1)
			next = append(next, e.snapshot[:i]...)
			next = append(next, e.snapshot[i+1:]...)
			e.snapshot = next
			return removed, true
		}
	}
	return nil, false
}

// Restore is the inverse of RemoveLocal: it reinserts the exact item at its
// position in the descending-creation-time order.
func (e *CatalogEngine) Restore(listing *entity.Listing) {
	if listing == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	at := len(e.snapshot)
	for i, l := range e.snapshot {
		if l.CreatedAt.Before(listing.CreatedAt) {
			at = i
			break
		}
	}

	next := make([]*entity.Listing, 0, len(e.snapshot)+1)
	next = append(next, e.snapshot[:at]...)
	next = append(next, listing)
	next = append(next, e.snapshot[at:]...)
	e.snapshot = next
}
