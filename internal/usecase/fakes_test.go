package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/domain/repository"
	"bookbazaar/pkg/errors"
)

type fakeListingSub struct {
	ch     chan []*entity.Listing
	mu     sync.Mutex
	err    error
	closed bool
}

func newFakeListingSub() *fakeListingSub {
	return &fakeListingSub{ch: make(chan []*entity.Listing, 8)}
}

func (s *fakeListingSub) Snapshots() <-chan []*entity.Listing { return s.ch }

func (s *fakeListingSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fakeListingSub) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

func (s *fakeListingSub) push(listings []*entity.Listing) { s.ch <- listings }

func (s *fakeListingSub) fail(err error) {
	s.mu.Lock()
	s.err = err
	closed := s.closed
	s.closed = true
	s.mu.Unlock()
	if !closed {
		close(s.ch)
	}
}

type fakeListingRepo struct {
	mu        sync.Mutex
	listings  map[string]*entity.Listing
	sub       *fakeListingSub
	nextID    int
	deleteErr error
	createErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		listings: make(map[string]*entity.Listing),
		sub:      newFakeListingSub(),
	}
}

func (r *fakeListingRepo) Subscribe(ctx context.Context) (repository.ListingSubscription, error) {
	return r.sub, nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.listings[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, errors.NotFound("Listing", nil)
}

func (r *fakeListingRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.listings {
		if l.SellerID == sellerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.ID == "" {
		r.nextID++
		listing.ID = fmt.Sprintf("listing-%d", r.nextID)
	}
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listings, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.UserProfile
}

func newFakeUserRepo(users ...*entity.UserProfile) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.UserProfile)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

type fakeImageStore struct {
	mu        sync.Mutex
	ops       []string
	nextID    int
	uploadErr error
}

func (s *fakeImageStore) UploadImage(ctx context.Context, file io.Reader, contentType string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	url := fmt.Sprintf("https://img.example/%d", s.nextID)
	s.ops = append(s.ops, "upload:"+url)
	return url, nil
}

func (s *fakeImageStore) DeleteImage(ctx context.Context, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "delete:"+imageURL)
	return nil
}

type fakeMessageSub struct {
	ch     chan []*entity.ChatMessage
	mu     sync.Mutex
	err    error
	closed bool
}

func newFakeMessageSub() *fakeMessageSub {
	return &fakeMessageSub{ch: make(chan []*entity.ChatMessage, 8)}
}

func (s *fakeMessageSub) Messages() <-chan []*entity.ChatMessage { return s.ch }

func (s *fakeMessageSub) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fakeMessageSub) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

func (s *fakeMessageSub) push(messages []*entity.ChatMessage) { s.ch <- messages }

type fakeChatRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.ChatMessage
	subs          map[string]*fakeMessageSub
	sendErr       error
}

func newFakeChatRepo(conversations ...*entity.Conversation) *fakeChatRepo {
	r := &fakeChatRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.ChatMessage),
		subs:          make(map[string]*fakeMessageSub),
	}
	for _, c := range conversations {
		r.conversations[c.ID] = c
	}
	return r
}

func (r *fakeChatRepo) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conversations[id]; ok {
		return c, nil
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *fakeChatRepo) SubscribeMessages(ctx context.Context, conversationID string) (repository.MessageSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := newFakeMessageSub()
	r.subs[conversationID] = sub
	return sub, nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, conversationID string) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.ChatMessage(nil), r.messages[conversationID]...), nil
}

func (r *fakeChatRepo) SendMessage(ctx context.Context, message *entity.ChatMessage) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = fmt.Sprintf("message-%d", len(r.messages[message.ConversationID])+1)
	}
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], message)
	return nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	broadcasts int
	notified   []string
}

func (n *fakeNotifier) BroadcastSnapshot(listings []*entity.Listing) {
	n.mu.Lock()
	n.broadcasts++
	n.mu.Unlock()
}

func (n *fakeNotifier) NotifyMessage(userID string, message *entity.ChatMessage) {
	n.mu.Lock()
	n.notified = append(n.notified, userID)
	n.mu.Unlock()
}

func (n *fakeNotifier) broadcastCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.broadcasts
}
