package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/pkg/errors"
)

func validDraft() ListingDraft {
	return ListingDraft{
		Title:        "Introduction to Algorithms",
		Author:       "Cormen",
		Subject:      "computer_science",
		Condition:    entity.ConditionGood,
		Price:        35,
		ContactPhone: "13812345678",
		Description:  "Third edition, some notes in margins",
		Location: entity.LocationInfo{
			RegionID: "gd", RegionName: "Guangdong",
			SubregionID: "gd-sz", SubregionName: "Shenzhen",
			LocalityID: "gd-sz-ns", LocalityName: "Nanshan",
		},
	}
}

func newListingFixture() (*ListingUseCase, *fakeListingRepo, *fakeImageStore) {
	repo := newFakeListingRepo()
	images := &fakeImageStore{}
	users := newFakeUserRepo(&entity.UserProfile{ID: "seller-1", DisplayName: "Wei"})
	return NewListingUseCase(repo, users, images), repo, images
}

func seedSellerListings(repo *fakeListingRepo, sellerID string, n int) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("seed-%d", i)
		repo.listings[id] = &entity.Listing{ID: id, SellerID: sellerID}
	}
}

func TestCreateListing(t *testing.T) {
	uc, repo, _ := newListingFixture()

	listing, err := uc.CreateListing(context.Background(), "seller-1", validDraft(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, listing.ID)
	assert.Equal(t, "seller-1", listing.SellerID)
	assert.Equal(t, "Wei", listing.SellerName)
	assert.False(t, listing.CreatedAt.IsZero())

	stored, err := repo.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.Title, stored.Title)
}

func TestCreateListingAttachesUploadedImage(t *testing.T) {
	uc, _, images := newListingFixture()

	image := &ImageUpload{Reader: strings.NewReader("jpeg bytes"), ContentType: "image/jpeg"}
	listing, err := uc.CreateListing(context.Background(), "seller-1", validDraft(), image)
	require.NoError(t, err)

	assert.Equal(t, "https://img.example/1", listing.ImageURL)
	assert.Equal(t, []string{"upload:https://img.example/1"}, images.ops)
}

func TestCreateListingFailureRemovesUploadedImage(t *testing.T) {
	uc, repo, images := newListingFixture()
	repo.createErr = errors.Unavailable("backend down", nil)

	image := &ImageUpload{Reader: strings.NewReader("jpeg bytes"), ContentType: "image/jpeg"}
	_, err := uc.CreateListing(context.Background(), "seller-1", validDraft(), image)
	require.Error(t, err)

	// The blob uploaded ahead of the failed create does not linger.
	assert.Equal(t, []string{"upload:https://img.example/1", "delete:https://img.example/1"}, images.ops)
}

func TestCreateListingQuota(t *testing.T) {
	uc, repo, _ := newListingFixture()
	seedSellerListings(repo, "seller-1", 9)

	// Ninth existing listing still leaves room for one more.
	_, err := uc.CreateListing(context.Background(), "seller-1", validDraft(), nil)
	require.NoError(t, err)

	// The tenth fills the quota; the next create is rejected before any
	// backend effect.
	_, err = uc.CreateListing(context.Background(), "seller-1", validDraft(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Contains(t, err.Error(), "maximum")
}

func TestCreateListingValidationOrder(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*ListingDraft)
		message string
	}{
		{"missing title", func(d *ListingDraft) { d.Title = "  " }, "Title is required"},
		{"missing category", func(d *ListingDraft) { d.Subject = "" }, "Please select a category"},
		{"bad condition", func(d *ListingDraft) { d.Condition = "mint" }, "Please select a condition"},
		{"zero price", func(d *ListingDraft) { d.Price = 0 }, "Price must be a positive number"},
		{"partial location", func(d *ListingDraft) { d.Location.LocalityID = "" }, "Please select a complete location"},
		{"bad phone", func(d *ListingDraft) { d.ContactPhone = "12345" }, "Please enter a valid mobile number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, _ := newListingFixture()
			draft := validDraft()
			tc.mutate(&draft)

			_, err := uc.CreateListing(ctx, "seller-1", draft, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}

	// With several fields invalid at once, the earliest rule in the fixed
	// order decides the message.
	uc, _, _ := newListingFixture()
	draft := validDraft()
	draft.Title = ""
	draft.ContactPhone = "12345"
	_, err := uc.CreateListing(ctx, "seller-1", draft, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title is required")
}

func TestCreateDonationListingSkipsPriceRule(t *testing.T) {
	uc, _, _ := newListingFixture()

	draft := validDraft()
	draft.Condition = entity.ConditionDonation
	draft.Price = 0

	listing, err := uc.CreateListing(context.Background(), "seller-1", draft, nil)
	require.NoError(t, err)
	assert.True(t, listing.IsFree())
}

func TestUpdateListingOwnership(t *testing.T) {
	uc, repo, _ := newListingFixture()
	repo.listings["l1"] = &entity.Listing{ID: "l1", SellerID: "someone-else"}

	_, err := uc.UpdateListing(context.Background(), "l1", "seller-1", validDraft(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestUpdateListingSkipsQuota(t *testing.T) {
	uc, repo, _ := newListingFixture()
	seedSellerListings(repo, "seller-1", 10)

	_, err := uc.UpdateListing(context.Background(), "seed-0", "seller-1", validDraft(), nil)
	require.NoError(t, err)
}

func TestUpdateListingReplacesImageNewBeforeOld(t *testing.T) {
	uc, repo, images := newListingFixture()
	repo.listings["l1"] = &entity.Listing{ID: "l1", SellerID: "seller-1", ImageURL: "https://img.example/old"}

	image := &ImageUpload{Reader: strings.NewReader("png bytes"), ContentType: "image/png"}
	listing, err := uc.UpdateListing(context.Background(), "l1", "seller-1", validDraft(), image)
	require.NoError(t, err)

	assert.Equal(t, "https://img.example/1", listing.ImageURL)
	// The replacement is stored before the old image goes away, so there is
	// no window with no image at all.
	assert.Equal(t, []string{"upload:https://img.example/1", "delete:https://img.example/old"}, images.ops)
}

func TestDeleteListingOptimisticRollback(t *testing.T) {
	uc, repo, _ := newListingFixture()

	target := &entity.Listing{
		ID:        "l1",
		SellerID:  "seller-1",
		Title:     "Gone With the Wind",
		Price:     12,
		CreatedAt: time.Date(2024, 3, 1, 11, 58, 30, 0, time.UTC),
	}
	repo.listings["l1"] = target

	engine := NewCatalogEngine(repo, nil)
	snapshot := makeSnapshot(3)
	snapshot = append(snapshot[:2], append([]*entity.Listing{target}, snapshot[2:]...)...)
	engine.apply(0, snapshot)

	repo.deleteErr = errors.Unavailable("backend down", nil)
	err := uc.DeleteListing(context.Background(), "l1", "seller-1", engine)
	require.Error(t, err)

	// The exact pre-delete item is back, in order.
	got := engine.Snapshot()
	require.Len(t, got, 4)
	assert.Equal(t, target, got[2])

	// Once the backend recovers the optimistic removal sticks.
	repo.deleteErr = nil
	require.NoError(t, uc.DeleteListing(context.Background(), "l1", "seller-1", engine))
	assert.Len(t, engine.Snapshot(), 3)
	_, err = repo.GetByID(context.Background(), "l1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeleteListingRemovesImage(t *testing.T) {
	uc, repo, images := newListingFixture()
	repo.listings["l1"] = &entity.Listing{ID: "l1", SellerID: "seller-1", ImageURL: "https://img.example/cover"}

	require.NoError(t, uc.DeleteListing(context.Background(), "l1", "seller-1", nil))
	assert.Equal(t, []string{"delete:https://img.example/cover"}, images.ops)
}
