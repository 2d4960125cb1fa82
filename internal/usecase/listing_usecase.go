package usecase

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/domain/repository"
	"bookbazaar/pkg/errors"
	"bookbazaar/pkg/logger"
)

// MaxActiveListings caps how many listings one seller may have at a time.
const MaxActiveListings = 10

// 11 digits, valid national mobile prefix. Enforced client-side only; the
// backend does not recheck either this or the listing quota, which is a
// known gap if clients are bypassed. Both checks live here so a backend
// rule could mirror them without touching callers.
var mobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	images      ImageStore
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	images ImageStore,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		images:      images,
	}
}

type ListingDraft struct {
	Title        string
	Author       string
	Subject      string
	Condition    entity.Condition
	Price        int64
	ContactPhone string
	Description  string
	Location     entity.LocationInfo
}

type ImageUpload struct {
	Reader      io.Reader
	ContentType string
}

// validateDraft applies the field rules in a fixed order so the surfaced
// message is deterministic for a given invalid draft. Nothing past the first
// failing rule runs.
func validateDraft(draft ListingDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return errors.Validation("Title is required")
	}
	if draft.Subject == "" {
		return errors.Validation("Please select a category")
	}
	if !draft.Condition.Valid() {
		return errors.Validation("Please select a condition")
	}
	if draft.Condition != entity.ConditionDonation && draft.Price <= 0 {
		return errors.Validation("Price must be a positive number")
	}
	if !draft.Location.Complete() {
		return errors.Validation("Please select a complete location")
	}
	if !mobilePattern.MatchString(draft.ContactPhone) {
		return errors.Validation("Please enter a valid mobile number")
	}
	return nil
}

// CreateListing checks the seller's quota, validates the draft, uploads the
// image if one was supplied, and creates the record with the image ref
// attached. Quota runs first: it is the cheapest check and the most likely
// to block.
func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, draft ListingDraft, image *ImageUpload) (*entity.Listing, error) {
	existing, err := uc.listingRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= MaxActiveListings {
		return nil, errors.Validation("You already have the maximum of 10 active listings")
	}

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid seller", err)
	}

	imageURL := ""
	if image != nil {
		imageURL, err = uc.images.UploadImage(ctx, image.Reader, image.ContentType)
		if err != nil {
			return nil, errors.Unavailable("Failed to upload image", err)
		}
	}

	listing := &entity.Listing{
		Title:        draft.Title,
		Author:       draft.Author,
		Subject:      draft.Subject,
		Condition:    draft.Condition,
		Price:        draft.Price,
		ContactPhone: draft.ContactPhone,
		Description:  draft.Description,
		SellerID:     sellerID,
		SellerName:   seller.DisplayName,
		Location:     draft.Location,
		ImageURL:     imageURL,
		CreatedAt:    time.Now(),
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		if imageURL != "" {
			if delErr := uc.images.DeleteImage(ctx, imageURL); delErr != nil {
				logger.Warn("Failed to delete image %s after create failure: %v", imageURL, delErr)
			}
		}
		return nil, err
	}

	return listing, nil
}

// UpdateListing revalidates the draft and swaps the image if a new one was
// supplied. The old image is deleted only after the new one is confirmed
// stored and the record points at it, so the listing never has a dangling
// image ref. The quota is not rechecked on edits.
func (uc *ListingUseCase) UpdateListing(ctx context.Context, id, sellerID string, draft ListingDraft, image *ImageUpload) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	oldImageURL := ""
	if image != nil {
		newImageURL, err := uc.images.UploadImage(ctx, image.Reader, image.ContentType)
		if err != nil {
			return nil, errors.Unavailable("Failed to upload image", err)
		}
		oldImageURL = listing.ImageURL
		listing.ImageURL = newImageURL
	}

	listing.Title = draft.Title
	listing.Author = draft.Author
	listing.Subject = draft.Subject
	listing.Condition = draft.Condition
	listing.Price = draft.Price
	listing.ContactPhone = draft.ContactPhone
	listing.Description = draft.Description
	listing.Location = draft.Location

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	if oldImageURL != "" {
		if err := uc.images.DeleteImage(ctx, oldImageURL); err != nil {
			// Orphaned blob, nothing user-visible.
			logger.Warn("Failed to delete replaced image %s: %v", oldImageURL, err)
		}
	}

	return listing, nil
}

// DeleteListing removes the listing optimistically from the engine's local
// snapshot, then issues the backend delete. If the backend call fails, the
// exact removed item is restored and the error surfaced; the forward and
// inverse effects live side by side here on purpose.
func (uc *ListingUseCase) DeleteListing(ctx context.Context, id, sellerID string, engine *CatalogEngine) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if listing.SellerID != sellerID {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	var removed *entity.Listing
	if engine != nil {
		removed, _ = engine.RemoveLocal(id)
	}

	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		if engine != nil && removed != nil {
			engine.Restore(removed)
		}
		return err
	}

	if listing.ImageURL != "" {
		if err := uc.images.DeleteImage(ctx, listing.ImageURL); err != nil {
			logger.Warn("Failed to delete image for listing %s: %v", id, err)
		}
	}

	return nil
}

func (uc *ListingUseCase) GetListingByID(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *ListingUseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	return uc.listingRepo.ListBySeller(ctx, sellerID)
}
