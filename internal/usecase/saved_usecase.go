package usecase

import (
	"sort"

	"bookbazaar/internal/domain/repository"
)

// SavedUseCase manages the user's bookmarked listing ids. The set lives
// only on this device and is never reconciled with the backend.
type SavedUseCase struct {
	savedRepo repository.SavedRepository
}

func NewSavedUseCase(savedRepo repository.SavedRepository) *SavedUseCase {
	return &SavedUseCase{
		savedRepo: savedRepo,
	}
}

// Toggle flips a listing's bookmark and reports the new state.
func (uc *SavedUseCase) Toggle(listingID string) (bool, error) {
	ids, err := uc.savedRepo.Read()
	if err != nil {
		return false, err
	}

	_, saved := ids[listingID]
	if saved {
		delete(ids, listingID)
	} else {
		ids[listingID] = struct{}{}
	}

	if err := uc.savedRepo.Write(ids); err != nil {
		return saved, err
	}

	return !saved, nil
}

func (uc *SavedUseCase) IsSaved(listingID string) (bool, error) {
	ids, err := uc.savedRepo.Read()
	if err != nil {
		return false, err
	}
	_, saved := ids[listingID]
	return saved, nil
}

// List returns the saved ids in a stable order.
func (uc *SavedUseCase) List() ([]string, error) {
	ids, err := uc.savedRepo.Read()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
