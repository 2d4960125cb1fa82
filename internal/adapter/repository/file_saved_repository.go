package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"bookbazaar/internal/domain/repository"
	"bookbazaar/pkg/errors"
)

// fileSavedRepository keeps the bookmarked listing ids in a local JSON file.
// The saved set never touches the backend, so a plain file is the whole
// persistence story; writes go through a temp file and rename so a crash
// mid-write cannot corrupt the set.
type fileSavedRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileSavedRepository(path string) repository.SavedRepository {
	return &fileSavedRepository{
		path: path,
	}
}

func (r *fileSavedRepository) Read() (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, errors.Internal("Failed to read saved listings", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, errors.Internal("Failed to parse saved listings", err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *fileSavedRepository) Write(ids map[string]struct{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	data, err := json.Marshal(sorted)
	if err != nil {
		return errors.Internal("Failed to encode saved listings", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return errors.Internal("Failed to create saved listings directory", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Internal("Failed to write saved listings", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Internal("Failed to replace saved listings", err)
	}

	return nil
}
