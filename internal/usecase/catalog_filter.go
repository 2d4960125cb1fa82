package usecase

import (
	"strings"
	"sync"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/region"
)

// PageSize is the fixed catalog page window.
const PageSize = 10

// Query is the full filter state of a catalog view. Empty fields are
// wildcards; all active filters compose with AND.
type Query struct {
	Search    string
	Subject   string
	Condition entity.Condition
	Location  entity.LocationInfo
}

// Matches applies every active filter to one listing.
func (q Query) Matches(l *entity.Listing) bool {
	if q.Search != "" && !matchesSearch(l, q.Search) {
		return false
	}
	if q.Subject != "" && l.Subject != q.Subject {
		return false
	}
	if q.Condition != "" && l.Condition != q.Condition {
		return false
	}
	if q.Location.RegionID != "" && l.Location.RegionID != q.Location.RegionID {
		return false
	}
	if q.Location.SubregionID != "" && l.Location.SubregionID != q.Location.SubregionID {
		return false
	}
	if q.Location.LocalityID != "" && l.Location.LocalityID != q.Location.LocalityID {
		return false
	}
	return true
}

func matchesSearch(l *entity.Listing, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{
		l.Title,
		l.Author,
		l.Subject,
		string(l.Condition),
		l.Location.LocalityName,
		l.Location.SubregionName,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter is the pure read path over a snapshot: it keeps the snapshot's
// descending-creation-time order and never mutates its input.
func Filter(snapshot []*entity.Listing, q Query) []*entity.Listing {
	var out []*entity.Listing
	for _, l := range snapshot {
		if q.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// TotalPages is ceil(total/PageSize).
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// Page slices one fixed-size window out of a filtered result. Out-of-range
// pages yield an empty slice.
func Page(items []*entity.Listing, page int) []*entity.Listing {
	if page < 0 {
		return nil
	}
	start := page * PageSize
	if start >= len(items) {
		return nil
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageResult is what a catalog view renders.
type PageResult struct {
	Items      []*entity.Listing `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	HasNext    bool              `json:"has_next"`
	HasPrev    bool              `json:"has_prev"`
}

// CatalogView is the stateful facade one consumer holds over the engine:
// filter inputs plus the current page window. Any filter change snaps the
// view back to the first page.
type CatalogView struct {
	engine *CatalogEngine
	locale string

	mu    sync.Mutex
	query Query
	page  int
}

func NewCatalogView(engine *CatalogEngine, locale string) *CatalogView {
	return &CatalogView{
		engine: engine,
		locale: locale,
	}
}

func (v *CatalogView) SetSearch(search string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Search != search {
		v.query.Search = search
		v.page = 0
	}
}

func (v *CatalogView) SetSubject(subject string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Subject != subject {
		v.query.Subject = subject
		v.page = 0
	}
}

func (v *CatalogView) SetCondition(condition entity.Condition) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Condition != condition {
		v.query.Condition = condition
		v.page = 0
	}
}

// SelectRegion narrows the geographic filter through the cascading reducer,
// so a region change always clears the dependent levels.
func (v *CatalogView) SelectRegion(id string) {
	v.applyLocation(region.SelectRegion{ID: id})
}

func (v *CatalogView) SelectSubregion(id string) {
	v.applyLocation(region.SelectSubregion{ID: id})
}

func (v *CatalogView) SelectLocality(id string) {
	v.applyLocation(region.SelectLocality{ID: id})
}

func (v *CatalogView) applyLocation(ev region.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := region.Apply(v.query.Location, ev, v.locale)
	if next != v.query.Location {
		v.query.Location = next
		v.page = 0
	}
}

// ClearFilters resets every filter to its wildcard and returns to page one.
func (v *CatalogView) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = Query{}
	v.page = 0
}

func (v *CatalogView) Query() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// NextPage advances the window if a further page exists.
func (v *CatalogView) NextPage() bool {
	filtered := Filter(v.engine.Snapshot(), v.Query())

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page < TotalPages(len(filtered))-1 {
		v.page++
		return true
	}
	return false
}

// PrevPage moves the window back unless already on the first page.
func (v *CatalogView) PrevPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.page > 0 {
		v.page--
		return true
	}
	return false
}

// Visible computes the current page of the filtered snapshot. If the
// snapshot shrank underneath the view, the page is clamped back into range.
func (v *CatalogView) Visible() PageResult {
	snapshot := v.engine.Snapshot()

	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := Filter(snapshot, v.query)
	totalPages := TotalPages(len(filtered))
	if v.page >= totalPages && v.page > 0 {
		v.page = totalPages - 1
		if v.page < 0 {
			v.page = 0
		}
	}

	return PageResult{
		Items:      Page(filtered, v.page),
		Total:      len(filtered),
		Page:       v.page,
		TotalPages: totalPages,
		HasNext:    v.page < totalPages-1,
		HasPrev:    v.page > 0,
	}
}
