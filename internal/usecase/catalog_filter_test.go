package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookbazaar/internal/domain/entity"
)

func makeListing(id, title, subject, regionID string) *entity.Listing {
	return &entity.Listing{
		ID:        id,
		Title:     title,
		Subject:   subject,
		Condition: entity.ConditionGood,
		Location:  entity.LocationInfo{RegionID: regionID},
	}
}

func makeSnapshot(n int) []*entity.Listing {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*entity.Listing, n)
	for i := 0; i < n; i++ {
		out[i] = &entity.Listing{
			ID:        fmt.Sprintf("listing-%d", i),
			Title:     fmt.Sprintf("Book %d", i),
			Condition: entity.ConditionGood,
			// Descending creation time, newest first.
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestFilterByRegion(t *testing.T) {
	snapshot := []*entity.Listing{
		makeListing("a", "BookA", "physics", "r1"),
		makeListing("b", "BookB", "physics", "r2"),
	}

	q := Query{Location: entity.LocationInfo{RegionID: "r1"}}
	visible := Filter(snapshot, q)

	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	snapshot := []*entity.Listing{
		makeListing("a", "Linear Algebra Done Right", "math", "r1"),
		makeListing("b", "Moby Dick", "fiction", "r1"),
	}

	visible := Filter(snapshot, Query{Search: "algebra"})

	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
}

func TestFilterSearchMatchesAuthorAndLocationNames(t *testing.T) {
	snapshot := []*entity.Listing{
		{ID: "a", Title: "Physics I", Author: "Feynman", Condition: entity.ConditionGood},
		{ID: "b", Title: "Chemistry", Condition: entity.ConditionGood,
			Location: entity.LocationInfo{SubregionName: "Shenzhen", LocalityName: "Nanshan"}},
	}

	byAuthor := Filter(snapshot, Query{Search: "feynman"})
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "a", byAuthor[0].ID)

	byLocality := Filter(snapshot, Query{Search: "nanshan"})
	require.Len(t, byLocality, 1)
	assert.Equal(t, "b", byLocality[0].ID)
}

func TestFilterConjunction(t *testing.T) {
	snapshot := []*entity.Listing{
		makeListing("a", "Calculus", "math", "r1"),
		makeListing("b", "Calculus", "math", "r2"),
		makeListing("c", "Calculus", "physics", "r1"),
	}

	q := Query{Subject: "math", Location: entity.LocationInfo{RegionID: "r1"}}
	visible := Filter(snapshot, q)

	// Every visible item satisfies every active filter.
	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
	for _, l := range visible {
		assert.True(t, q.Matches(l))
	}
}

func TestFilterPreservesSnapshotOrder(t *testing.T) {
	snapshot := makeSnapshot(25)
	visible := Filter(snapshot, Query{})

	require.Len(t, visible, 25)
	for i := 1; i < len(visible); i++ {
		assert.True(t, visible[i].CreatedAt.Before(visible[i-1].CreatedAt))
	}
}

func TestFilterByCondition(t *testing.T) {
	snapshot := []*entity.Listing{
		{ID: "a", Condition: entity.ConditionDonation},
		{ID: "b", Condition: entity.ConditionGood},
	}

	visible := Filter(snapshot, Query{Condition: entity.ConditionDonation})

	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0))
	assert.Equal(t, 1, TotalPages(1))
	assert.Equal(t, 1, TotalPages(10))
	assert.Equal(t, 2, TotalPages(11))
	assert.Equal(t, 3, TotalPages(25))
}

func TestPageWindow(t *testing.T) {
	items := makeSnapshot(25)

	assert.Len(t, Page(items, 0), 10)
	assert.Len(t, Page(items, 1), 10)
	assert.Len(t, Page(items, 2), 5)
	assert.Empty(t, Page(items, 3))
	assert.Empty(t, Page(items, -1))

	// Windows are contiguous slices of the filtered order.
	assert.Equal(t, items[10], Page(items, 1)[0])
}

func newTestView(snapshot []*entity.Listing) *CatalogView {
	engine := NewCatalogEngine(newFakeListingRepo(), nil)
	engine.apply(0, snapshot)
	return NewCatalogView(engine, "en")
}

func TestViewFilterChangeResetsPage(t *testing.T) {
	view := newTestView(makeSnapshot(25))

	require.True(t, view.NextPage())
	assert.Equal(t, 1, view.Visible().Page)

	view.SetSearch("book")
	assert.Equal(t, 0, view.Visible().Page)

	require.True(t, view.NextPage())
	view.SetSubject("math")
	assert.Equal(t, 0, view.Visible().Page)

	view.SetSubject("")
	view.SetSearch("")
	require.True(t, view.NextPage())
	view.SetCondition(entity.ConditionGood)
	assert.Equal(t, 0, view.Visible().Page)
}

func TestViewPageNavigationBounds(t *testing.T) {
	view := newTestView(makeSnapshot(25))

	result := view.Visible()
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.False(t, result.HasPrev)
	assert.False(t, view.PrevPage())

	require.True(t, view.NextPage())
	require.True(t, view.NextPage())

	result = view.Visible()
	assert.Equal(t, 2, result.Page)
	assert.False(t, result.HasNext)
	assert.False(t, view.NextPage())

	require.True(t, view.PrevPage())
	assert.Equal(t, 1, view.Visible().Page)
}

func TestViewClearFilters(t *testing.T) {
	view := newTestView(makeSnapshot(25))

	view.SetSearch("book")
	view.SetSubject("math")
	view.SetCondition(entity.ConditionGood)
	view.NextPage()

	view.ClearFilters()

	assert.Equal(t, Query{}, view.Query())
	result := view.Visible()
	assert.Equal(t, 0, result.Page)
	assert.Equal(t, 25, result.Total)
}

func TestViewVisibleIsSubsetOfSnapshot(t *testing.T) {
	snapshot := makeSnapshot(25)
	snapshot[3].Subject = "math"
	snapshot[17].Subject = "math"
	view := newTestView(snapshot)

	view.SetSubject("math")
	result := view.Visible()

	byID := make(map[string]*entity.Listing)
	for _, l := range snapshot {
		byID[l.ID] = l
	}
	for _, l := range result.Items {
		assert.Same(t, byID[l.ID], l)
		assert.Equal(t, "math", l.Subject)
	}
	assert.Equal(t, 2, result.Total)
}

func TestViewRegionSelectionCascades(t *testing.T) {
	view := newTestView(nil)

	view.SelectRegion("gd")
	view.SelectSubregion("gd-sz")
	view.SelectLocality("gd-sz-ns")

	loc := view.Query().Location
	require.Equal(t, "gd-sz-ns", loc.LocalityID)

	// Re-selecting the region drops the narrower levels.
	view.SelectRegion("sc")
	loc = view.Query().Location
	assert.Equal(t, "sc", loc.RegionID)
	assert.Empty(t, loc.SubregionID)
	assert.Empty(t, loc.LocalityID)
}
