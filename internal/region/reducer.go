package region

import (
	"bookbazaar/internal/domain/entity"
)

// Location selection is a reducer over three events rather than ad hoc field
// clearing: every event yields a LocationInfo whose child levels are either
// empty or verified descendants of their parent.

type Event interface {
	isLocationEvent()
}

type SelectRegion struct{ ID string }

type SelectSubregion struct{ ID string }

type SelectLocality struct{ ID string }

func (SelectRegion) isLocationEvent()    {}
func (SelectSubregion) isLocationEvent() {}
func (SelectLocality) isLocationEvent()  {}

// Apply returns the next consistent LocationInfo. Events that would break
// the hierarchy (unknown id, parent mismatch) leave the selection unchanged.
func Apply(loc entity.LocationInfo, ev Event, locale string) entity.LocationInfo {
	switch e := ev.(type) {
	case SelectRegion:
		if !regionExists(e.ID) {
			return loc
		}
		// Choosing a region invalidates everything below it.
		return entity.LocationInfo{
			RegionID:   e.ID,
			RegionName: DisplayName(e.ID, locale),
		}

	case SelectSubregion:
		sub, ok := findSubregion(e.ID)
		if !ok || sub.RegionID != loc.RegionID {
			return loc
		}
		return entity.LocationInfo{
			RegionID:      loc.RegionID,
			RegionName:    loc.RegionName,
			SubregionID:   sub.ID,
			SubregionName: DisplayName(sub.ID, locale),
		}

	case SelectLocality:
		lc, ok := findLocality(e.ID)
		if !ok || lc.SubregionID != loc.SubregionID {
			return loc
		}
		next := loc
		next.LocalityID = lc.ID
		next.LocalityName = DisplayName(lc.ID, locale)
		return next
	}

	return loc
}
