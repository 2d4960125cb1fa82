package entity

// LocationInfo carries the three selected levels of the geographic hierarchy
// together with their localized display names. Consistency (a subregion
// belongs to its region, a locality to its subregion) is enforced by the
// region package's reducer before a LocationInfo ever reaches a listing.
type LocationInfo struct {
	RegionID      string `json:"region_id" firestore:"regionId"`
	RegionName    string `json:"region_name" firestore:"regionName"`
	SubregionID   string `json:"subregion_id" firestore:"subregionId"`
	SubregionName string `json:"subregion_name" firestore:"subregionName"`
	LocalityID    string `json:"locality_id" firestore:"localityId"`
	LocalityName  string `json:"locality_name" firestore:"localityName"`
}

// Complete reports whether all three levels have been selected.
func (l LocationInfo) Complete() bool {
	return l.RegionID != "" && l.SubregionID != "" && l.LocalityID != ""
}
