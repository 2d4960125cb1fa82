package region

import (
	"golang.org/x/text/language"
)

const defaultLocale = "zh"

var supportedTags = []language.Tag{
	language.Chinese, // zh, default
	language.English, // en
}

var localeKeys = []string{"zh", "en"}

var matcher = language.NewMatcher(supportedTags)

// NormalizeLocale maps an arbitrary BCP 47 tag ("en-US", "zh-Hans-CN") to one
// of the supported name keys, falling back to the default locale.
func NormalizeLocale(locale string) string {
	if locale == "" {
		return defaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return defaultLocale
	}
	_, index, conf := matcher.Match(tag)
	if conf == language.No {
		return defaultLocale
	}
	return localeKeys[index]
}

// Regions returns the top level of the hierarchy.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// Subregions returns the subregions whose parent is regionID.
func Subregions(regionID string) []Subregion {
	var out []Subregion
	for _, s := range subregions {
		if s.RegionID == regionID {
			out = append(out, s)
		}
	}
	return out
}

// Localities returns the localities whose parent is subregionID.
func Localities(subregionID string) []Locality {
	var out []Locality
	for _, l := range localities {
		if l.SubregionID == subregionID {
			out = append(out, l)
		}
	}
	return out
}

// DisplayName resolves the localized name of any id in the hierarchy.
// A name missing in the requested locale falls back to the default locale;
// an unknown id resolves to "".
func DisplayName(id, locale string) string {
	names, ok := namesOf(id)
	if !ok {
		return ""
	}
	key := NormalizeLocale(locale)
	if name, ok := names[key]; ok && name != "" {
		return name
	}
	return names[defaultLocale]
}

func namesOf(id string) (map[string]string, bool) {
	for _, r := range regions {
		if r.ID == id {
			return r.Names, true
		}
	}
	for _, s := range subregions {
		if s.ID == id {
			return s.Names, true
		}
	}
	for _, l := range localities {
		if l.ID == id {
			return l.Names, true
		}
	}
	return nil, false
}

func findSubregion(id string) (Subregion, bool) {
	for _, s := range subregions {
		if s.ID == id {
			return s, true
		}
	}
	return Subregion{}, false
}

func findLocality(id string) (Locality, bool) {
	for _, l := range localities {
		if l.ID == id {
			return l, true
		}
	}
	return Locality{}, false
}

func regionExists(id string) bool {
	for _, r := range regions {
		if r.ID == id {
			return true
		}
	}
	return false
}
