package model

import "strings"

// Age bands form a fixed 5-band ordinal enumeration. The index in this list
// is the numeric age feature used by the vectorizer.
var ageBands = []string{
	"PRESCHOOL",      // 4-7
	"PRIMARY_SCHOOL", // 7-14
	"JUNIORS",        // 15-18
	"ADULTS",         // 18-40
	"VETERANS",       // 35+
}

// AgeBandCount is the number of age bands.
const AgeBandCount = 5

// AgeBandIndex maps an age descriptor to its ordinal band index.
// Unrecognized or missing descriptors map to band 0.
func AgeBandIndex(age string) int {
	upper := strings.ToUpper(strings.TrimSpace(age))
	for i, band := range ageBands {
		if band == upper {
			return i
		}
	}
	return 0
}

// EventCategories is the fixed ordered list of event-type categories. The
// index in this list is the position in the event-type vector blocks.
var EventCategories = []string{
	"MATCH",
	"TRAINING",
	"PLAYER",
	"CLUB",
	"TOURNAMENT",
	"LEAGUE",
}

// EventCategoryIndex maps a category tag to its vector index. The second
// return value reports whether the tag is a known category.
func EventCategoryIndex(tag string) (int, bool) {
	upper := strings.ToUpper(strings.TrimSpace(tag))
	for i, c := range EventCategories {
		if c == upper {
			return i, true
		}
	}
	return 0, false
}
