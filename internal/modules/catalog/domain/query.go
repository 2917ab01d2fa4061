package domain

import (
	"slices"
	"sort"
	"strings"
)

const AllValues = "all"

type PriceBucket string

const (
	PriceFree PriceBucket = "free"
	PricePaid PriceBucket = "paid"
)

type DurationBucket string

const (
	DurationShort  DurationBucket = "short"
	DurationMedium DurationBucket = "medium"
	DurationLong   DurationBucket = "long"
)

// FilterCriteria fields are combined with AND. Empty fields and "all"
// impose no constraint.
type FilterCriteria struct {
	Category string         `json:"category,omitempty"`
	Level    string         `json:"level,omitempty"`
	Price    PriceBucket    `json:"price,omitempty"`
	Duration DurationBucket `json:"duration,omitempty"`
}

func GetCourseByID(courses []Course, id string) (Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// SearchCourses matches the query as typed, surrounding spaces included,
// case-insensitively against title, description and instructor name. A
// blank query matches nothing.
func SearchCourses(courses []Course, query string) []Course {
	out := []Course{}
	if strings.TrimSpace(query) == "" {
		return out
	}
	term := strings.ToLower(query)
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(strings.ToLower(c.Description), term) ||
			strings.Contains(strings.ToLower(c.Instructor.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

func FilterCourses(courses []Course, criteria FilterCriteria) []Course {
	out := []Course{}
	for _, c := range courses {
		if matchesCriteria(c, criteria) {
			out = append(out, c)
		}
	}
	return out
}

func matchesCriteria(c Course, criteria FilterCriteria) bool {
	if constrained(criteria.Category) && !strings.EqualFold(c.Category, criteria.Category) {
		return false
	}
	if constrained(criteria.Level) && string(c.Level) != criteria.Level {
		return false
	}
	switch criteria.Price {
	case PriceFree:
		if c.Price != 0 {
			return false
		}
	case PricePaid:
		if c.Price <= 0 {
			return false
		}
	}
	switch criteria.Duration {
	case DurationShort:
		return c.Duration < 5
	case DurationMedium:
		return c.Duration >= 5 && c.Duration <= 20
	case DurationLong:
		return c.Duration > 20
	}
	return true
}

func constrained(v string) bool {
	return v != "" && v != AllValues
}

// RecommendCourses returns the n highest rated courses. Ties are broken by id
// so the result is deterministic. The input slice is not reordered.
func RecommendCourses(courses []Course, n int) []Course {
	sorted := slices.Clone(courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating == sorted[j].Rating {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Rating > sorted[j].Rating
	})
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func CoursesByCategory(courses []Course, category string) []Course {
	out := []Course{}
	for _, c := range courses {
		if strings.EqualFold(c.Category, category) {
			out = append(out, c)
		}
	}
	return out
}

// CoursesByIDs resolves ids in list order, skipping unknown ids.
func CoursesByIDs(courses []Course, ids []string) []Course {
	index := make(map[string]Course, len(courses))
	for _, c := range courses {
		index[c.ID] = c
	}
	out := []Course{}
	for _, id := range ids {
		if c, ok := index[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func Categories(courses []Course) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, c := range courses {
		key := strings.ToLower(c.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c.Category)
	}
	sort.Strings(out)
	return out
}
