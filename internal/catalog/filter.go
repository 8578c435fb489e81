// Package catalog narrows and orders course collections for discovery.
//
// Every function in this package is pure: inputs are never mutated and each
// call returns freshly allocated slices, so callers may memoize on the input
// snapshot and call concurrently without coordination.
package catalog

import (
	"strings"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// Default spans used by DefaultFilterState and ActiveFilterCount.
const (
	DefaultMinPrice    = 0
	DefaultMaxPrice    = 10000
	DefaultMinDuration = 1
	DefaultMaxDuration = 52
)

// DefaultFilterState returns the filter state that constrains nothing.
func DefaultFilterState() models.FilterState {
	return models.FilterState{
		PriceRange:    [2]float64{DefaultMinPrice, DefaultMaxPrice},
		DurationRange: [2]int{DefaultMinDuration, DefaultMaxDuration},
		SortBy:        models.SortByTitle,
		SortOrder:     models.SortAsc,
	}
}

// FilterAndSort applies f to courses and returns the matching courses in
// sort order. Inverted ranges and out-of-range thresholds are not rejected;
// they simply match nothing. The only error is an InvalidInputError for a
// course without an ID.
func FilterAndSort(courses []models.Course, f models.FilterState) ([]models.Course, error) {
	if err := validateCourses(courses); err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	result := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if !matchesSearch(course, search) {
			continue
		}
		if !matchesSets(course, f) {
			continue
		}
		if !matchesRanges(course, f) {
			continue
		}
		if course.Rating() < f.Rating {
			continue
		}
		result = append(result, course)
	}

	sortCourses(result, f.SortBy, f.SortOrder)
	return result, nil
}

// ActiveFilterCount returns how many filter dimensions deviate from
// DefaultFilterState. Sorting is not a filter dimension.
func ActiveFilterCount(f models.FilterState) int {
	def := DefaultFilterState()
	count := 0
	if f.Search != "" {
		count++
	}
	if len(f.Categories) > 0 {
		count++
	}
	if len(f.Difficulties) > 0 {
		count++
	}
	if len(f.Modes) > 0 {
		count++
	}
	if f.PriceRange != def.PriceRange {
		count++
	}
	if f.DurationRange != def.DurationRange {
		count++
	}
	if f.Rating > 0 {
		count++
	}
	return count
}

func validateCourses(courses []models.Course) error {
	for _, course := range courses {
		if course.ID == "" {
			return models.NewInvalidInput("course.id", "is required")
		}
	}
	return nil
}

func matchesSearch(course models.Course, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(course.Title), search) ||
		strings.Contains(strings.ToLower(course.Description), search) ||
		strings.Contains(strings.ToLower(course.InstructorName), search)
}

func matchesSets(course models.Course, f models.FilterState) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, course.Category) {
		return false
	}
	if len(f.Difficulties) > 0 && !containsDifficulty(f.Difficulties, course.Difficulty) {
		return false
	}
	if len(f.Modes) > 0 {
		offered := false
		for _, mode := range f.Modes {
			if course.HasMode(mode) {
				offered = true
				break
			}
		}
		if !offered {
			return false
		}
	}
	return true
}

func matchesRanges(course models.Course, f models.FilterState) bool {
	if course.Price < f.PriceRange[0] || course.Price > f.PriceRange[1] {
		return false
	}
	return course.Duration >= f.DurationRange[0] && course.Duration <= f.DurationRange[1]
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsDifficulty(values []models.Difficulty, target models.Difficulty) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
