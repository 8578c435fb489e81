package catalog

import (
	"sort"
	"strings"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// NormalizeSort maps unknown sort keys to title and unknown orders to asc.
func NormalizeSort(key models.SortKey, order models.SortOrder) (models.SortKey, models.SortOrder) {
	switch key {
	case models.SortByTitle, models.SortByPrice, models.SortByDuration,
		models.SortByRating, models.SortByEnrollments, models.SortByCreatedAt:
	default:
		key = models.SortByTitle
	}
	if order != models.SortDesc {
		order = models.SortAsc
	}
	return key, order
}

// sortCourses orders courses in place by key. desc flips the key comparison
// only; ties always fall back to title ascending and then id ascending.
func sortCourses(courses []models.Course, key models.SortKey, order models.SortOrder) {
	key, order = NormalizeSort(key, order)
	sort.SliceStable(courses, func(i, j int) bool {
		return Less(courses[i], courses[j], key, order)
	})
}

// Less reports whether a sorts before b for the given key and order.
func Less(a, b models.Course, key models.SortKey, order models.SortOrder) bool {
	key, order = NormalizeSort(key, order)
	if c := compareKey(a, b, key); c != 0 {
		if order == models.SortDesc {
			return c > 0
		}
		return c < 0
	}
	if c := compareTitle(a.Title, b.Title); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

func compareKey(a, b models.Course, key models.SortKey) int {
	switch key {
	case models.SortByPrice:
		return compareFloat(a.Price, b.Price)
	case models.SortByDuration:
		return compareInt(a.Duration, b.Duration)
	case models.SortByRating:
		return compareFloat(a.Rating(), b.Rating())
	case models.SortByEnrollments:
		return compareInt(a.EnrollmentCount, b.EnrollmentCount)
	case models.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return compareTitle(a.Title, b.Title)
	}
}

func compareTitle(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
