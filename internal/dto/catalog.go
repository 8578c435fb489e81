package dto

import (
	"strconv"
	"strings"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/models"
)

// CourseQuery is the query string accepted by catalog listing endpoints.
type CourseQuery struct {
	Search       string `form:"search"`
	Categories   string `form:"categories"`
	Difficulties string `form:"difficulties"`
	Modes        string `form:"modes"`
	MinPrice     string `form:"minPrice"`
	MaxPrice     string `form:"maxPrice"`
	MinDuration  string `form:"minDuration"`
	MaxDuration  string `form:"maxDuration"`
	Rating       string `form:"rating"`
	Sort         string `form:"sort"`
	Order        string `form:"order"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

// FilterState converts the query into a filter state. Missing or unparsable
// numbers keep their defaults.
func (q CourseQuery) FilterState() models.FilterState {
	f := catalog.DefaultFilterState()
	f.Search = q.Search
	f.Categories = splitList(q.Categories)
	for _, d := range splitList(q.Difficulties) {
		f.Difficulties = append(f.Difficulties, models.Difficulty(d))
	}
	for _, m := range splitList(q.Modes) {
		f.Modes = append(f.Modes, models.DeliveryMode(m))
	}
	if v, err := strconv.ParseFloat(q.MinPrice, 64); err == nil {
		f.PriceRange[0] = v
	}
	if v, err := strconv.ParseFloat(q.MaxPrice, 64); err == nil {
		f.PriceRange[1] = v
	}
	if v, err := strconv.Atoi(q.MinDuration); err == nil {
		f.DurationRange[0] = v
	}
	if v, err := strconv.Atoi(q.MaxDuration); err == nil {
		f.DurationRange[1] = v
	}
	if v, err := strconv.ParseFloat(q.Rating, 64); err == nil {
		f.Rating = v
	}
	f.SortBy, f.SortOrder = catalog.NormalizeSort(models.SortKey(q.Sort), models.SortOrder(q.Order))
	return f
}

// CatalogMeta builds the response meta for a filtered listing.
func CatalogMeta(f models.FilterState) map[string]interface{} {
	return map[string]interface{}{
		"active_filters": catalog.ActiveFilterCount(f),
		"sort_by":        f.SortBy,
		"sort_order":     f.SortOrder,
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
