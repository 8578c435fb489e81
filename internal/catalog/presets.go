package catalog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// DefaultPresets returns the filter presets shipped with the platform.
func DefaultPresets() []models.FilterPreset {
	popular := DefaultFilterState()
	popular.SortBy = models.SortByEnrollments
	popular.SortOrder = models.SortDesc

	topRated := DefaultFilterState()
	topRated.Rating = 4
	topRated.SortBy = models.SortByRating
	topRated.SortOrder = models.SortDesc

	beginner := DefaultFilterState()
	beginner.Difficulties = []models.Difficulty{models.DifficultyBeginner}

	newest := DefaultFilterState()
	newest.SortBy = models.SortByCreatedAt
	newest.SortOrder = models.SortDesc

	budget := DefaultFilterState()
	budget.PriceRange = [2]float64{0, 100}
	budget.SortBy = models.SortByPrice

	return []models.FilterPreset{
		{Name: "Popular Courses", Description: "Most enrolled first", Filters: popular},
		{Name: "Top Rated", Description: "Rated 4 stars and above", Filters: topRated},
		{Name: "Beginner Friendly", Description: "No prior experience needed", Filters: beginner},
		{Name: "Newest", Description: "Recently published", Filters: newest},
		{Name: "Budget Friendly", Description: "Priced at 100 or less", Filters: budget},
	}
}

// ApplyPreset returns the preset's filter state verbatim. The result shares no
// slices with the preset.
func ApplyPreset(preset models.FilterPreset) models.FilterState {
	return cloneFilterState(preset.Filters)
}

// FindPreset looks a preset up by name, ignoring case.
func FindPreset(presets []models.FilterPreset, name string) (models.FilterPreset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.FilterPreset{}, false
}

type presetFile struct {
	Presets []presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Filters     presetFilters `yaml:"filters"`
}

// presetFilters mirrors models.FilterState with pointers for the keys that
// have defaults, so an explicit zero value is told apart from an absent key.
type presetFilters struct {
	Search        string                `yaml:"search"`
	Categories    []string              `yaml:"categories"`
	Difficulties  []models.Difficulty   `yaml:"difficulties"`
	Modes         []models.DeliveryMode `yaml:"modes"`
	PriceRange    *[2]float64           `yaml:"price_range"`
	DurationRange *[2]int               `yaml:"duration_range"`
	Rating        float64               `yaml:"rating"`
	SortBy        *models.SortKey       `yaml:"sort_by"`
	SortOrder     *models.SortOrder     `yaml:"sort_order"`
}

// state fills the keys the document left out from DefaultFilterState.
func (f presetFilters) state() models.FilterState {
	out := DefaultFilterState()
	out.Search = f.Search
	out.Categories = f.Categories
	out.Difficulties = f.Difficulties
	out.Modes = f.Modes
	out.Rating = f.Rating
	if f.PriceRange != nil {
		out.PriceRange = *f.PriceRange
	}
	if f.DurationRange != nil {
		out.DurationRange = *f.DurationRange
	}
	if f.SortBy != nil {
		out.SortBy = *f.SortBy
	}
	if f.SortOrder != nil {
		out.SortOrder = *f.SortOrder
	}
	return out
}

// LoadPresets reads presets from a YAML file. Keys a preset leaves out take
// their DefaultFilterState values; keys it sets are kept as written.
func LoadPresets(path string) ([]models.FilterPreset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}
	return ParsePresets(raw)
}

// ParsePresets decodes a YAML preset document.
func ParsePresets(raw []byte) ([]models.FilterPreset, error) {
	var doc presetFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	presets := make([]models.FilterPreset, 0, len(doc.Presets))
	for i, p := range doc.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return nil, models.NewInvalidInput(fmt.Sprintf("presets[%d].name", i), "is required")
		}
		presets = append(presets, models.FilterPreset{
			Name:        p.Name,
			Description: p.Description,
			Filters:     p.Filters.state(),
		})
	}
	return presets, nil
}

// MergePresets appends extra presets to base; an extra preset replaces a base
// preset with the same name.
func MergePresets(base, extra []models.FilterPreset) []models.FilterPreset {
	merged := make([]models.FilterPreset, 0, len(base)+len(extra))
	for _, p := range base {
		if _, overridden := FindPreset(extra, p.Name); overridden {
			continue
		}
		merged = append(merged, p)
	}
	return append(merged, extra...)
}

// SaveSearch appends a saved search and returns the new collection. Names are
// not deduplicated.
func SaveSearch(searches []models.SavedSearch, name string, filters models.FilterState, at time.Time) []models.SavedSearch {
	out := make([]models.SavedSearch, 0, len(searches)+1)
	out = append(out, searches...)
	return append(out, models.SavedSearch{Name: name, Filters: cloneFilterState(filters), CreatedAt: at})
}

// DeleteSearch removes the saved search at index. An out of range index
// returns an unchanged copy.
func DeleteSearch(searches []models.SavedSearch, index int) []models.SavedSearch {
	out := make([]models.SavedSearch, 0, len(searches))
	for i, s := range searches {
		if i == index {
			continue
		}
		out = append(out, s)
	}
	return out
}

func cloneFilterState(f models.FilterState) models.FilterState {
	out := f
	if f.Categories != nil {
		out.Categories = append([]string(nil), f.Categories...)
	}
	if f.Difficulties != nil {
		out.Difficulties = append([]models.Difficulty(nil), f.Difficulties...)
	}
	if f.Modes != nil {
		out.Modes = append([]models.DeliveryMode(nil), f.Modes...)
	}
	return out
}
