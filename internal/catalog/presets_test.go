package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
)

func TestApplyPreset_ReplacesWholeState(t *testing.T) {
	preset, ok := FindPreset(DefaultPresets(), "beginner friendly")
	require.True(t, ok)

	state := ApplyPreset(preset)
	assert.Equal(t, preset.Filters, state)
	assert.Equal(t, 1, ActiveFilterCount(state))

	state.Difficulties[0] = models.DifficultyAdvanced
	assert.Equal(t, models.DifficultyBeginner, preset.Filters.Difficulties[0])
}

func TestFindPreset_Unknown(t *testing.T) {
	_, ok := FindPreset(DefaultPresets(), "Cheapest")
	assert.False(t, ok)
}

func TestParsePresets_FillsDefaults(t *testing.T) {
	raw := []byte(`
presets:
  - name: Weekend Design
    description: Short design courses
    filters:
      categories: [Design]
      duration_range: [1, 4]
  - name: Popular Courses
    filters:
      sort_by: enrollments
      sort_order: asc
`)
	presets, err := ParsePresets(raw)
	require.NoError(t, err)
	require.Len(t, presets, 2)

	weekend := presets[0]
	assert.Equal(t, []string{"Design"}, weekend.Filters.Categories)
	assert.Equal(t, [2]int{1, 4}, weekend.Filters.DurationRange)
	assert.Equal(t, [2]float64{DefaultMinPrice, DefaultMaxPrice}, weekend.Filters.PriceRange)
	assert.Equal(t, models.SortByTitle, weekend.Filters.SortBy)
	assert.Equal(t, 2, ActiveFilterCount(weekend.Filters))

	merged := MergePresets(DefaultPresets(), presets)
	assert.Len(t, merged, len(DefaultPresets())+1)
	popular, ok := FindPreset(merged, "Popular Courses")
	require.True(t, ok)
	assert.Equal(t, models.SortAsc, popular.Filters.SortOrder)
}

func TestParsePresets_ExplicitZeroRangeKept(t *testing.T) {
	raw := []byte(`
presets:
  - name: Free
    filters:
      price_range: [0, 0]
  - name: Unsorted
    filters:
      duration_range: [0, 0]
      sort_by: ""
      sort_order: ""
`)
	presets, err := ParsePresets(raw)
	require.NoError(t, err)
	require.Len(t, presets, 2)

	free := ApplyPreset(presets[0])
	assert.Equal(t, [2]float64{0, 0}, free.PriceRange)
	assert.Equal(t, [2]int{DefaultMinDuration, DefaultMaxDuration}, free.DurationRange)
	assert.Equal(t, 1, ActiveFilterCount(free))

	unsorted := presets[1].Filters
	assert.Equal(t, [2]int{0, 0}, unsorted.DurationRange)
	assert.Equal(t, [2]float64{DefaultMinPrice, DefaultMaxPrice}, unsorted.PriceRange)
	assert.Equal(t, models.SortKey(""), unsorted.SortBy)
	assert.Equal(t, models.SortOrder(""), unsorted.SortOrder)
}

func TestParsePresets_RequiresName(t *testing.T) {
	_, err := ParsePresets([]byte("presets:\n  - description: nameless\n"))
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLoadPresets_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - name: Online Only\n    filters:\n      modes: [Online]\n"), 0o600))

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, []models.DeliveryMode{models.ModeOnline}, presets[0].Filters.Modes)

	_, err = LoadPresets(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveSearch_AppendsWithoutDedup(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	f := DefaultFilterState()
	f.Categories = []string{"Design"}

	var searches []models.SavedSearch
	searches = SaveSearch(searches, "design", f, at)
	original := searches
	searches = SaveSearch(searches, "design", DefaultFilterState(), at.Add(time.Minute))

	require.Len(t, searches, 2)
	assert.Len(t, original, 1)
	assert.Equal(t, "design", searches[0].Name)
	assert.Equal(t, "design", searches[1].Name)
	assert.Equal(t, at, searches[0].CreatedAt)

	f.Categories[0] = "Data"
	assert.Equal(t, "Design", searches[0].Filters.Categories[0])
}

func TestDeleteSearch(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var searches []models.SavedSearch
	for _, name := range []string{"a", "b", "c"} {
		searches = SaveSearch(searches, name, DefaultFilterState(), at)
	}

	remaining := DeleteSearch(searches, 1)
	require.Len(t, remaining, 2)
	assert.Equal(t, "a", remaining[0].Name)
	assert.Equal(t, "c", remaining[1].Name)
	assert.Len(t, searches, 3)

	assert.Equal(t, searches, DeleteSearch(searches, 3))
	assert.Equal(t, searches, DeleteSearch(searches, -1))
	assert.Empty(t, DeleteSearch(nil, 0))
}
