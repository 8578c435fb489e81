package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/cli/formatter"
	"github.com/noah-isme/course-portal-api/internal/models"
)

type filterOptions struct {
	coursesFile  string
	presetsFile  string
	preset       string
	search       string
	categories   []string
	difficulties []string
	modes        []string
	minPrice     float64
	maxPrice     float64
	minDuration  int
	maxDuration  int
	rating       float64
	sortBy       string
	order        string
	page         int
	limit        int
	asJSON       bool
}

func newFilterCmd(app *App) *cobra.Command {
	opts := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter and sort a course catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.coursesFile == "" {
				return fmt.Errorf("--courses is required")
			}
			var courses []models.Course
			if err := readJSONFile(opts.coursesFile, &courses); err != nil {
				return err
			}

			filters, err := opts.filterState(cmd)
			if err != nil {
				return err
			}
			result, err := catalog.FilterAndSort(courses, filters)
			if err != nil {
				return err
			}

			pagination := models.NewPagination(opts.page, opts.limit, len(result))
			start, end := pagination.Bounds()
			page := result[start:end]

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]interface{}{
					"data":           page,
					"pagination":     pagination,
					"active_filters": catalog.ActiveFilterCount(filters),
				})
			}
			fmt.Fprint(out, formatter.RenderCourses(page))
			fmt.Fprintln(out, formatter.StyleDim.Render(fmt.Sprintf("page %d, %d match(es), %d active filter(s)",
				pagination.Page, pagination.TotalCount, catalog.ActiveFilterCount(filters))))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.coursesFile, "courses", "", "JSON file holding an array of courses")
	cmd.Flags().StringVar(&opts.presetsFile, "presets-file", "", "YAML file with extra presets")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "start from the named preset")
	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive text match on title, description and instructor")
	cmd.Flags().StringSliceVar(&opts.categories, "category", nil, "categories to include")
	cmd.Flags().StringSliceVar(&opts.difficulties, "difficulty", nil, "difficulty levels to include")
	cmd.Flags().StringSliceVar(&opts.modes, "mode", nil, "delivery modes to include")
	cmd.Flags().Float64Var(&opts.minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&opts.maxPrice, "max-price", 10000, "maximum price")
	cmd.Flags().IntVar(&opts.minDuration, "min-duration", 1, "minimum duration in weeks")
	cmd.Flags().IntVar(&opts.maxDuration, "max-duration", 52, "maximum duration in weeks")
	cmd.Flags().Float64Var(&opts.rating, "rating", 0, "minimum average rating")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "sort key: title, price, duration, rating, enrollments, createdAt")
	cmd.Flags().StringVar(&opts.order, "order", "", "sort order: asc or desc")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "page size")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// filterState starts from the preset (or defaults) and overrides only the
// flags the user set explicitly.
func (o *filterOptions) filterState(cmd *cobra.Command) (models.FilterState, error) {
	state := catalog.DefaultFilterState()
	if o.preset != "" {
		presets, err := loadPresets(o.presetsFile)
		if err != nil {
			return state, err
		}
		preset, ok := catalog.FindPreset(presets, o.preset)
		if !ok {
			return state, fmt.Errorf("preset %q not found", o.preset)
		}
		state = catalog.ApplyPreset(preset)
	}

	flags := cmd.Flags()
	if flags.Changed("search") {
		state.Search = o.search
	}
	if flags.Changed("category") {
		state.Categories = o.categories
	}
	if flags.Changed("difficulty") {
		state.Difficulties = make([]models.Difficulty, 0, len(o.difficulties))
		for _, d := range o.difficulties {
			state.Difficulties = append(state.Difficulties, models.Difficulty(d))
		}
	}
	if flags.Changed("mode") {
		state.Modes = make([]models.DeliveryMode, 0, len(o.modes))
		for _, m := range o.modes {
			state.Modes = append(state.Modes, models.DeliveryMode(m))
		}
	}
	if flags.Changed("min-price") {
		state.PriceRange[0] = o.minPrice
	}
	if flags.Changed("max-price") {
		state.PriceRange[1] = o.maxPrice
	}
	if flags.Changed("min-duration") {
		state.DurationRange[0] = o.minDuration
	}
	if flags.Changed("max-duration") {
		state.DurationRange[1] = o.maxDuration
	}
	if flags.Changed("rating") {
		state.Rating = o.rating
	}
	if flags.Changed("sort") {
		state.SortBy = models.SortKey(o.sortBy)
	}
	if flags.Changed("order") {
		state.SortOrder = models.SortOrder(o.order)
	}
	return state, nil
}

func loadPresets(path string) ([]models.FilterPreset, error) {
	presets := catalog.DefaultPresets()
	if path == "" {
		return presets, nil
	}
	extra, err := catalog.LoadPresets(path)
	if err != nil {
		return nil, err
	}
	return catalog.MergePresets(presets, extra), nil
}
