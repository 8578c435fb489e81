package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
)

var courseHeaders = []string{"ID", "TITLE", "CATEGORY", "LEVEL", "MODES", "PRICE", "WEEKS", "RATING", "ENROLLED"}

// RenderCourses renders a course listing followed by a result count.
func RenderCourses(courses []models.Course) string {
	if len(courses) == 0 {
		return StyleDim.Render("No courses match.") + "\n"
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		modes := make([]string, 0, len(c.Modes))
		for _, m := range c.Modes {
			modes = append(modes, string(m))
		}
		rows = append(rows, []string{
			c.ID,
			c.Title,
			c.Category,
			string(c.Difficulty),
			strings.Join(modes, "/"),
			fmt.Sprintf("%.2f", c.Price),
			fmt.Sprintf("%d", c.Duration),
			ratingCell(c),
			fmt.Sprintf("%d", c.EnrollmentCount),
		})
	}
	return RenderTable(courseHeaders, rows) + StyleDim.Render(fmt.Sprintf("%d course(s)", len(courses))) + "\n"
}

func ratingCell(c models.Course) string {
	if c.AverageRating == nil {
		return StyleDim.Render("-")
	}
	return fmt.Sprintf("%.1f", *c.AverageRating)
}

// RenderPresets renders preset names with their active filter count.
func RenderPresets(presets []models.FilterPreset, activeFilters func(models.FilterState) int) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			p.Name,
			p.Description,
			fmt.Sprintf("%d", activeFilters(p.Filters)),
			fmt.Sprintf("%s %s", p.Filters.SortBy, p.Filters.SortOrder),
		})
	}
	return RenderTable([]string{"NAME", "DESCRIPTION", "FILTERS", "SORT"}, rows)
}

// RenderJourney renders a journey view state.
func RenderJourney(state journey.ViewState) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(string(state.Kind())))
	b.WriteString("\n")

	switch s := state.(type) {
	case journey.Browsing:
		b.WriteString(RenderCourses(s.EligibleCourses))
	case journey.AwaitingDecision:
		fmt.Fprintf(&b, "Application %s for course %s is %s\n",
			s.Application.ID, s.Application.CourseID, StyleYellow.Render(string(s.Application.Status)))
	case journey.ReadyToPay:
		fmt.Fprintf(&b, "Application %s approved for course %s\n", s.Application.ID, s.Application.CourseID)
		if s.Course == nil {
			b.WriteString(StyleDim.Render("Course is not in the supplied catalog.") + "\n")
			break
		}
		rows := make([][]string, 0, len(s.PaymentOptions))
		for _, o := range s.PaymentOptions {
			upfront := "-"
			if o.Type == journey.PaymentInstallment {
				upfront = fmt.Sprintf("%.0f%% (%.2f)", o.UpfrontPercent, o.UpfrontAmount)
			}
			rows = append(rows, []string{string(o.Type), fmt.Sprintf("%.2f", o.Amount), upfront})
		}
		b.WriteString(RenderTable([]string{"OPTION", "AMOUNT", "UPFRONT"}, rows))
	case journey.Enrolled:
		rows := make([][]string, 0, len(s.Enrollments))
		for _, e := range s.Enrollments {
			marker := ""
			if e.ID == s.Enrollment.ID {
				marker = StyleGreen.Render("*")
			}
			rows = append(rows, []string{marker, e.ID, e.Course.Title, fmt.Sprintf("%.0f%%", e.Progress), formatDate(e.EnrolledAt)})
		}
		b.WriteString(RenderTable([]string{"", "ENROLLMENT", "COURSE", "PROGRESS", "SINCE"}, rows))
	}
	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return StyleDim.Render("-")
	}
	return t.Format("2006-01-02")
}
