package catalog

import (
	"time"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// DefaultCohortLength is the cohort length assumed when a course has a start
// date but no end date.
const DefaultCohortLength = 180 * 24 * time.Hour

// Window is an inclusive [Start, End] cohort interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// CohortWindow returns the cohort window of a course. Courses without a start
// date have no window.
func CohortWindow(c models.Course) (Window, bool) {
	if c.StartDate == nil {
		return Window{}, false
	}
	end := c.StartDate.Add(DefaultCohortLength)
	if c.EndDate != nil {
		end = *c.EndDate
	}
	return Window{Start: *c.StartDate, End: end}, true
}

// Overlaps reports whether two inclusive windows intersect.
func Overlaps(a, b Window) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// DeadlinePassed reports whether the course's enrollment deadline lies
// strictly before now.
func DeadlinePassed(c models.Course, now time.Time) bool {
	return c.EnrollmentDeadline != nil && c.EnrollmentDeadline.Before(now)
}

// ConflictsWithEnrollments reports whether the course's cohort window
// overlaps the cohort window of any enrolled course.
func ConflictsWithEnrollments(c models.Course, enrollments []models.Enrollment) bool {
	window, ok := CohortWindow(c)
	if !ok {
		return false
	}
	for _, e := range enrollments {
		enrolled, ok := CohortWindow(e.Course)
		if !ok {
			continue
		}
		if Overlaps(window, enrolled) {
			return true
		}
	}
	return false
}

// EligibleCourses returns the courses a student may still apply to: the
// enrollment deadline has not passed and the cohort does not overlap any
// existing enrollment.
func EligibleCourses(courses []models.Course, enrollments []models.Enrollment, now time.Time) ([]models.Course, error) {
	if err := validateCourses(courses); err != nil {
		return nil, err
	}
	for _, e := range enrollments {
		if e.ID == "" {
			return nil, models.NewInvalidInput("enrollment.id", "is required")
		}
	}

	eligible := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		open := !DeadlinePassed(course, now)
		free := !ConflictsWithEnrollments(course, enrollments)
		if open && free {
			eligible = append(eligible, course)
		}
	}
	return eligible, nil
}
