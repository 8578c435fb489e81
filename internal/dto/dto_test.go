package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
)

func TestCourseQueryFilterState(t *testing.T) {
	q := CourseQuery{
		Search:       "go",
		Categories:   "Programming, Design,",
		Difficulties: "Beginner",
		Modes:        "Online,Hybrid",
		MinPrice:     "10",
		MaxPrice:     "abc",
		MaxDuration:  "12",
		Rating:       "4.5",
		Sort:         "price",
		Order:        "DESC",
	}

	f := q.FilterState()
	assert.Equal(t, "go", f.Search)
	assert.Equal(t, []string{"Programming", "Design"}, f.Categories)
	assert.Equal(t, []models.Difficulty{models.DifficultyBeginner}, f.Difficulties)
	assert.Equal(t, []models.DeliveryMode{models.ModeOnline, models.ModeHybrid}, f.Modes)
	assert.Equal(t, [2]float64{10, 10000}, f.PriceRange)
	assert.Equal(t, [2]int{1, 12}, f.DurationRange)
	assert.Equal(t, 4.5, f.Rating)
	assert.Equal(t, models.SortByPrice, f.SortBy)
	assert.Equal(t, models.SortAsc, f.SortOrder)
}

func TestCourseQueryEmptyIsDefault(t *testing.T) {
	f := CourseQuery{}.FilterState()
	assert.Equal(t, 0, CatalogMeta(f)["active_filters"])
	assert.Equal(t, models.SortByTitle, f.SortBy)
}

func TestNewJourneyResponse(t *testing.T) {
	app := models.Application{ID: "a1", CourseID: "c1", Status: models.ApplicationStatusApproved}
	course := models.Course{ID: "c1", Price: 100}

	resp := NewJourneyResponse(journey.ReadyToPay{Application: app, Course: &course, PaymentOptions: journey.PaymentOptions(course)})
	assert.Equal(t, journey.KindReadyToPay, resp.State)
	assert.Equal(t, "a1", resp.Application.ID)
	assert.Len(t, resp.PaymentOptions, 1)
	assert.Nil(t, resp.Enrollment)

	enrollment := models.Enrollment{ID: "e1"}
	resp = NewJourneyResponse(journey.Enrolled{Enrollment: enrollment, Enrollments: []models.Enrollment{enrollment}})
	assert.Equal(t, journey.KindEnrolled, resp.State)
	assert.Equal(t, "e1", resp.Enrollment.ID)
	assert.Nil(t, resp.Application)

	resp = NewJourneyResponse(journey.AwaitingDecision{Application: app})
	assert.Equal(t, journey.KindAwaitingDecision, resp.State)

	resp = NewJourneyResponse(journey.Browsing{EligibleCourses: []models.Course{course}})
	assert.Equal(t, journey.KindBrowsing, resp.State)
	require.NotNil(t, resp.EligibleCourses)
	assert.Len(t, *resp.EligibleCourses, 1)
}

func TestJourneyResponseJSONEligibleCourses(t *testing.T) {
	body, err := json.Marshal(NewJourneyResponse(journey.Browsing{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"BROWSING","eligible_courses":[]}`, string(body))

	body, err = json.Marshal(NewJourneyResponse(journey.AwaitingDecision{Application: models.Application{ID: "a1"}}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "eligible_courses")
}
