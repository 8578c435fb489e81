package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
)

type coursesProviderStub struct {
	courses []models.Course
	err     error
	// stored holds courses reachable by id but absent from the snapshot.
	stored    map[string]models.Course
	lookupErr error
}

func (s coursesProviderStub) Courses(ctx context.Context) ([]models.Course, error) {
	return s.courses, s.err
}

func (s coursesProviderStub) Course(ctx context.Context, courseID string) (*models.Course, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	course, ok := s.stored[courseID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return &course, nil
}

type applicationRepoStub struct {
	byStudent map[string][]models.Application
	err       error
}

func (s applicationRepoStub) ListByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byStudent[studentID], nil
}

type enrollmentRepoStub struct {
	byStudent map[string][]models.Enrollment
	err       error
}

func (s enrollmentRepoStub) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byStudent[studentID], nil
}

func mustDate(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &parsed
}

func fixedClock(t *testing.T, value string) func() time.Time {
	now := *mustDate(t, value)
	return func() time.Time { return now }
}

func TestJourneyServiceResolveBrowsingAppliesDeadline(t *testing.T) {
	courses := []models.Course{
		{ID: "open", Title: "Open", EnrollmentDeadline: mustDate(t, "2024-03-01")},
		{ID: "closed", Title: "Closed", EnrollmentDeadline: mustDate(t, "2024-01-15")},
	}
	metrics := NewMetricsService()
	svc := NewJourneyService(coursesProviderStub{courses: courses}, applicationRepoStub{}, enrollmentRepoStub{}, metrics, nil).
		WithClock(fixedClock(t, "2024-02-01"))

	state, err := svc.Resolve(context.Background(), "student-1", "")
	require.NoError(t, err)

	browsing, ok := state.(journey.Browsing)
	require.True(t, ok)
	require.Len(t, browsing.EligibleCourses, 1)
	assert.Equal(t, "open", browsing.EligibleCourses[0].ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.journeyStates.WithLabelValues(string(journey.KindBrowsing))))
}

func TestJourneyServiceResolveReadyToPay(t *testing.T) {
	courses := catalogFixture()
	apps := applicationRepoStub{byStudent: map[string][]models.Application{
		"student-1": {
			{ID: "a1", StudentID: "student-1", CourseID: "c1", Status: models.ApplicationStatusPending},
			{ID: "a2", StudentID: "student-1", CourseID: "c2", Status: models.ApplicationStatusApproved},
		},
	}}
	svc := NewJourneyService(coursesProviderStub{courses: courses}, apps, enrollmentRepoStub{}, nil, nil)

	state, err := svc.Resolve(context.Background(), "student-1", "")
	require.NoError(t, err)

	ready, ok := state.(journey.ReadyToPay)
	require.True(t, ok)
	assert.Equal(t, "a2", ready.Application.ID)
	require.NotNil(t, ready.Course)
	assert.Equal(t, "c2", ready.Course.ID)
	assert.Len(t, ready.PaymentOptions, 2)
}

func TestJourneyServiceResolveReadyToPayCourseOutsideSnapshot(t *testing.T) {
	apps := applicationRepoStub{byStudent: map[string][]models.Application{
		"student-1": {{ID: "a1", StudentID: "student-1", CourseID: "retired", Status: models.ApplicationStatusApproved}},
	}}
	retired := models.Course{ID: "retired", Title: "Retired Course", Price: 80}
	svc := NewJourneyService(coursesProviderStub{courses: catalogFixture(), stored: map[string]models.Course{"retired": retired}}, apps, enrollmentRepoStub{}, nil, nil)

	state, err := svc.Resolve(context.Background(), "student-1", "")
	require.NoError(t, err)
	ready, ok := state.(journey.ReadyToPay)
	require.True(t, ok)
	require.NotNil(t, ready.Course)
	assert.Equal(t, "retired", ready.Course.ID)
	require.Len(t, ready.PaymentOptions, 1)
	assert.Equal(t, journey.PaymentFull, ready.PaymentOptions[0].Type)
	assert.Equal(t, 80.0, ready.PaymentOptions[0].Amount)
}

func TestJourneyServiceResolveReadyToPayUnknownCourse(t *testing.T) {
	apps := applicationRepoStub{byStudent: map[string][]models.Application{
		"student-1": {{ID: "a1", StudentID: "student-1", CourseID: "gone", Status: models.ApplicationStatusApproved}},
	}}
	svc := NewJourneyService(coursesProviderStub{}, apps, enrollmentRepoStub{}, nil, nil)

	state, err := svc.Resolve(context.Background(), "student-1", "")
	require.NoError(t, err)
	ready := state.(journey.ReadyToPay)
	assert.Nil(t, ready.Course)
	assert.Empty(t, ready.PaymentOptions)

	svc = NewJourneyService(coursesProviderStub{lookupErr: errors.New("db down")}, apps, enrollmentRepoStub{}, nil, nil)
	_, err = svc.Resolve(context.Background(), "student-1", "")
	require.Error(t, err)
}

func TestJourneyServiceResolveSelectsEnrollment(t *testing.T) {
	enrollments := enrollmentRepoStub{byStudent: map[string][]models.Enrollment{
		"student-1": {
			{ID: "e1", StudentID: "student-1", Course: models.Course{ID: "c1"}},
			{ID: "e2", StudentID: "student-1", Course: models.Course{ID: "c2"}},
		},
	}}
	svc := NewJourneyService(coursesProviderStub{courses: catalogFixture()}, applicationRepoStub{}, enrollments, nil, nil)

	state, err := svc.Resolve(context.Background(), "student-1", "")
	require.NoError(t, err)
	assert.Equal(t, "e1", state.(journey.Enrolled).Enrollment.ID)

	state, err = svc.Resolve(context.Background(), "student-1", "e2")
	require.NoError(t, err)
	enrolled := state.(journey.Enrolled)
	assert.Equal(t, "e2", enrolled.Enrollment.ID)
	assert.Len(t, enrolled.Enrollments, 2)
}

func TestJourneyServiceResolveMalformedApplication(t *testing.T) {
	apps := applicationRepoStub{byStudent: map[string][]models.Application{
		"student-1": {{ID: "a1", Status: models.ApplicationStatusPending}},
	}}
	svc := NewJourneyService(coursesProviderStub{}, apps, enrollmentRepoStub{}, nil, nil)

	_, err := svc.Resolve(context.Background(), "student-1", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidInput.Code, appCode(t, err))
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestJourneyServiceResolveRepositoryErrors(t *testing.T) {
	svc := NewJourneyService(coursesProviderStub{}, applicationRepoStub{err: errors.New("boom")}, enrollmentRepoStub{}, nil, nil)
	_, err := svc.Resolve(context.Background(), "student-1", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appCode(t, err))

	catalogErr := appErrors.Clone(appErrors.ErrInternal, "failed to load course catalog")
	svc = NewJourneyService(coursesProviderStub{err: catalogErr}, applicationRepoStub{}, enrollmentRepoStub{}, nil, nil)
	_, err = svc.Resolve(context.Background(), "student-1", "")
	assert.Equal(t, catalogErr, err)
}

func TestJourneyServiceEligibleCourses(t *testing.T) {
	courses := []models.Course{
		{ID: "overlap", Title: "Overlap", StartDate: mustDate(t, "2024-03-01"), EndDate: mustDate(t, "2024-05-01"), Category: "Programming"},
		{ID: "later", Title: "Later", StartDate: mustDate(t, "2024-07-01"), EndDate: mustDate(t, "2024-08-01"), Category: "Programming"},
		{ID: "design", Title: "Design", Category: "Design"},
	}
	enrollments := enrollmentRepoStub{byStudent: map[string][]models.Enrollment{
		"student-1": {{ID: "e1", Course: models.Course{ID: "current", StartDate: mustDate(t, "2024-04-01"), EndDate: mustDate(t, "2024-06-01")}}},
	}}
	svc := NewJourneyService(coursesProviderStub{courses: courses}, applicationRepoStub{}, enrollments, nil, nil).
		WithClock(fixedClock(t, "2024-02-01"))

	filters := models.FilterState{Categories: []string{"Programming"}, PriceRange: [2]float64{0, 10000}, DurationRange: [2]int{0, 52}}
	result, pagination, err := svc.EligibleCourses(context.Background(), "student-1", filters, 1, 20)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "later", result[0].ID)
	assert.Equal(t, 1, pagination.TotalCount)
}
