package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/logger"
)

type coursesProvider interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Course(ctx context.Context, courseID string) (*models.Course, error)
}

type applicationReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Application, error)
}

type enrollmentReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error)
}

// JourneyService resolves the view a student should see from their records.
type JourneyService struct {
	catalog      coursesProvider
	applications applicationReader
	enrollments  enrollmentReader
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
}

// NewJourneyService constructs a JourneyService.
func NewJourneyService(courses coursesProvider, applications applicationReader, enrollments enrollmentReader, metrics *MetricsService, logger *zap.Logger) *JourneyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JourneyService{
		catalog:      courses,
		applications: applications,
		enrollments:  enrollments,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the time source used for deadline checks.
func (s *JourneyService) WithClock(now func() time.Time) *JourneyService {
	if now != nil {
		s.now = now
	}
	return s
}

// Resolve loads the student's records and computes their journey state. A
// non-empty enrollmentID selects that enrollment inside an Enrolled state.
func (s *JourneyService) Resolve(ctx context.Context, studentID, enrollmentID string) (journey.ViewState, error) {
	courses, err := s.catalog.Courses(ctx)
	if err != nil {
		return nil, err
	}
	applications, err := s.loadApplications(ctx, studentID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.loadEnrollments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	state, err := journey.Resolve(courses, applications, enrollments, s.now())
	if err != nil {
		logger.WithContext(ctx, s.logger).Warn("journey resolution rejected records", zap.String("student_id", studentID), zap.Error(err))
		return nil, translateCoreError(err, "failed to resolve journey")
	}
	if ready, ok := state.(journey.ReadyToPay); ok && ready.Course == nil {
		if state, err = s.completeReadyToPay(ctx, ready); err != nil {
			return nil, err
		}
	}
	if enrollmentID != "" {
		state = journey.SelectEnrollment(state, enrollmentID)
	}
	s.metrics.RecordJourneyState(string(state.Kind()))
	return state, nil
}

// EligibleCourses returns the courses the student may still apply to, with
// the supplied filters and pagination applied.
func (s *JourneyService) EligibleCourses(ctx context.Context, studentID string, filters models.FilterState, page, size int) ([]models.Course, *models.Pagination, error) {
	courses, err := s.catalog.Courses(ctx)
	if err != nil {
		return nil, nil, err
	}
	enrollments, err := s.loadEnrollments(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	eligible, err := catalog.EligibleCourses(courses, enrollments, s.now())
	if err != nil {
		return nil, nil, translateCoreError(err, "failed to compute eligible courses")
	}
	result, err := catalog.FilterAndSort(eligible, filters)
	if err != nil {
		return nil, nil, translateCoreError(err, "failed to filter courses")
	}
	s.metrics.ObserveFilterResults(len(result))

	pagination := models.NewPagination(page, size, len(result))
	start, end := pagination.Bounds()
	return result[start:end], &pagination, nil
}

// completeReadyToPay looks up an approved course that has dropped out of the
// published catalog so its payment options can still be offered. A course
// that no longer exists at all leaves the state without options.
func (s *JourneyService) completeReadyToPay(ctx context.Context, ready journey.ReadyToPay) (journey.ViewState, error) {
	course, err := s.catalog.Course(ctx, ready.Application.CourseID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			logger.WithContext(ctx, s.logger).Warn("approved application references unknown course",
				zap.String("application_id", ready.Application.ID), zap.String("course_id", ready.Application.CourseID))
			return ready, nil
		}
		return nil, err
	}
	ready.Course = course
	ready.PaymentOptions = journey.PaymentOptions(*course)
	return ready, nil
}

func (s *JourneyService) loadApplications(ctx context.Context, studentID string) ([]models.Application, error) {
	start := time.Now()
	applications, err := s.applications.ListByStudent(ctx, studentID)
	s.metrics.ObserveDBQuery("applications_list_by_student", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applications")
	}
	return applications, nil
}

func (s *JourneyService) loadEnrollments(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	start := time.Now()
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	s.metrics.ObserveDBQuery("enrollments_list_by_student", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	return enrollments, nil
}
