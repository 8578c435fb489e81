// Package journey decides which single view a student should see given their
// applications, enrollments and the course catalog.
package journey

import (
	"time"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/models"
)

// Kind tags the variant of a ViewState.
type Kind string

// The four mutually exclusive journey states.
const (
	KindBrowsing         Kind = "BROWSING"
	KindAwaitingDecision Kind = "AWAITING_DECISION"
	KindReadyToPay       Kind = "READY_TO_PAY"
	KindEnrolled         Kind = "ENROLLED"
)

// ViewState is one of Browsing, AwaitingDecision, ReadyToPay or Enrolled.
type ViewState interface {
	Kind() Kind
	viewState()
}

// Browsing lists the catalog entries the student may still apply to.
type Browsing struct {
	EligibleCourses []models.Course
}

// AwaitingDecision holds the application still under consideration.
type AwaitingDecision struct {
	Application models.Application
}

// ReadyToPay holds an approved application. When the course is not part of
// the supplied catalog both Course and PaymentOptions are nil, so even the
// full payment option is absent; callers with access to the course store
// fill them in.
type ReadyToPay struct {
	Application    models.Application
	Course         *models.Course
	PaymentOptions []PaymentOption
}

// Enrolled holds the selected enrollment and every enrollment it was chosen
// from.
type Enrolled struct {
	Enrollment  models.Enrollment
	Enrollments []models.Enrollment
}

func (Browsing) Kind() Kind         { return KindBrowsing }
func (AwaitingDecision) Kind() Kind { return KindAwaitingDecision }
func (ReadyToPay) Kind() Kind       { return KindReadyToPay }
func (Enrolled) Kind() Kind         { return KindEnrolled }

func (Browsing) viewState()         {}
func (AwaitingDecision) viewState() {}
func (ReadyToPay) viewState()       {}
func (Enrolled) viewState()         {}

var statusPrecedence = []models.ApplicationStatus{
	models.ApplicationStatusApproved,
	models.ApplicationStatusUnderReview,
	models.ApplicationStatusPending,
}

// PriorityApplication picks the application representing the student's
// journey: APPROVED, then UNDER_REVIEW, then PENDING, otherwise the first
// element. Within a status the earliest element wins.
func PriorityApplication(applications []models.Application) (models.Application, bool) {
	if len(applications) == 0 {
		return models.Application{}, false
	}
	for _, status := range statusPrecedence {
		for _, app := range applications {
			if app.Status == status {
				return app, true
			}
		}
	}
	return applications[0], true
}

// State classifies the student without building the view payload.
func State(applications []models.Application, enrollments []models.Enrollment) Kind {
	if len(enrollments) > 0 {
		return KindEnrolled
	}
	if app, ok := PriorityApplication(applications); ok {
		if app.Status == models.ApplicationStatusApproved {
			return KindReadyToPay
		}
		return KindAwaitingDecision
	}
	return KindBrowsing
}

// Resolve builds the view state for a student. now is used for the
// enrollment deadline rule when the student is browsing.
func Resolve(courses []models.Course, applications []models.Application, enrollments []models.Enrollment, now time.Time) (ViewState, error) {
	if err := validate(applications, enrollments); err != nil {
		return nil, err
	}

	switch State(applications, enrollments) {
	case KindEnrolled:
		all := append([]models.Enrollment(nil), enrollments...)
		return Enrolled{Enrollment: all[0], Enrollments: all}, nil
	case KindReadyToPay:
		app, _ := PriorityApplication(applications)
		state := ReadyToPay{Application: app}
		for i := range courses {
			if courses[i].ID == app.CourseID {
				course := courses[i]
				state.Course = &course
				state.PaymentOptions = PaymentOptions(course)
				break
			}
		}
		return state, nil
	case KindAwaitingDecision:
		app, _ := PriorityApplication(applications)
		return AwaitingDecision{Application: app}, nil
	default:
		eligible, err := catalog.EligibleCourses(courses, enrollments, now)
		if err != nil {
			return nil, err
		}
		return Browsing{EligibleCourses: eligible}, nil
	}
}

// SelectEnrollment switches an Enrolled state to the enrollment with the
// given id. Other states, and unknown ids, are returned unchanged.
func SelectEnrollment(state ViewState, enrollmentID string) ViewState {
	enrolled, ok := state.(Enrolled)
	if !ok || enrollmentID == "" {
		return state
	}
	for _, e := range enrolled.Enrollments {
		if e.ID == enrollmentID {
			enrolled.Enrollment = e
			return enrolled
		}
	}
	return state
}

func validate(applications []models.Application, enrollments []models.Enrollment) error {
	for _, app := range applications {
		if app.ID == "" {
			return models.NewInvalidInput("application.id", "is required")
		}
		if app.CourseID == "" {
			return models.NewInvalidInput("application.course_id", "is required")
		}
	}
	for _, e := range enrollments {
		if e.ID == "" {
			return models.NewInvalidInput("enrollment.id", "is required")
		}
	}
	return nil
}
