package dto

import (
	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
)

// JourneyResponse flattens a journey view state for the API. Only the fields
// belonging to State are populated. EligibleCourses is a pointer so a browsing
// student with nothing left to apply to still gets an empty list.
type JourneyResponse struct {
	State           journey.Kind            `json:"state"`
	EligibleCourses *[]models.Course        `json:"eligible_courses,omitempty"`
	Application     *models.Application     `json:"application,omitempty"`
	Course          *models.Course          `json:"course,omitempty"`
	PaymentOptions  []journey.PaymentOption `json:"payment_options,omitempty"`
	Enrollment      *models.Enrollment      `json:"enrollment,omitempty"`
	Enrollments     []models.Enrollment     `json:"enrollments,omitempty"`
}

// NewJourneyResponse converts a view state into its response shape.
func NewJourneyResponse(state journey.ViewState) JourneyResponse {
	switch s := state.(type) {
	case journey.Browsing:
		eligible := make([]models.Course, len(s.EligibleCourses))
		copy(eligible, s.EligibleCourses)
		return JourneyResponse{State: s.Kind(), EligibleCourses: &eligible}
	case journey.AwaitingDecision:
		app := s.Application
		return JourneyResponse{State: s.Kind(), Application: &app}
	case journey.ReadyToPay:
		app := s.Application
		return JourneyResponse{State: s.Kind(), Application: &app, Course: s.Course, PaymentOptions: s.PaymentOptions}
	case journey.Enrolled:
		enrollment := s.Enrollment
		return JourneyResponse{State: s.Kind(), Enrollment: &enrollment, Enrollments: s.Enrollments}
	default:
		return JourneyResponse{}
	}
}
