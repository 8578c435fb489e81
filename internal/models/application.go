package models

import "time"

// ApplicationStatus represents the review lifecycle of an application.
type ApplicationStatus string

// Possible application statuses.
const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
)

// Application is a student's request to join a course.
type Application struct {
	ID          string            `db:"id" json:"id"`
	StudentID   string            `db:"student_id" json:"student_id"`
	CourseID    string            `db:"course_id" json:"course_id"`
	Status      ApplicationStatus `db:"status" json:"status"`
	SubmittedAt time.Time         `db:"submitted_at" json:"submitted_at"`
	ReviewNotes *string           `db:"review_notes" json:"review_notes,omitempty"`
}
