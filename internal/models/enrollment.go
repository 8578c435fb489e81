package models

import "time"

// Enrollment is a confirmed membership in a course. The course is embedded as
// it looked when the enrollment was loaded.
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	Course     Course    `json:"course"`
	Progress   float64   `json:"progress"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
