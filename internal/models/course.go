package models

import "time"

// Difficulty grades a course's expected prior knowledge.
type Difficulty string

// Supported difficulty levels.
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// DeliveryMode describes how a course is delivered.
type DeliveryMode string

// Supported delivery modes.
const (
	ModeOnline  DeliveryMode = "Online"
	ModeOffline DeliveryMode = "Offline"
	ModeHybrid  DeliveryMode = "Hybrid"
)

// InstallmentPlan describes how a course price may be split.
type InstallmentPlan struct {
	Upfront      float64 `json:"upfront"`
	Installments int     `json:"installments,omitempty"`
}

// Course is a catalog entry as published by the catalog service.
type Course struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	InstructorName     string           `json:"instructor_name,omitempty"`
	Category           string           `json:"category"`
	Difficulty         Difficulty       `json:"difficulty"`
	Modes              []DeliveryMode   `json:"mode"`
	Price              float64          `json:"price"`
	Duration           int              `json:"duration"`
	AverageRating      *float64         `json:"average_rating,omitempty"`
	EnrollmentCount    int              `json:"enrollment_count"`
	CreatedAt          time.Time        `json:"created_at"`
	EnrollmentDeadline *time.Time       `json:"enrollment_deadline,omitempty"`
	StartDate          *time.Time       `json:"start_date,omitempty"`
	EndDate            *time.Time       `json:"end_date,omitempty"`
	InstallmentEnabled bool             `json:"installment_enabled"`
	InstallmentPlan    *InstallmentPlan `json:"installment_plan,omitempty"`
}

// Rating returns the average rating, treating a missing value as zero.
func (c Course) Rating() float64 {
	if c.AverageRating == nil {
		return 0
	}
	return *c.AverageRating
}

// HasMode reports whether the course is offered in the given mode.
func (c Course) HasMode(mode DeliveryMode) bool {
	for _, m := range c.Modes {
		if m == mode {
			return true
		}
	}
	return false
}
