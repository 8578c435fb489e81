package models

import "time"

// SortKey selects the course attribute used for ordering.
type SortKey string

// Supported sort keys.
const (
	SortByTitle       SortKey = "title"
	SortByPrice       SortKey = "price"
	SortByDuration    SortKey = "duration"
	SortByRating      SortKey = "rating"
	SortByEnrollments SortKey = "enrollments"
	SortByCreatedAt   SortKey = "createdAt"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

// Supported sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterState is the filter and sort specification applied to a catalog.
type FilterState struct {
	Search        string         `json:"search" yaml:"search"`
	Categories    []string       `json:"categories" yaml:"categories"`
	Difficulties  []Difficulty   `json:"difficulties" yaml:"difficulties"`
	Modes         []DeliveryMode `json:"modes" yaml:"modes"`
	PriceRange    [2]float64     `json:"price_range" yaml:"price_range"`
	DurationRange [2]int         `json:"duration_range" yaml:"duration_range"`
	Rating        float64        `json:"rating" yaml:"rating"`
	SortBy        SortKey        `json:"sort_by" yaml:"sort_by"`
	SortOrder     SortOrder      `json:"sort_order" yaml:"sort_order"`
}

// FilterPreset is a named FilterState shipped with the system.
type FilterPreset struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Filters     FilterState `json:"filters" yaml:"filters"`
}

// SavedSearch is a user-created FilterState stored under a user-chosen name.
// Names are not unique.
type SavedSearch struct {
	Name      string      `json:"name"`
	Filters   FilterState `json:"filters"`
	CreatedAt time.Time   `json:"created_at"`
}
