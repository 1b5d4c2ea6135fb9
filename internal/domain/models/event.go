package models

import "time"

// EventRecord is one entry of the externally supplied event catalog.
// Required fields are validated once at catalog load time.
type EventRecord struct {
	Date           time.Time `json:"date" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Category       string    `json:"category" validate:"required"`
	Severity       string    `json:"severity" validate:"required"`
	Description    string    `json:"description,omitempty"`
	ExpectedImpact string    `json:"expected_impact,omitempty"`
	Region         string    `json:"region,omitempty"`
}

// EventCatalog is a date-ascending list of events. The core never
// mutates it.
type EventCatalog struct {
	Events []EventRecord
}

func (c EventCatalog) Len() int { return len(c.Events) }

// EventMatch pairs an event with its signed day distance to a reference
// date.
type EventMatch struct {
	Event   EventRecord `json:"event"`
	LagDays int         `json:"lag_days"`
}

// CatalogDistribution counts catalog entries by year, category, severity
// and region.
type CatalogDistribution struct {
	Total      int            `json:"total"`
	ByYear     map[int]int    `json:"by_year"`
	ByCategory map[string]int `json:"by_category"`
	BySeverity map[string]int `json:"by_severity"`
	ByRegion   map[string]int `json:"by_region"`
}
