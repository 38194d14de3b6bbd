// Package domain contains the core data types for the Travel Planner application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Travel represents a planned trip. A travel is the top-level aggregate;
// events belong to a travel.
//
// Rows are never physically removed: soft deletion flips IsDeleted and stamps
// DeletedAt, and a restore reverses both. Deleted rows are invisible to the
// default listings and to get-by-id, but stay reachable through the dedicated
// deleted listing.
type Travel struct {
	ID          int64
	Title       string
	Description string // empty when not set
	StartDate   time.Time
	EndDate     time.Time
	Destination string // empty when not set
	IsDeleted   bool
	DeletedAt   *time.Time // nil unless IsDeleted
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TravelPatch holds the fields of a partial travel update.
// Nil pointers mean "leave unchanged".
type TravelPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Destination *string
}

// Empty reports whether the patch carries no fields at all.
func (p TravelPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Destination == nil
}

// TravelFilter holds the optional list predicates for travels.
// String fields match as case-insensitive substrings; date bounds are inclusive.
type TravelFilter struct {
	Title         string
	Destination   string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	EndDateFrom   *time.Time
	EndDateTo     *time.Time

	// DeletedFrom/DeletedTo bound the deletion date and apply only to the
	// deleted listing.
	DeletedFrom *time.Time
	DeletedTo   *time.Time
}
