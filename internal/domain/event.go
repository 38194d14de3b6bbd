package domain

import "time"

// Event is a scheduled item inside a travel. Every event references its
// parent travel and an event type. The event type must be non-deleted at the
// time the reference is written; if the type is deleted afterwards the event
// keeps the stale id and its display fields still resolve via the join.
type Event struct {
	ID          int64
	TravelID    int64
	Title       string
	Description string // empty when not set
	EventTypeID int64
	StartAt     time.Time
	EndAt       time.Time
	Location    string // empty when not set
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Display fields resolved from the referenced event type via LEFT JOIN.
	// Nil when the join found no row.
	EventTypeName  *string
	EventTypeColor *string
	EventTypeIcon  *string
}

// EventPatch holds the fields of a partial event update.
// Nil pointers mean "leave unchanged".
type EventPatch struct {
	Title       *string
	Description *string
	EventTypeID *int64
	StartAt     *time.Time
	EndAt       *time.Time
	Location    *string
}

// Empty reports whether the patch carries no fields at all.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.EventTypeID == nil &&
		p.StartAt == nil && p.EndAt == nil && p.Location == nil
}

// EventFilter holds the optional list predicates for events within a travel.
// Date bounds compare against the calendar date of StartAt, inclusive.
type EventFilter struct {
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	EventTypeID   int64 // 0 means "any"
	Location      string
}
