package domain

import (
	"strings"
	"time"
)

// AllowedCategories is the fixed set of event type categories.
// Category membership is checked case-insensitively.
var AllowedCategories = []string{
	"accommodation", "transportation", "activity", "food", "shopping",
	"entertainment", "health", "business", "education", "other",
}

// ValidCategory reports whether category is in AllowedCategories,
// ignoring case.
func ValidCategory(category string) bool {
	for _, c := range AllowedCategories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// EventType classifies events (lodging, transport, meals, ...).
// The pair (lowercased name, lowercased category) is unique among
// non-deleted rows.
type EventType struct {
	ID        int64
	Name      string
	Category  string
	Color     string // "#RRGGBB"
	Icon      string // empty when not set
	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventTypePatch holds the fields of a partial event type update.
// Nil pointers mean "leave unchanged".
type EventTypePatch struct {
	Name     *string
	Category *string
	Color    *string
	Icon     *string
}

// Empty reports whether the patch carries no fields at all.
func (p EventTypePatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Color == nil && p.Icon == nil
}

// EventTypeFilter holds the optional list predicates for event types.
type EventTypeFilter struct {
	// Category matches case-insensitively as an exact value.
	Category string
	// Name matches as a case-insensitive substring.
	Name string
}
