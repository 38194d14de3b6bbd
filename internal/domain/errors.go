package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date,
// unknown category, malformed hex color).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrGone is returned when the resource exists but has been soft deleted.
// Handlers should map this to HTTP 410.
var ErrGone = errors.New("gone")

// ErrConflict is returned for duplicate uniqueness violations, deleting an
// already-deleted row, and restoring a row that is not deleted.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// InUseError reports a blocked event type deletion. It carries the number of
// active events still referencing the type so the handler can surface the
// count in the error context. errors.Is(err, ErrConflict) is true for it.
type InUseError struct {
	Name  string
	Count int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("cannot delete event type %q - it is used by %d active events", e.Name, e.Count)
}

func (e *InUseError) Unwrap() error { return ErrConflict }
