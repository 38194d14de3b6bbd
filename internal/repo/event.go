package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// eventCols selects the event row joined with the display fields of its
// event type. The LEFT JOIN keeps events readable after their type has been
// soft deleted — the stale reference still resolves for display.
const eventCols = `e.id, e.travel_id, e.title, e.description, e.event_type_id,
	       et.name, et.color, et.icon,
	       e.start_datetime, e.end_datetime, e.location,
	       e.is_deleted, e.deleted_at, e.created_at, e.updated_at`

const eventFrom = `FROM events e LEFT JOIN event_types et ON et.id = e.event_type_id`

// EventRepo defines the persistence operations for Events.
type EventRepo interface {
	// Create inserts a new event and returns the persisted record with its
	// event-type display fields resolved.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetByID retrieves a single event by primary key, deleted or not.
	// Returns domain.ErrNotFound if no event with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Event, error)

	// ListByTravel returns one page of non-deleted events of a travel
	// matching the filter, ordered by start_datetime ascending, plus the
	// total match count.
	ListByTravel(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error)

	// ListDeletedByTravel returns one page of soft-deleted events of a
	// travel, ordered by deleted_at descending, plus the total match count.
	ListDeletedByTravel(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error)

	// Update applies the non-nil patch fields plus updated_at and returns
	// the updated record. Returns domain.ErrNotFound if the row is missing.
	Update(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error)

	// SoftDelete marks a non-deleted event deleted and returns the stamped
	// deleted_at. Returns domain.ErrNotFound if no non-deleted row matched.
	SoftDelete(ctx context.Context, id int64) (time.Time, error)

	// Restore clears the deletion flag of a deleted event and returns the
	// restored record. Returns domain.ErrNotFound if no deleted row matched.
	Restore(ctx context.Context, id int64) (domain.Event, error)

	// CountActiveByTravel returns the number of non-deleted events
	// belonging to the travel.
	CountActiveByTravel(ctx context.Context, travelID int64) (int64, error)

	// CountActiveByType returns the number of non-deleted events
	// referencing the event type.
	CountActiveByType(ctx context.Context, eventTypeID int64) (int64, error)
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

// Create inserts a new event row and returns the persisted record with its
// event-type display fields resolved via a follow-up joined fetch.
func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		INSERT INTO events (travel_id, title, description, event_type_id,
		                    start_datetime, end_datetime, location)
		VALUES (@travel_id, @title, @description, @event_type_id,
		        @start_datetime, @end_datetime, @location)
		RETURNING id`

	args := pgx.NamedArgs{
		"travel_id":      event.TravelID,
		"title":          event.Title,
		"description":    nullIfEmpty(event.Description),
		"event_type_id":  event.EventTypeID,
		"start_datetime": event.StartAt,
		"end_datetime":   event.EndAt,
		"location":       nullIfEmpty(event.Location),
	}

	var id int64
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: refetch: %w", err)
	}
	return created, nil
}

// GetByID retrieves an event by primary key regardless of deletion state.
func (r *pgEventRepo) GetByID(ctx context.Context, id int64) (domain.Event, error) {
	q := `SELECT ` + eventCols + ` ` + eventFrom + ` WHERE e.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTravel returns one page of active events of a travel plus the total count.
func (r *pgEventRepo) ListByTravel(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error) {
	w := newWhere().
		condArg("e.travel_id = @travel_id", "travel_id", travelID).
		cond("e.is_deleted = false")
	if f.StartDateFrom != nil {
		w.condArg("e.start_datetime::date >= @start_from", "start_from", *f.StartDateFrom)
	}
	if f.StartDateTo != nil {
		w.condArg("e.start_datetime::date <= @start_to", "start_to", *f.StartDateTo)
	}
	if f.EventTypeID != 0 {
		w.condArg("e.event_type_id = @event_type_id", "event_type_id", f.EventTypeID)
	}
	if f.Location != "" {
		w.condArg("e.location ILIKE '%' || @location || '%'", "location", f.Location)
	}

	events, total, err := r.page(ctx, w, "ORDER BY e.start_datetime ASC", p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListByTravel: %w", err)
	}
	return events, total, nil
}

// ListDeletedByTravel returns one page of soft-deleted events of a travel.
func (r *pgEventRepo) ListDeletedByTravel(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error) {
	w := newWhere().
		condArg("e.travel_id = @travel_id", "travel_id", travelID).
		cond("e.is_deleted = true")

	events, total, err := r.page(ctx, w, "ORDER BY e.deleted_at DESC", p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListDeletedByTravel: %w", err)
	}
	return events, total, nil
}

func (r *pgEventRepo) page(ctx context.Context, w *whereClause, order string, p domain.PageParams) ([]domain.Event, int64, error) {
	countQ := `SELECT COUNT(*) ` + eventFrom + ` ` + w.sql()

	var total int64
	if err := r.db.QueryRow(ctx, countQ, w.namedArgs(nil)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	q := `SELECT ` + eventCols + ` ` + eventFrom + ` ` + w.sql() + ` ` + order + `
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, w.namedArgs(pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset}))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}
	return events, total, nil
}

// Update applies the provided patch fields and bumps updated_at.
// The joined display fields are refetched so a changed event_type_id is
// reflected in the returned record.
func (r *pgEventRepo) Update(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error) {
	s := newSet()
	if patch.Title != nil {
		s.setArg("title = @title", "title", *patch.Title)
	}
	if patch.Description != nil {
		s.setArg("description = @description", "description", nullIfEmpty(*patch.Description))
	}
	if patch.EventTypeID != nil {
		s.setArg("event_type_id = @event_type_id", "event_type_id", *patch.EventTypeID)
	}
	if patch.StartAt != nil {
		s.setArg("start_datetime = @start_datetime", "start_datetime", *patch.StartAt)
	}
	if patch.EndAt != nil {
		s.setArg("end_datetime = @end_datetime", "end_datetime", *patch.EndAt)
	}
	if patch.Location != nil {
		s.setArg("location = @location", "location", nullIfEmpty(*patch.Location))
	}
	s.set("updated_at = now()")

	q := `UPDATE events SET ` + s.sql() + ` WHERE id = @id RETURNING id`
	s.args["id"] = id

	var updatedID int64
	if err := r.db.QueryRow(ctx, q, s.args).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", domain.ErrNotFound)
		}
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}

	updated, err := r.GetByID(ctx, updatedID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: refetch: %w", err)
	}
	return updated, nil
}

// SoftDelete stamps the deletion flag on a currently active event.
func (r *pgEventRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	const q = `
		UPDATE events
		SET is_deleted = true, deleted_at = now(), updated_at = now()
		WHERE id = @id AND NOT is_deleted
		RETURNING deleted_at`

	var deletedAt time.Time
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, fmt.Errorf("repo.EventRepo.SoftDelete: %w", domain.ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("repo.EventRepo.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears the deletion flag on a currently deleted event.
func (r *pgEventRepo) Restore(ctx context.Context, id int64) (domain.Event, error) {
	const q = `
		UPDATE events
		SET is_deleted = false, deleted_at = NULL, updated_at = now()
		WHERE id = @id AND is_deleted
		RETURNING id`

	var restoredID int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&restoredID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, fmt.Errorf("repo.EventRepo.Restore: %w", domain.ErrNotFound)
		}
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Restore: %w", err)
	}

	restored, err := r.GetByID(ctx, restoredID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Restore: refetch: %w", err)
	}
	return restored, nil
}

// CountActiveByTravel counts non-deleted events of a travel.
func (r *pgEventRepo) CountActiveByTravel(ctx context.Context, travelID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM events WHERE travel_id = @travel_id AND is_deleted = false`

	var count int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"travel_id": travelID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.EventRepo.CountActiveByTravel: %w", err)
	}
	return count, nil
}

// CountActiveByType counts non-deleted events referencing an event type.
func (r *pgEventRepo) CountActiveByType(ctx context.Context, eventTypeID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM events WHERE event_type_id = @event_type_id AND is_deleted = false`

	var count int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"event_type_id": eventTypeID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.EventRepo.CountActiveByType: %w", err)
	}
	return count, nil
}

// scanEvent maps a single joined database row into a domain.Event.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		e           domain.Event
		description pgtype.Text
		location    pgtype.Text
		typeName    pgtype.Text
		typeColor   pgtype.Text
		typeIcon    pgtype.Text
		deletedAt   pgtype.Timestamptz
	)

	err := s.Scan(&e.ID, &e.TravelID, &e.Title, &description, &e.EventTypeID,
		&typeName, &typeColor, &typeIcon,
		&e.StartAt, &e.EndAt, &location,
		&e.IsDeleted, &deletedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	e.Description = description.String
	e.Location = location.String
	if typeName.Valid {
		v := typeName.String
		e.EventTypeName = &v
	}
	if typeColor.Valid {
		v := typeColor.String
		e.EventTypeColor = &v
	}
	if typeIcon.Valid {
		v := typeIcon.String
		e.EventTypeIcon = &v
	}
	if deletedAt.Valid {
		d := deletedAt.Time
		e.DeletedAt = &d
	}
	return e, nil
}
