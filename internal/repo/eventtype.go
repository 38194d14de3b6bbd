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

const eventTypeCols = `id, name, category, color, icon,
	       is_deleted, deleted_at, created_at, updated_at`

// EventTypeRepo defines the persistence operations for EventTypes.
type EventTypeRepo interface {
	// Create inserts a new event type and returns the persisted record.
	Create(ctx context.Context, et domain.EventType) (domain.EventType, error)

	// GetByID retrieves a single event type by primary key, deleted or not.
	// Returns domain.ErrNotFound if no event type with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.EventType, error)

	// List returns one page of non-deleted event types matching the filter,
	// ordered by category then name, plus the total match count.
	List(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)

	// ListDeleted returns one page of soft-deleted event types, ordered by
	// deleted_at descending, plus the total match count.
	ListDeleted(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)

	// Update applies the non-nil patch fields plus updated_at and returns
	// the updated record. Returns domain.ErrNotFound if the row is missing.
	Update(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error)

	// SoftDelete marks a non-deleted event type deleted and returns the
	// stamped deleted_at. Returns domain.ErrNotFound if no non-deleted row
	// matched. The referential guard is enforced in the service layer.
	SoftDelete(ctx context.Context, id int64) (time.Time, error)

	// Restore clears the deletion flag of a deleted event type and returns
	// the restored record. Returns domain.ErrNotFound if no deleted row matched.
	Restore(ctx context.Context, id int64) (domain.EventType, error)

	// ExistsDuplicate reports whether a non-deleted event type other than
	// excludeID already uses the (name, category) pair, compared
	// case-insensitively. Pass excludeID=0 for create-time checks.
	ExistsDuplicate(ctx context.Context, name, category string, excludeID int64) (bool, error)
}

// pgEventTypeRepo is the Postgres implementation of EventTypeRepo.
type pgEventTypeRepo struct {
	db db
}

// NewEventTypeRepo constructs an EventTypeRepo backed by the provided db connection.
func NewEventTypeRepo(db db) EventTypeRepo {
	return &pgEventTypeRepo{db: db}
}

// Create inserts a new event type row and returns the full persisted record.
// The partial unique index on (lower(name), lower(category)) backstops the
// service-level duplicate check against concurrent creates.
func (r *pgEventTypeRepo) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	q := `
		INSERT INTO event_types (name, category, color, icon)
		VALUES (@name, @category, @color, @icon)
		RETURNING ` + eventTypeCols

	args := pgx.NamedArgs{
		"name":     et.Name,
		"category": et.Category,
		"color":    et.Color,
		"icon":     nullIfEmpty(et.Icon),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEventType(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Create: %w", domain.ErrConflict)
		}
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an event type by primary key regardless of deletion state.
func (r *pgEventTypeRepo) GetByID(ctx context.Context, id int64) (domain.EventType, error) {
	q := `SELECT ` + eventTypeCols + ` FROM event_types WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEventType(row)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of active event types plus the total match count.
func (r *pgEventTypeRepo) List(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	w := newWhere().cond("is_deleted = false")
	applyEventTypeFilter(w, f)

	types, total, err := r.page(ctx, w, "ORDER BY category ASC, name ASC", p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventTypeRepo.List: %w", err)
	}
	return types, total, nil
}

// ListDeleted returns one page of soft-deleted event types plus the total match count.
func (r *pgEventTypeRepo) ListDeleted(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	w := newWhere().cond("is_deleted = true")
	applyEventTypeFilter(w, f)

	types, total, err := r.page(ctx, w, "ORDER BY deleted_at DESC", p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventTypeRepo.ListDeleted: %w", err)
	}
	return types, total, nil
}

func (r *pgEventTypeRepo) page(ctx context.Context, w *whereClause, order string, p domain.PageParams) ([]domain.EventType, int64, error) {
	countQ := `SELECT COUNT(*) FROM event_types ` + w.sql()

	var total int64
	if err := r.db.QueryRow(ctx, countQ, w.namedArgs(nil)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	q := `SELECT ` + eventTypeCols + ` FROM event_types ` + w.sql() + ` ` + order + `
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, w.namedArgs(pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset}))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	types := []domain.EventType{}
	for rows.Next() {
		et, err := scanEventType(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		types = append(types, et)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}
	return types, total, nil
}

// Update applies the provided patch fields and bumps updated_at.
func (r *pgEventTypeRepo) Update(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error) {
	s := newSet()
	if patch.Name != nil {
		s.setArg("name = @name", "name", *patch.Name)
	}
	if patch.Category != nil {
		s.setArg("category = @category", "category", *patch.Category)
	}
	if patch.Color != nil {
		s.setArg("color = @color", "color", *patch.Color)
	}
	if patch.Icon != nil {
		s.setArg("icon = @icon", "icon", nullIfEmpty(*patch.Icon))
	}
	s.set("updated_at = now()")

	q := `UPDATE event_types SET ` + s.sql() + ` WHERE id = @id RETURNING ` + eventTypeCols
	s.args["id"] = id

	row := r.db.QueryRow(ctx, q, s.args)
	result, err := scanEventType(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Update: %w", domain.ErrConflict)
		}
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Update: %w", err)
	}
	return result, nil
}

// SoftDelete stamps the deletion flag on a currently active event type.
func (r *pgEventTypeRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	const q = `
		UPDATE event_types
		SET is_deleted = true, deleted_at = now(), updated_at = now()
		WHERE id = @id AND NOT is_deleted
		RETURNING deleted_at`

	var deletedAt time.Time
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, fmt.Errorf("repo.EventTypeRepo.SoftDelete: %w", domain.ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("repo.EventTypeRepo.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears the deletion flag on a currently deleted event type.
// If the (name, category) pair has since been reclaimed by an active type,
// the partial unique index rejects the update and ErrConflict is returned.
func (r *pgEventTypeRepo) Restore(ctx context.Context, id int64) (domain.EventType, error) {
	q := `
		UPDATE event_types
		SET is_deleted = false, deleted_at = NULL, updated_at = now()
		WHERE id = @id AND is_deleted
		RETURNING ` + eventTypeCols

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEventType(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Restore: %w: an active event type with the same name and category already exists",
				domain.ErrConflict)
		}
		return domain.EventType{}, fmt.Errorf("repo.EventTypeRepo.Restore: %w", err)
	}
	return result, nil
}

// ExistsDuplicate checks the case-insensitive (name, category) uniqueness
// constraint among non-deleted rows.
func (r *pgEventTypeRepo) ExistsDuplicate(ctx context.Context, name, category string, excludeID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM event_types
			WHERE lower(name) = lower(@name)
			  AND lower(category) = lower(@category)
			  AND is_deleted = false
			  AND id <> @exclude_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"name":       name,
		"category":   category,
		"exclude_id": excludeID,
	}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.EventTypeRepo.ExistsDuplicate: %w", err)
	}
	return exists, nil
}

func applyEventTypeFilter(w *whereClause, f domain.EventTypeFilter) {
	if f.Category != "" {
		w.condArg("lower(category) = lower(@category)", "category", f.Category)
	}
	if f.Name != "" {
		w.condArg("name ILIKE '%' || @name || '%'", "name", f.Name)
	}
}

// scanEventType maps a single database row into a domain.EventType.
func scanEventType(s scanner) (domain.EventType, error) {
	var (
		et        domain.EventType
		icon      pgtype.Text
		deletedAt pgtype.Timestamptz
	)

	err := s.Scan(&et.ID, &et.Name, &et.Category, &et.Color, &icon,
		&et.IsDeleted, &deletedAt, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EventType{}, domain.ErrNotFound
		}
		return domain.EventType{}, err
	}

	et.Icon = icon.String
	if deletedAt.Valid {
		d := deletedAt.Time
		et.DeletedAt = &d
	}
	return et, nil
}
