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

// travelCols is the canonical column list selected for every travel query.
const travelCols = `id, title, description, start_date, end_date, destination,
	       is_deleted, deleted_at, created_at, updated_at`

// TravelRepo defines the persistence operations for Travels.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TravelRepo interface {
	// Create inserts a new travel and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, travel domain.Travel) (domain.Travel, error)

	// GetByID retrieves a single travel by primary key, deleted or not.
	// Returns domain.ErrNotFound if no travel with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Travel, error)

	// List returns one page of non-deleted travels matching the filter,
	// ordered by created_at descending, plus the total match count.
	List(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)

	// ListDeleted returns one page of soft-deleted travels matching the
	// filter, ordered by deleted_at descending, plus the total match count.
	ListDeleted(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)

	// Update applies the non-nil patch fields plus updated_at and returns
	// the updated record. Returns domain.ErrNotFound if the row is missing.
	Update(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error)

	// SoftDelete marks a non-deleted travel deleted and returns the stamped
	// deleted_at. Returns domain.ErrNotFound if no non-deleted row matched.
	SoftDelete(ctx context.Context, id int64) (time.Time, error)

	// Restore clears the deletion flag of a deleted travel and returns the
	// restored record. Returns domain.ErrNotFound if no deleted row matched.
	Restore(ctx context.Context, id int64) (domain.Travel, error)
}

// pgTravelRepo is the Postgres implementation of TravelRepo.
type pgTravelRepo struct {
	db db
}

// NewTravelRepo constructs a TravelRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravelRepo(db db) TravelRepo {
	return &pgTravelRepo{db: db}
}

// Create inserts a new travel row and returns the full persisted record.
func (r *pgTravelRepo) Create(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	q := `
		INSERT INTO travels (title, description, start_date, end_date, destination)
		VALUES (@title, @description, @start_date, @end_date, @destination)
		RETURNING ` + travelCols

	args := pgx.NamedArgs{
		"title":       travel.Title,
		"description": nullIfEmpty(travel.Description),
		"start_date":  travel.StartDate,
		"end_date":    travel.EndDate,
		"destination": nullIfEmpty(travel.Destination),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a travel by primary key regardless of deletion state.
// Deletion visibility rules live in the service layer.
func (r *pgTravelRepo) GetByID(ctx context.Context, id int64) (domain.Travel, error) {
	q := `SELECT ` + travelCols + ` FROM travels WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of active travels plus the total match count.
func (r *pgTravelRepo) List(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	w := newWhere().cond("is_deleted = false")
	applyTravelFilter(w, f)

	travels, total, err := r.page(ctx, w, "ORDER BY created_at DESC", p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.List: %w", err)
	}
	return travels, total, nil
}

// ListDeleted returns one page of soft-deleted travels plus the total match count.
func (r *pgTravelRepo) ListDeleted(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	w := newWhere().cond("is_deleted = true")
	applyTravelFilter(w, f)
	if f.DeletedFrom != nil {
		w.condArg("deleted_at::date >= @deleted_from", "deleted_from", *f.DeletedFrom)
	}
	if f.DeletedTo != nil {
		w.condArg("deleted_at::date <= @deleted_to", "deleted_to", *f.DeletedTo)
	}

	travels, total, err := r.page(ctx, w, "ORDER BY deleted_at DESC", p)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRepo.ListDeleted: %w", err)
	}
	return travels, total, nil
}

// page runs the shared count query + page query for a composed WHERE clause.
func (r *pgTravelRepo) page(ctx context.Context, w *whereClause, order string, p domain.PageParams) ([]domain.Travel, int64, error) {
	countQ := `SELECT COUNT(*) FROM travels ` + w.sql()

	var total int64
	if err := r.db.QueryRow(ctx, countQ, w.namedArgs(nil)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	q := `SELECT ` + travelCols + ` FROM travels ` + w.sql() + ` ` + order + `
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, w.namedArgs(pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset}))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	travels := []domain.Travel{}
	for rows.Next() {
		t, err := scanTravel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		travels = append(travels, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}
	return travels, total, nil
}

// Update applies the provided patch fields and bumps updated_at.
func (r *pgTravelRepo) Update(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error) {
	s := newSet()
	if patch.Title != nil {
		s.setArg("title = @title", "title", *patch.Title)
	}
	if patch.Description != nil {
		s.setArg("description = @description", "description", nullIfEmpty(*patch.Description))
	}
	if patch.StartDate != nil {
		s.setArg("start_date = @start_date", "start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		s.setArg("end_date = @end_date", "end_date", *patch.EndDate)
	}
	if patch.Destination != nil {
		s.setArg("destination = @destination", "destination", nullIfEmpty(*patch.Destination))
	}
	s.set("updated_at = now()")

	q := `UPDATE travels SET ` + s.sql() + ` WHERE id = @id RETURNING ` + travelCols
	s.args["id"] = id

	row := r.db.QueryRow(ctx, q, s.args)
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Update: %w", err)
	}
	return result, nil
}

// SoftDelete stamps the deletion flag on a currently active travel.
func (r *pgTravelRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	const q = `
		UPDATE travels
		SET is_deleted = true, deleted_at = now(), updated_at = now()
		WHERE id = @id AND NOT is_deleted
		RETURNING deleted_at`

	var deletedAt time.Time
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, fmt.Errorf("repo.TravelRepo.SoftDelete: %w", domain.ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("repo.TravelRepo.SoftDelete: %w", err)
	}
	return deletedAt, nil
}

// Restore clears the deletion flag on a currently deleted travel.
func (r *pgTravelRepo) Restore(ctx context.Context, id int64) (domain.Travel, error) {
	q := `
		UPDATE travels
		SET is_deleted = false, deleted_at = NULL, updated_at = now()
		WHERE id = @id AND is_deleted
		RETURNING ` + travelCols

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTravel(row)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("repo.TravelRepo.Restore: %w", err)
	}
	return result, nil
}

// applyTravelFilter adds the predicates shared by List and ListDeleted.
func applyTravelFilter(w *whereClause, f domain.TravelFilter) {
	if f.Title != "" {
		w.condArg("title ILIKE '%' || @title || '%'", "title", f.Title)
	}
	if f.Destination != "" {
		w.condArg("destination ILIKE '%' || @destination || '%'", "destination", f.Destination)
	}
	if f.StartDateFrom != nil {
		w.condArg("start_date >= @start_from", "start_from", *f.StartDateFrom)
	}
	if f.StartDateTo != nil {
		w.condArg("start_date <= @start_to", "start_to", *f.StartDateTo)
	}
	if f.EndDateFrom != nil {
		w.condArg("end_date >= @end_from", "end_from", *f.EndDateFrom)
	}
	if f.EndDateTo != nil {
		w.condArg("end_date <= @end_to", "end_to", *f.EndDateTo)
	}
}

// scanTravel maps a single database row into a domain.Travel.
// It handles the nullable text and timestamp conversions.
func scanTravel(s scanner) (domain.Travel, error) {
	var (
		t           domain.Travel
		description pgtype.Text
		destination pgtype.Text
		startDate   pgtype.Date
		endDate     pgtype.Date
		deletedAt   pgtype.Timestamptz
	)

	err := s.Scan(&t.ID, &t.Title, &description, &startDate, &endDate,
		&destination, &t.IsDeleted, &deletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Travel{}, domain.ErrNotFound
		}
		return domain.Travel{}, err
	}

	t.Description = description.String
	t.Destination = destination.String
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	if deletedAt.Valid {
		d := deletedAt.Time
		t.DeletedAt = &d
	}
	return t, nil
}

// nullIfEmpty maps "" to SQL NULL so optional text columns stay NULL
// instead of storing empty strings.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
