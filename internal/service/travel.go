package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
	"github.com/jlemaire/travel-planner/backend/internal/repo"
)

// TravelService implements business logic for Travel operations.
// It holds the events repo as well because get-by-id reports the number of
// active events belonging to the travel.
type TravelService struct {
	travels repo.TravelRepo
	events  repo.EventRepo
}

// NewTravelService constructs a TravelService backed by the provided repos.
func NewTravelService(travels repo.TravelRepo, events repo.EventRepo) *TravelService {
	return &TravelService{travels: travels, events: events}
}

// List returns one page of active travels matching the filter plus the total count.
func (s *TravelService) List(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	travels, total, err := s.travels.List(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TravelService.List: %w", err)
	}
	return travels, total, nil
}

// ListDeleted returns one page of soft-deleted travels plus the total count.
func (s *TravelService) ListDeleted(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	travels, total, err := s.travels.ListDeleted(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TravelService.ListDeleted: %w", err)
	}
	return travels, total, nil
}

// Get returns a single active travel and its active-events count.
// Returns domain.ErrNotFound if the travel does not exist and domain.ErrGone
// if it has been soft deleted.
func (s *TravelService) Get(ctx context.Context, id int64) (domain.Travel, int64, error) {
	travel, err := s.travels.GetByID(ctx, id)
	if err != nil {
		return domain.Travel{}, 0, fmt.Errorf("service.TravelService.Get: %w", err)
	}
	if travel.IsDeleted {
		return domain.Travel{}, 0, fmt.Errorf("service.TravelService.Get: travel %d: %w", id, domain.ErrGone)
	}

	count, err := s.events.CountActiveByTravel(ctx, id)
	if err != nil {
		return domain.Travel{}, 0, fmt.Errorf("service.TravelService.Get: %w", err)
	}
	return travel, count, nil
}

// Create validates, sanitizes, and persists a new travel.
func (s *TravelService) Create(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	title, err := sanitizeRequired("title", travel.Title, maxTitleLen)
	if err != nil {
		return domain.Travel{}, err
	}
	travel.Title = title

	if travel.Description, err = sanitizeOptional("description", travel.Description, maxDescriptionLen); err != nil {
		return domain.Travel{}, err
	}
	if travel.Destination, err = sanitizeOptional("destination", travel.Destination, maxDestinationLen); err != nil {
		return domain.Travel{}, err
	}
	if !travel.StartDate.Before(travel.EndDate) {
		return domain.Travel{}, fmt.Errorf("%w: start_date must be before end_date", domain.ErrValidation)
	}

	created, err := s.travels.Create(ctx, travel)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Create: %w", err)
	}

	logBusinessEvent(ctx, "travel_created", "travel", created.ID, "title", created.Title)
	return created, nil
}

// Update validates and applies a partial update to an active travel.
// Dates provided alone are checked against the existing counterpart.
func (s *TravelService) Update(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error) {
	existing, err := s.travels.GetByID(ctx, id)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", err)
	}
	if existing.IsDeleted {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: travel %d: %w", id, domain.ErrGone)
	}
	if patch.Empty() {
		return domain.Travel{}, fmt.Errorf("%w: no valid fields provided for update", domain.ErrValidation)
	}

	if patch.Title != nil {
		title, err := sanitizeRequired("title", *patch.Title, maxTitleLen)
		if err != nil {
			return domain.Travel{}, err
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		desc, err := sanitizeOptional("description", *patch.Description, maxDescriptionLen)
		if err != nil {
			return domain.Travel{}, err
		}
		patch.Description = &desc
	}
	if patch.Destination != nil {
		dest, err := sanitizeOptional("destination", *patch.Destination, maxDestinationLen)
		if err != nil {
			return domain.Travel{}, err
		}
		patch.Destination = &dest
	}

	start, end := existing.StartDate, existing.EndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if !start.Before(end) {
		return domain.Travel{}, fmt.Errorf("%w: start_date must be before end_date", domain.ErrValidation)
	}

	updated, err := s.travels.Update(ctx, id, patch)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", err)
	}

	logBusinessEvent(ctx, "travel_updated", "travel", id)
	return updated, nil
}

// SoftDelete marks a travel deleted and returns the deletion timestamp.
// Returns domain.ErrNotFound if the travel does not exist and
// domain.ErrConflict if it is already deleted. Events of the travel are not
// cascaded — they stay individually managed.
func (s *TravelService) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	existing, err := s.travels.GetByID(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.TravelService.SoftDelete: %w", err)
	}
	if existing.IsDeleted {
		return time.Time{}, fmt.Errorf("%w: travel %d is already deleted", domain.ErrConflict, id)
	}

	deletedAt, err := s.travels.SoftDelete(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.TravelService.SoftDelete: %w", err)
	}

	logBusinessEvent(ctx, "travel_deleted", "travel", id, "title", existing.Title)
	return deletedAt, nil
}

// Restore reverses a soft delete and returns the restored travel.
// Returns domain.ErrNotFound if the travel does not exist and
// domain.ErrConflict if it is not currently deleted.
func (s *TravelService) Restore(ctx context.Context, id int64) (domain.Travel, error) {
	existing, err := s.travels.GetByID(ctx, id)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Restore: %w", err)
	}
	if !existing.IsDeleted {
		return domain.Travel{}, fmt.Errorf("%w: travel %d is not deleted", domain.ErrConflict, id)
	}

	restored, err := s.travels.Restore(ctx, id)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Restore: %w", err)
	}

	logBusinessEvent(ctx, "travel_restored", "travel", id, "title", existing.Title)
	return restored, nil
}
