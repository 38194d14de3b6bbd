package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
	"github.com/jlemaire/travel-planner/backend/internal/repo"
)

// EventService implements business logic for Event operations.
// It holds all three repos: creating an event requires the parent travel to
// be active and the referenced event type to be non-deleted.
type EventService struct {
	travels    repo.TravelRepo
	events     repo.EventRepo
	eventTypes repo.EventTypeRepo
}

// NewEventService constructs an EventService backed by the provided repos.
func NewEventService(travels repo.TravelRepo, events repo.EventRepo, eventTypes repo.EventTypeRepo) *EventService {
	return &EventService{travels: travels, events: events, eventTypes: eventTypes}
}

// ListByTravel returns one page of active events of a travel.
// The travel must exist and not be deleted (not found / gone otherwise).
func (s *EventService) ListByTravel(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error) {
	if err := s.requireActiveTravel(ctx, travelID); err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListByTravel: %w", err)
	}
	events, total, err := s.events.ListByTravel(ctx, travelID, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListByTravel: %w", err)
	}
	return events, total, nil
}

// ListDeletedByTravel returns one page of soft-deleted events of a travel.
// The travel only needs to exist — a deleted travel still exposes its
// deleted events through this path.
func (s *EventService) ListDeletedByTravel(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error) {
	if _, err := s.travels.GetByID(ctx, travelID); err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListDeletedByTravel: %w", err)
	}
	events, total, err := s.events.ListDeletedByTravel(ctx, travelID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventService.ListDeletedByTravel: %w", err)
	}
	return events, total, nil
}

// Get returns a single active event with its event-type display fields.
func (s *EventService) Get(ctx context.Context, id int64) (domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Get: %w", err)
	}
	if event.IsDeleted {
		return domain.Event{}, fmt.Errorf("service.EventService.Get: event %d: %w", id, domain.ErrGone)
	}
	return event, nil
}

// Create validates and persists a new event under the given travel.
// The travel must be active (not found / gone). The event type must exist and
// be non-deleted — that failure is a validation error, not gone, matching the
// documented API contract.
func (s *EventService) Create(ctx context.Context, travelID int64, event domain.Event) (domain.Event, error) {
	if err := s.requireActiveTravel(ctx, travelID); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}
	if err := s.requireActiveEventType(ctx, event.EventTypeID); err != nil {
		return domain.Event{}, err
	}

	title, err := sanitizeRequired("title", event.Title, maxTitleLen)
	if err != nil {
		return domain.Event{}, err
	}
	event.Title = title

	if event.Description, err = sanitizeOptional("description", event.Description, maxDescriptionLen); err != nil {
		return domain.Event{}, err
	}
	if event.Location, err = sanitizeOptional("location", event.Location, maxLocationLen); err != nil {
		return domain.Event{}, err
	}
	if !event.StartAt.Before(event.EndAt) {
		return domain.Event{}, fmt.Errorf("%w: start_datetime must be before end_datetime", domain.ErrValidation)
	}

	event.TravelID = travelID
	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}

	logBusinessEvent(ctx, "event_created", "event", created.ID,
		"travel_id", travelID, "title", created.Title, "event_type_id", created.EventTypeID)
	return created, nil
}

// Update validates and applies a partial update to an active event.
// A changed event type reference is re-validated; datetimes provided alone
// are checked against the existing counterpart.
func (s *EventService) Update(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error) {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	if existing.IsDeleted {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: event %d: %w", id, domain.ErrGone)
	}
	if patch.Empty() {
		return domain.Event{}, fmt.Errorf("%w: no valid fields provided for update", domain.ErrValidation)
	}

	if patch.Title != nil {
		title, err := sanitizeRequired("title", *patch.Title, maxTitleLen)
		if err != nil {
			return domain.Event{}, err
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		desc, err := sanitizeOptional("description", *patch.Description, maxDescriptionLen)
		if err != nil {
			return domain.Event{}, err
		}
		patch.Description = &desc
	}
	if patch.Location != nil {
		loc, err := sanitizeOptional("location", *patch.Location, maxLocationLen)
		if err != nil {
			return domain.Event{}, err
		}
		patch.Location = &loc
	}
	if patch.EventTypeID != nil {
		if err := s.requireActiveEventType(ctx, *patch.EventTypeID); err != nil {
			return domain.Event{}, err
		}
	}

	start, end := existing.StartAt, existing.EndAt
	if patch.StartAt != nil {
		start = *patch.StartAt
	}
	if patch.EndAt != nil {
		end = *patch.EndAt
	}
	if !start.Before(end) {
		return domain.Event{}, fmt.Errorf("%w: start_datetime must be before end_datetime", domain.ErrValidation)
	}

	updated, err := s.events.Update(ctx, id, patch)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}

	logBusinessEvent(ctx, "event_updated", "event", id)
	return updated, nil
}

// SoftDelete marks an event deleted and returns the deletion timestamp.
func (s *EventService) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.EventService.SoftDelete: %w", err)
	}
	if existing.IsDeleted {
		return time.Time{}, fmt.Errorf("%w: event %d is already deleted", domain.ErrConflict, id)
	}

	deletedAt, err := s.events.SoftDelete(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.EventService.SoftDelete: %w", err)
	}

	logBusinessEvent(ctx, "event_deleted", "event", id, "travel_id", existing.TravelID)
	return deletedAt, nil
}

// Restore reverses a soft delete and returns the restored event.
func (s *EventService) Restore(ctx context.Context, id int64) (domain.Event, error) {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Restore: %w", err)
	}
	if !existing.IsDeleted {
		return domain.Event{}, fmt.Errorf("%w: event %d is not deleted", domain.ErrConflict, id)
	}

	restored, err := s.events.Restore(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Restore: %w", err)
	}

	logBusinessEvent(ctx, "event_restored", "event", id, "travel_id", existing.TravelID)
	return restored, nil
}

// requireActiveTravel fails with not found / gone unless the travel exists
// and is not deleted.
func (s *EventService) requireActiveTravel(ctx context.Context, travelID int64) error {
	travel, err := s.travels.GetByID(ctx, travelID)
	if err != nil {
		return err
	}
	if travel.IsDeleted {
		return fmt.Errorf("travel %d: %w", travelID, domain.ErrGone)
	}
	return nil
}

// requireActiveEventType fails with a validation error unless the event type
// exists and is not deleted.
func (s *EventService) requireActiveEventType(ctx context.Context, eventTypeID int64) error {
	et, err := s.eventTypes.GetByID(ctx, eventTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: event type with ID %d not found or deleted", domain.ErrValidation, eventTypeID)
		}
		return fmt.Errorf("service.EventService: %w", err)
	}
	if et.IsDeleted {
		return fmt.Errorf("%w: event type with ID %d not found or deleted", domain.ErrValidation, eventTypeID)
	}
	return nil
}
