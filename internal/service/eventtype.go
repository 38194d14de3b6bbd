package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
	"github.com/jlemaire/travel-planner/backend/internal/repo"
)

// EventTypeService implements business logic for EventType operations.
// It holds the events repo because deleting an event type is blocked while
// active events still reference it.
type EventTypeService struct {
	eventTypes repo.EventTypeRepo
	events     repo.EventRepo
}

// NewEventTypeService constructs an EventTypeService backed by the provided repos.
func NewEventTypeService(eventTypes repo.EventTypeRepo, events repo.EventRepo) *EventTypeService {
	return &EventTypeService{eventTypes: eventTypes, events: events}
}

// List returns one page of active event types matching the filter.
// A category filter outside the allowed set is a validation error.
func (s *EventTypeService) List(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	if f.Category != "" && !domain.ValidCategory(f.Category) {
		return nil, 0, fmt.Errorf("%w: invalid category. Allowed categories: %s",
			domain.ErrValidation, strings.Join(domain.AllowedCategories, ", "))
	}
	types, total, err := s.eventTypes.List(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventTypeService.List: %w", err)
	}
	return types, total, nil
}

// ListDeleted returns one page of soft-deleted event types.
func (s *EventTypeService) ListDeleted(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	types, total, err := s.eventTypes.ListDeleted(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventTypeService.ListDeleted: %w", err)
	}
	return types, total, nil
}

// Get returns a single active event type and the number of active events
// referencing it.
func (s *EventTypeService) Get(ctx context.Context, id int64) (domain.EventType, int64, error) {
	et, err := s.eventTypes.GetByID(ctx, id)
	if err != nil {
		return domain.EventType{}, 0, fmt.Errorf("service.EventTypeService.Get: %w", err)
	}
	if et.IsDeleted {
		return domain.EventType{}, 0, fmt.Errorf("service.EventTypeService.Get: event type %d: %w", id, domain.ErrGone)
	}

	usage, err := s.events.CountActiveByType(ctx, id)
	if err != nil {
		return domain.EventType{}, 0, fmt.Errorf("service.EventTypeService.Get: %w", err)
	}
	return et, usage, nil
}

// Create validates, sanitizes, checks uniqueness, and persists a new event type.
// The (name, category) pair must be unique among non-deleted rows,
// case-insensitively; a duplicate is a conflict.
func (s *EventTypeService) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	name, err := sanitizeRequired("name", et.Name, maxNameLen)
	if err != nil {
		return domain.EventType{}, err
	}
	et.Name = name

	if !domain.ValidCategory(et.Category) {
		return domain.EventType{}, fmt.Errorf("%w: invalid category. Allowed categories: %s",
			domain.ErrValidation, strings.Join(domain.AllowedCategories, ", "))
	}
	if !validHexColor(et.Color) {
		return domain.EventType{}, fmt.Errorf("%w: invalid color format. Use hex color format (#RRGGBB)", domain.ErrValidation)
	}
	if et.Icon, err = sanitizeOptional("icon", et.Icon, maxIconLen); err != nil {
		return domain.EventType{}, err
	}

	dup, err := s.eventTypes.ExistsDuplicate(ctx, et.Name, et.Category, 0)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Create: %w", err)
	}
	if dup {
		return domain.EventType{}, fmt.Errorf("%w: event type with name %q already exists in category %q",
			domain.ErrConflict, et.Name, et.Category)
	}

	created, err := s.eventTypes.Create(ctx, et)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Create: %w", err)
	}

	logBusinessEvent(ctx, "event_type_created", "event_type", created.ID,
		"name", created.Name, "category", created.Category)
	return created, nil
}

// Update validates and applies a partial update to an active event type.
// When name or category changes, uniqueness is re-checked against the
// effective pair, excluding the row itself.
func (s *EventTypeService) Update(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error) {
	existing, err := s.eventTypes.GetByID(ctx, id)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Update: %w", err)
	}
	if existing.IsDeleted {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Update: event type %d: %w", id, domain.ErrGone)
	}
	if patch.Empty() {
		return domain.EventType{}, fmt.Errorf("%w: no valid fields provided for update", domain.ErrValidation)
	}

	if patch.Name != nil {
		name, err := sanitizeRequired("name", *patch.Name, maxNameLen)
		if err != nil {
			return domain.EventType{}, err
		}
		patch.Name = &name
	}
	if patch.Category != nil && !domain.ValidCategory(*patch.Category) {
		return domain.EventType{}, fmt.Errorf("%w: invalid category. Allowed categories: %s",
			domain.ErrValidation, strings.Join(domain.AllowedCategories, ", "))
	}
	if patch.Color != nil && !validHexColor(*patch.Color) {
		return domain.EventType{}, fmt.Errorf("%w: invalid color format. Use hex color format (#RRGGBB)", domain.ErrValidation)
	}
	if patch.Icon != nil {
		icon, err := sanitizeOptional("icon", *patch.Icon, maxIconLen)
		if err != nil {
			return domain.EventType{}, err
		}
		patch.Icon = &icon
	}

	if patch.Name != nil || patch.Category != nil {
		name, category := existing.Name, existing.Category
		if patch.Name != nil {
			name = *patch.Name
		}
		if patch.Category != nil {
			category = *patch.Category
		}
		dup, err := s.eventTypes.ExistsDuplicate(ctx, name, category, id)
		if err != nil {
			return domain.EventType{}, fmt.Errorf("service.EventTypeService.Update: %w", err)
		}
		if dup {
			return domain.EventType{}, fmt.Errorf("%w: event type with name %q already exists in category %q",
				domain.ErrConflict, name, category)
		}
	}

	updated, err := s.eventTypes.Update(ctx, id, patch)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Update: %w", err)
	}

	logBusinessEvent(ctx, "event_type_updated", "event_type", id)
	return updated, nil
}

// SoftDelete marks an event type deleted and returns the deletion timestamp.
// Deletion is blocked with a conflict while any non-deleted event references
// the type; the returned error carries the active-reference count.
func (s *EventTypeService) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	existing, err := s.eventTypes.GetByID(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.EventTypeService.SoftDelete: %w", err)
	}
	if existing.IsDeleted {
		return time.Time{}, fmt.Errorf("%w: event type %d is already deleted", domain.ErrConflict, id)
	}

	usage, err := s.events.CountActiveByType(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.EventTypeService.SoftDelete: %w", err)
	}
	if usage > 0 {
		return time.Time{}, &domain.InUseError{Name: existing.Name, Count: usage}
	}

	deletedAt, err := s.eventTypes.SoftDelete(ctx, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("service.EventTypeService.SoftDelete: %w", err)
	}

	logBusinessEvent(ctx, "event_type_deleted", "event_type", id, "name", existing.Name)
	return deletedAt, nil
}

// Restore reverses a soft delete and returns the restored event type.
func (s *EventTypeService) Restore(ctx context.Context, id int64) (domain.EventType, error) {
	existing, err := s.eventTypes.GetByID(ctx, id)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Restore: %w", err)
	}
	if !existing.IsDeleted {
		return domain.EventType{}, fmt.Errorf("%w: event type %d is not deleted", domain.ErrConflict, id)
	}

	restored, err := s.eventTypes.Restore(ctx, id)
	if err != nil {
		return domain.EventType{}, fmt.Errorf("service.EventTypeService.Restore: %w", err)
	}

	logBusinessEvent(ctx, "event_type_restored", "event_type", id, "name", existing.Name)
	return restored, nil
}
