package service_test

import (
	"context"
	"time"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
	"github.com/jlemaire/travel-planner/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockTravelRepo struct {
	create      func(ctx context.Context, travel domain.Travel) (domain.Travel, error)
	getByID     func(ctx context.Context, id int64) (domain.Travel, error)
	list        func(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)
	listDeleted func(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)
	update      func(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error)
	softDelete  func(ctx context.Context, id int64) (time.Time, error)
	restore     func(ctx context.Context, id int64) (domain.Travel, error)
}

func (m *mockTravelRepo) Create(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	return m.create(ctx, travel)
}
func (m *mockTravelRepo) GetByID(ctx context.Context, id int64) (domain.Travel, error) {
	return m.getByID(ctx, id)
}
func (m *mockTravelRepo) List(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	return m.list(ctx, f, p)
}
func (m *mockTravelRepo) ListDeleted(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	return m.listDeleted(ctx, f, p)
}
func (m *mockTravelRepo) Update(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error) {
	return m.update(ctx, id, patch)
}
func (m *mockTravelRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockTravelRepo) Restore(ctx context.Context, id int64) (domain.Travel, error) {
	return m.restore(ctx, id)
}

var _ repo.TravelRepo = (*mockTravelRepo)(nil)

type mockEventRepo struct {
	create              func(ctx context.Context, event domain.Event) (domain.Event, error)
	getByID             func(ctx context.Context, id int64) (domain.Event, error)
	listByTravel        func(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error)
	listDeletedByTravel func(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error)
	update              func(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error)
	softDelete          func(ctx context.Context, id int64) (time.Time, error)
	restore             func(ctx context.Context, id int64) (domain.Event, error)
	countActiveByTravel func(ctx context.Context, travelID int64) (int64, error)
	countActiveByType   func(ctx context.Context, eventTypeID int64) (int64, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	return m.create(ctx, event)
}
func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventRepo) ListByTravel(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error) {
	return m.listByTravel(ctx, travelID, f, p)
}
func (m *mockEventRepo) ListDeletedByTravel(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error) {
	return m.listDeletedByTravel(ctx, travelID, p)
}
func (m *mockEventRepo) Update(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error) {
	return m.update(ctx, id, patch)
}
func (m *mockEventRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockEventRepo) Restore(ctx context.Context, id int64) (domain.Event, error) {
	return m.restore(ctx, id)
}
func (m *mockEventRepo) CountActiveByTravel(ctx context.Context, travelID int64) (int64, error) {
	return m.countActiveByTravel(ctx, travelID)
}
func (m *mockEventRepo) CountActiveByType(ctx context.Context, eventTypeID int64) (int64, error) {
	return m.countActiveByType(ctx, eventTypeID)
}

var _ repo.EventRepo = (*mockEventRepo)(nil)

type mockEventTypeRepo struct {
	create          func(ctx context.Context, et domain.EventType) (domain.EventType, error)
	getByID         func(ctx context.Context, id int64) (domain.EventType, error)
	list            func(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)
	listDeleted     func(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)
	update          func(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error)
	softDelete      func(ctx context.Context, id int64) (time.Time, error)
	restore         func(ctx context.Context, id int64) (domain.EventType, error)
	existsDuplicate func(ctx context.Context, name, category string, excludeID int64) (bool, error)
}

func (m *mockEventTypeRepo) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	return m.create(ctx, et)
}
func (m *mockEventTypeRepo) GetByID(ctx context.Context, id int64) (domain.EventType, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventTypeRepo) List(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	return m.list(ctx, f, p)
}
func (m *mockEventTypeRepo) ListDeleted(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	return m.listDeleted(ctx, f, p)
}
func (m *mockEventTypeRepo) Update(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error) {
	return m.update(ctx, id, patch)
}
func (m *mockEventTypeRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockEventTypeRepo) Restore(ctx context.Context, id int64) (domain.EventType, error) {
	return m.restore(ctx, id)
}
func (m *mockEventTypeRepo) ExistsDuplicate(ctx context.Context, name, category string, excludeID int64) (bool, error) {
	return m.existsDuplicate(ctx, name, category, excludeID)
}

var _ repo.EventTypeRepo = (*mockEventTypeRepo)(nil)
