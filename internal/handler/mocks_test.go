package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
	"github.com/jlemaire/travel-planner/backend/internal/handler"
)

// Test doubles for the servicer interfaces. Set only the method fields your
// test needs — an unset field panics, which points straight at the handler
// calling something it should not.

type mockTravelServicer struct {
	list        func(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)
	listDeleted func(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)
	get         func(ctx context.Context, id int64) (domain.Travel, int64, error)
	create      func(ctx context.Context, travel domain.Travel) (domain.Travel, error)
	update      func(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error)
	softDelete  func(ctx context.Context, id int64) (time.Time, error)
	restore     func(ctx context.Context, id int64) (domain.Travel, error)
}

func (m *mockTravelServicer) List(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	return m.list(ctx, f, p)
}
func (m *mockTravelServicer) ListDeleted(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error) {
	return m.listDeleted(ctx, f, p)
}
func (m *mockTravelServicer) Get(ctx context.Context, id int64) (domain.Travel, int64, error) {
	return m.get(ctx, id)
}
func (m *mockTravelServicer) Create(ctx context.Context, travel domain.Travel) (domain.Travel, error) {
	return m.create(ctx, travel)
}
func (m *mockTravelServicer) Update(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error) {
	return m.update(ctx, id, patch)
}
func (m *mockTravelServicer) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockTravelServicer) Restore(ctx context.Context, id int64) (domain.Travel, error) {
	return m.restore(ctx, id)
}

var _ handler.TravelServicer = (*mockTravelServicer)(nil)

type mockEventServicer struct {
	listByTravel        func(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error)
	listDeletedByTravel func(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error)
	get                 func(ctx context.Context, id int64) (domain.Event, error)
	create              func(ctx context.Context, travelID int64, event domain.Event) (domain.Event, error)
	update              func(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error)
	softDelete          func(ctx context.Context, id int64) (time.Time, error)
	restore             func(ctx context.Context, id int64) (domain.Event, error)
}

func (m *mockEventServicer) ListByTravel(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error) {
	return m.listByTravel(ctx, travelID, f, p)
}
func (m *mockEventServicer) ListDeletedByTravel(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error) {
	return m.listDeletedByTravel(ctx, travelID, p)
}
func (m *mockEventServicer) Get(ctx context.Context, id int64) (domain.Event, error) {
	return m.get(ctx, id)
}
func (m *mockEventServicer) Create(ctx context.Context, travelID int64, event domain.Event) (domain.Event, error) {
	return m.create(ctx, travelID, event)
}
func (m *mockEventServicer) Update(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error) {
	return m.update(ctx, id, patch)
}
func (m *mockEventServicer) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockEventServicer) Restore(ctx context.Context, id int64) (domain.Event, error) {
	return m.restore(ctx, id)
}

var _ handler.EventServicer = (*mockEventServicer)(nil)

type mockEventTypeServicer struct {
	list        func(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)
	listDeleted func(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)
	get         func(ctx context.Context, id int64) (domain.EventType, int64, error)
	create      func(ctx context.Context, et domain.EventType) (domain.EventType, error)
	update      func(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error)
	softDelete  func(ctx context.Context, id int64) (time.Time, error)
	restore     func(ctx context.Context, id int64) (domain.EventType, error)
}

func (m *mockEventTypeServicer) List(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	return m.list(ctx, f, p)
}
func (m *mockEventTypeServicer) ListDeleted(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error) {
	return m.listDeleted(ctx, f, p)
}
func (m *mockEventTypeServicer) Get(ctx context.Context, id int64) (domain.EventType, int64, error) {
	return m.get(ctx, id)
}
func (m *mockEventTypeServicer) Create(ctx context.Context, et domain.EventType) (domain.EventType, error) {
	return m.create(ctx, et)
}
func (m *mockEventTypeServicer) Update(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error) {
	return m.update(ctx, id, patch)
}
func (m *mockEventTypeServicer) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	return m.softDelete(ctx, id)
}
func (m *mockEventTypeServicer) Restore(ctx context.Context, id int64) (domain.EventType, error) {
	return m.restore(ctx, id)
}

var _ handler.EventTypeServicer = (*mockEventTypeServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server with the given mocks the same way main.go wires
// the real services. Pass nil for servicers the test never touches.
func newRouter(travels handler.TravelServicer, events handler.EventServicer, eventTypes handler.EventTypeServicer) http.Handler {
	return handler.NewServer(travels, events, eventTypes, nil).Router()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeBody decodes a response body into a generic map for envelope checks.
func decodeBody(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&m))
	return m
}
