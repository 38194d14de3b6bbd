package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

func eventFixture() domain.Event {
	name, color := "Hotel", "#FF5733"
	now := time.Now().UTC()
	return domain.Event{
		ID:             2,
		TravelID:       1,
		Title:          "Check in at hotel",
		EventTypeID:    1,
		StartAt:        time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC),
		EndAt:          time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC),
		Location:       "Shinjuku",
		CreatedAt:      now,
		UpdatedAt:      now,
		EventTypeName:  &name,
		EventTypeColor: &color,
	}
}

// ---- GET /travels/{id}/events ----------------------------------------------

func TestListTravelEvents_200(t *testing.T) {
	svc := &mockEventServicer{
		listByTravel: func(_ context.Context, travelID int64, f domain.EventFilter, _ domain.PageParams) ([]domain.Event, int64, error) {
			assert.Equal(t, int64(1), travelID)
			assert.Equal(t, int64(3), f.EventTypeID)
			return []domain.Event{eventFixture()}, 1, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels/1/events?event_type_id=3", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	items := decodeBody(t, rec.Body)["data"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Hotel", item["event_type_name"])
	assert.Equal(t, "#FF5733", item["event_type_color"])
}

func TestListTravelEvents_410_TravelDeleted(t *testing.T) {
	svc := &mockEventServicer{
		listByTravel: func(_ context.Context, _ int64, _ domain.EventFilter, _ domain.PageParams) ([]domain.Event, int64, error) {
			return nil, 0, fmt.Errorf("travel 1: %w", domain.ErrGone)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels/1/events", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestListTravelEvents_400_BadEventTypeID(t *testing.T) {
	// 0 is rejected like any other non-positive id, not treated as "no filter".
	for _, raw := range []string{"-2", "0", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/travels/1/events?event_type_id="+raw, nil)
		rec := httptest.NewRecorder()
		newRouter(nil, &mockEventServicer{}, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "event_type_id=%s", raw)
	}
}

// ---- POST /travels/{id}/events ---------------------------------------------

func TestCreateTravelEvent_201(t *testing.T) {
	fixture := eventFixture()
	svc := &mockEventServicer{
		create: func(_ context.Context, travelID int64, event domain.Event) (domain.Event, error) {
			assert.Equal(t, int64(1), travelID)
			assert.Equal(t, "Check in at hotel", event.Title)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":          "Check in at hotel",
		"event_type_id":  1,
		"start_datetime": "2024-03-15T15:00:00Z",
		"end_datetime":   "2024-03-15T16:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/travels/1/events", body)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Event created successfully", decodeBody(t, rec.Body)["message"])
}

func TestCreateTravelEvent_400_MissingEventType(t *testing.T) {
	body := jsonBody(t, map[string]any{
		"title":          "X",
		"start_datetime": "2024-03-15T15:00:00Z",
		"end_datetime":   "2024-03-15T16:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/travels/1/events", body)
	rec := httptest.NewRecorder()
	newRouter(nil, &mockEventServicer{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTravelEvent_400_DeletedEventTypeRef(t *testing.T) {
	// A deleted or missing event type in the body is a bad reference, not a
	// missing resource: 400, not 404.
	svc := &mockEventServicer{
		create: func(_ context.Context, _ int64, _ domain.Event) (domain.Event, error) {
			return domain.Event{}, fmt.Errorf("%w: event type with ID 9 not found or deleted", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"title":          "X",
		"event_type_id":  9,
		"start_datetime": "2024-03-15T15:00:00Z",
		"end_datetime":   "2024-03-15T16:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/travels/1/events", body)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeBody(t, rec.Body)["error"].(map[string]any)
	assert.Equal(t, "event type with ID 9 not found or deleted", errBody["message"])
}

// ---- GET /events/{id} ------------------------------------------------------

func TestGetEvent_200(t *testing.T) {
	svc := &mockEventServicer{
		get: func(_ context.Context, id int64) (domain.Event, error) {
			assert.Equal(t, int64(2), id)
			return eventFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/events/2", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec.Body)["data"].(map[string]any)
	assert.EqualValues(t, 2, data["id"])
	assert.EqualValues(t, 1, data["travel_id"])
}

func TestGetEvent_404(t *testing.T) {
	svc := &mockEventServicer{
		get: func(_ context.Context, _ int64) (domain.Event, error) {
			return domain.Event{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/events/99", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	errBody := decodeBody(t, rec.Body)["error"].(map[string]any)
	assert.Equal(t, "event not found", errBody["message"])
}

// ---- PUT /events/{id} ------------------------------------------------------

func TestUpdateEvent_200(t *testing.T) {
	svc := &mockEventServicer{
		update: func(_ context.Context, id int64, patch domain.EventPatch) (domain.Event, error) {
			require.NotNil(t, patch.Location)
			assert.Equal(t, "Shibuya", *patch.Location)
			return eventFixture(), nil
		},
	}

	body := jsonBody(t, map[string]any{"location": "Shibuya"})
	req := httptest.NewRequest(http.MethodPut, "/events/2", body)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- DELETE / restore ------------------------------------------------------

func TestDeleteEvent_200(t *testing.T) {
	deletedAt := time.Date(2024, 4, 1, 8, 30, 0, 0, time.UTC)
	svc := &mockEventServicer{
		softDelete: func(_ context.Context, _ int64) (time.Time, error) { return deletedAt, nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/events/2", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event soft deleted successfully", decodeBody(t, rec.Body)["message"])
}

func TestRestoreEvent_409_NotDeleted(t *testing.T) {
	svc := &mockEventServicer{
		restore: func(_ context.Context, _ int64) (domain.Event, error) {
			return domain.Event{}, fmt.Errorf("%w: event 2 is not deleted", domain.ErrConflict)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/events/2/restore", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	errBody := decodeBody(t, rec.Body)["error"].(map[string]any)
	assert.Equal(t, "event 2 is not deleted", errBody["message"])
}

// ---- GET /travels/{id}/events/deleted --------------------------------------

func TestListTravelDeletedEvents_200(t *testing.T) {
	deleted := eventFixture()
	deleted.IsDeleted = true
	at := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	deleted.DeletedAt = &at

	svc := &mockEventServicer{
		listDeletedByTravel: func(_ context.Context, travelID int64, _ domain.PageParams) ([]domain.Event, int64, error) {
			assert.Equal(t, int64(1), travelID)
			return []domain.Event{deleted}, 1, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/travels/1/events/deleted", nil)
	rec := httptest.NewRecorder()
	newRouter(nil, svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	items := decodeBody(t, rec.Body)["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, true, items[0].(map[string]any)["is_deleted"])
}
