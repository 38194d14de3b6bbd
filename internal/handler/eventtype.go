package handler

import (
	"net/http"
	"time"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// eventTypeResponse is the wire shape of an active event type.
type eventTypeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Icon      *string   `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// eventTypeDetailResponse adds the active-events usage count returned by
// get-by-id.
type eventTypeDetailResponse struct {
	eventTypeResponse
	UsageCount int64 `json:"usage_count"`
}

// deletedEventTypeResponse is the wire shape of a soft-deleted event type.
type deletedEventTypeResponse struct {
	eventTypeResponse
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type createEventTypeRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
}

type updateEventTypeRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
}

// ListEventTypes handles GET /event-types.
func (s *Server) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	f := domain.EventTypeFilter{
		Category: r.URL.Query().Get("category"),
		Name:     r.URL.Query().Get("name"),
	}

	types, total, err := s.eventTypes.List(r.Context(), f, p)
	if err != nil {
		writeDomainError(w, r, err, "event type")
		return
	}

	data := make([]eventTypeResponse, len(types))
	for i, et := range types {
		data[i] = eventTypeToResponse(et)
	}
	writeList(w, data, p, total)
}

// ListDeletedEventTypes handles GET /event-types/deleted.
func (s *Server) ListDeletedEventTypes(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	f := domain.EventTypeFilter{Name: r.URL.Query().Get("name")}

	types, total, err := s.eventTypes.ListDeleted(r.Context(), f, p)
	if err != nil {
		writeDomainError(w, r, err, "event type")
		return
	}

	data := make([]deletedEventTypeResponse, len(types))
	for i, et := range types {
		data[i] = deletedEventTypeToResponse(et)
	}
	writeList(w, data, p, total)
}

// CreateEventType handles POST /event-types.
func (s *Server) CreateEventType(w http.ResponseWriter, r *http.Request) {
	var req createEventTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}
	if req.Name == nil {
		writeValidationError(w, r, "name is required")
		return
	}
	if req.Category == nil {
		writeValidationError(w, r, "category is required")
		return
	}
	if req.Color == nil {
		writeValidationError(w, r, "color is required")
		return
	}

	et := domain.EventType{
		Name:     *req.Name,
		Category: *req.Category,
		Color:    *req.Color,
	}
	if req.Icon != nil {
		et.Icon = *req.Icon
	}

	created, err := s.eventTypes.Create(r.Context(), et)
	if err != nil {
		writeDomainError(w, r, err, "event type")
		return
	}
	writeData(w, http.StatusCreated, eventTypeToResponse(created), "Event type created successfully")
}

// GetEventType handles GET /event-types/{eventTypeID}.
func (s *Server) GetEventType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventTypeID", "event type")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	et, usageCount, err := s.eventTypes.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event type")
		return
	}

	resp := eventTypeDetailResponse{
		eventTypeResponse: eventTypeToResponse(et),
		UsageCount:        usageCount,
	}
	writeData(w, http.StatusOK, resp, "")
}

// UpdateEventType handles PUT /event-types/{eventTypeID}.
func (s *Server) UpdateEventType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventTypeID", "event type")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	var req updateEventTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}

	patch := domain.EventTypePatch{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		Icon:     req.Icon,
	}

	updated, err := s.eventTypes.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, r, err, "event type")
		return
	}
	writeData(w, http.StatusOK, eventTypeToResponse(updated), "Event type updated successfully")
}

// DeleteEventType handles DELETE /event-types/{eventTypeID}.
// Deletion is refused with 409 while active events still reference the type;
// the error context carries the active-reference count.
func (s *Server) DeleteEventType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventTypeID", "event type")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	deletedAt, err := s.eventTypes.SoftDelete(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event type")
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Success:   true,
		Message:   "Event type soft deleted successfully",
		DeletedAt: deletedAt,
	})
}

// RestoreEventType handles POST /event-types/{eventTypeID}/restore.
func (s *Server) RestoreEventType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventTypeID", "event type")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	restored, err := s.eventTypes.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event type")
		return
	}
	writeData(w, http.StatusOK, eventTypeToResponse(restored), "Event type restored successfully")
}

// --- mapping helpers --------------------------------------------------------

func eventTypeToResponse(et domain.EventType) eventTypeResponse {
	return eventTypeResponse{
		ID:        et.ID,
		Name:      et.Name,
		Category:  et.Category,
		Color:     et.Color,
		Icon:      optString(et.Icon),
		CreatedAt: et.CreatedAt,
		UpdatedAt: et.UpdatedAt,
	}
}

func deletedEventTypeToResponse(et domain.EventType) deletedEventTypeResponse {
	return deletedEventTypeResponse{
		eventTypeResponse: eventTypeToResponse(et),
		IsDeleted:         et.IsDeleted,
		DeletedAt:         et.DeletedAt,
	}
}
