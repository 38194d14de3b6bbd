package handler

import (
	"net/http"
	"time"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// eventResponse is the wire shape of an active event. The event_type_* fields
// are resolved from the referenced event type and stay readable even after
// the type itself has been soft deleted.
type eventResponse struct {
	ID             int64     `json:"id"`
	TravelID       int64     `json:"travel_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	EventTypeID    int64     `json:"event_type_id"`
	EventTypeName  *string   `json:"event_type_name"`
	EventTypeColor *string   `json:"event_type_color"`
	EventTypeIcon  *string   `json:"event_type_icon"`
	StartDatetime  time.Time `json:"start_datetime"`
	EndDatetime    time.Time `json:"end_datetime"`
	Location       *string   `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// deletedEventResponse is the wire shape of a soft-deleted event.
type deletedEventResponse struct {
	eventResponse
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type createEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	EventTypeID   *int64     `json:"event_type_id"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Location      *string    `json:"location"`
}

type updateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	EventTypeID   *int64     `json:"event_type_id"`
	StartDatetime *time.Time `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	Location      *string    `json:"location"`
}

// ListTravelEvents handles GET /travels/{travelID}/events.
func (s *Server) ListTravelEvents(w http.ResponseWriter, r *http.Request) {
	travelID, err := pathID(r, "travelID", "travel")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}
	p, err := pageParams(r)
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	f := domain.EventFilter{Location: r.URL.Query().Get("location")}
	if f.StartDateFrom, err = queryDate(r, "start_date_from"); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}
	if f.StartDateTo, err = queryDate(r, "start_date_to"); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}
	if f.EventTypeID, err = queryInt64(r, "event_type_id"); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	events, total, err := s.events.ListByTravel(r.Context(), travelID, f, p)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}

	data := make([]eventResponse, len(events))
	for i, e := range events {
		data[i] = eventToResponse(e)
	}
	writeList(w, data, p, total)
}

// ListTravelDeletedEvents handles GET /travels/{travelID}/events/deleted.
func (s *Server) ListTravelDeletedEvents(w http.ResponseWriter, r *http.Request) {
	travelID, err := pathID(r, "travelID", "travel")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}
	p, err := pageParams(r)
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	events, total, err := s.events.ListDeletedByTravel(r.Context(), travelID, p)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}

	data := make([]deletedEventResponse, len(events))
	for i, e := range events {
		data[i] = deletedEventToResponse(e)
	}
	writeList(w, data, p, total)
}

// CreateTravelEvent handles POST /travels/{travelID}/events.
func (s *Server) CreateTravelEvent(w http.ResponseWriter, r *http.Request) {
	travelID, err := pathID(r, "travelID", "travel")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}
	if req.Title == nil {
		writeValidationError(w, r, "title is required")
		return
	}
	if req.EventTypeID == nil {
		writeValidationError(w, r, "event_type_id is required")
		return
	}
	if req.StartDatetime == nil || req.EndDatetime == nil {
		writeValidationError(w, r, "start_datetime and end_datetime are required")
		return
	}

	event := domain.Event{
		Title:       *req.Title,
		EventTypeID: *req.EventTypeID,
		StartAt:     *req.StartDatetime,
		EndAt:       *req.EndDatetime,
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}

	created, err := s.events.Create(r.Context(), travelID, event)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}
	writeData(w, http.StatusCreated, eventToResponse(created), "Event created successfully")
}

// GetEvent handles GET /events/{eventID}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventID", "event")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	event, err := s.events.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event")
		return
	}
	writeData(w, http.StatusOK, eventToResponse(event), "")
}

// UpdateEvent handles PUT /events/{eventID}.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventID", "event")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}

	patch := domain.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		EventTypeID: req.EventTypeID,
		StartAt:     req.StartDatetime,
		EndAt:       req.EndDatetime,
		Location:    req.Location,
	}

	updated, err := s.events.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, r, err, "event")
		return
	}
	writeData(w, http.StatusOK, eventToResponse(updated), "Event updated successfully")
}

// DeleteEvent handles DELETE /events/{eventID}.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventID", "event")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	deletedAt, err := s.events.SoftDelete(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event")
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Success:   true,
		Message:   "Event soft deleted successfully",
		DeletedAt: deletedAt,
	})
}

// RestoreEvent handles POST /events/{eventID}/restore.
func (s *Server) RestoreEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "eventID", "event")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	restored, err := s.events.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "event")
		return
	}
	writeData(w, http.StatusOK, eventToResponse(restored), "Event restored successfully")
}

// --- mapping helpers --------------------------------------------------------

func eventToResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:             e.ID,
		TravelID:       e.TravelID,
		Title:          e.Title,
		Description:    optString(e.Description),
		EventTypeID:    e.EventTypeID,
		EventTypeName:  e.EventTypeName,
		EventTypeColor: e.EventTypeColor,
		EventTypeIcon:  e.EventTypeIcon,
		StartDatetime:  e.StartAt,
		EndDatetime:    e.EndAt,
		Location:       optString(e.Location),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func deletedEventToResponse(e domain.Event) deletedEventResponse {
	return deletedEventResponse{
		eventResponse: eventToResponse(e),
		IsDeleted:     e.IsDeleted,
		DeletedAt:     e.DeletedAt,
	}
}
