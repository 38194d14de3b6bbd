package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// travelResponse is the wire shape of an active travel.
type travelResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Destination *string            `json:"destination"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// travelDetailResponse adds the active-events count returned by get-by-id.
type travelDetailResponse struct {
	travelResponse
	EventsCount int64 `json:"events_count"`
}

// deletedTravelResponse is the wire shape of a soft-deleted travel.
type deletedTravelResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Destination *string            `json:"destination"`
	IsDeleted   bool               `json:"is_deleted"`
	DeletedAt   *time.Time         `json:"deleted_at"`
	CreatedAt   time.Time          `json:"created_at"`
}

type createTravelRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	Destination *string             `json:"destination"`
}

type updateTravelRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	Destination *string             `json:"destination"`
}

// ListTravels handles GET /travels.
func (s *Server) ListTravels(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}
	f, err := travelListFilter(r)
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	travels, total, err := s.travels.List(r.Context(), f, p)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}

	data := make([]travelResponse, len(travels))
	for i, t := range travels {
		data[i] = travelToResponse(t)
	}
	writeList(w, data, p, total)
}

// ListDeletedTravels handles GET /travels/deleted.
func (s *Server) ListDeletedTravels(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	f := domain.TravelFilter{
		Title:       r.URL.Query().Get("title"),
		Destination: r.URL.Query().Get("destination"),
	}
	if f.DeletedFrom, err = queryDate(r, "deleted_date_from"); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}
	if f.DeletedTo, err = queryDate(r, "deleted_date_to"); err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	travels, total, err := s.travels.ListDeleted(r.Context(), f, p)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}

	data := make([]deletedTravelResponse, len(travels))
	for i, t := range travels {
		data[i] = deletedTravelToResponse(t)
	}
	writeList(w, data, p, total)
}

// CreateTravel handles POST /travels.
func (s *Server) CreateTravel(w http.ResponseWriter, r *http.Request) {
	var req createTravelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}
	if req.Title == nil {
		writeValidationError(w, r, "title is required")
		return
	}
	if req.StartDate == nil || req.EndDate == nil {
		writeValidationError(w, r, "start_date and end_date are required")
		return
	}

	travel := domain.Travel{
		Title:     *req.Title,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	}
	if req.Description != nil {
		travel.Description = *req.Description
	}
	if req.Destination != nil {
		travel.Destination = *req.Destination
	}

	created, err := s.travels.Create(r.Context(), travel)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}
	writeData(w, http.StatusCreated, travelToResponse(created), "Travel created successfully")
}

// GetTravel handles GET /travels/{travelID}.
func (s *Server) GetTravel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "travelID", "travel")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	travel, eventsCount, err := s.travels.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}

	resp := travelDetailResponse{
		travelResponse: travelToResponse(travel),
		EventsCount:    eventsCount,
	}
	writeData(w, http.StatusOK, resp, "")
}

// UpdateTravel handles PUT /travels/{travelID}.
func (s *Server) UpdateTravel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "travelID", "travel")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	var req updateTravelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, r, err)
		return
	}

	patch := domain.TravelPatch{
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
	}
	if req.StartDate != nil {
		patch.StartDate = &req.StartDate.Time
	}
	if req.EndDate != nil {
		patch.EndDate = &req.EndDate.Time
	}

	updated, err := s.travels.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}
	writeData(w, http.StatusOK, travelToResponse(updated), "Travel updated successfully")
}

// DeleteTravel handles DELETE /travels/{travelID}.
func (s *Server) DeleteTravel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "travelID", "travel")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	deletedAt, err := s.travels.SoftDelete(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Success:   true,
		Message:   "Travel soft deleted successfully",
		DeletedAt: deletedAt,
	})
}

// RestoreTravel handles POST /travels/{travelID}/restore.
func (s *Server) RestoreTravel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "travelID", "travel")
	if err != nil {
		writeValidationError(w, r, err.Error())
		return
	}

	restored, err := s.travels.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "travel")
		return
	}
	writeData(w, http.StatusOK, travelToResponse(restored), "Travel restored successfully")
}

// --- mapping helpers --------------------------------------------------------

// travelListFilter parses the list query parameters into a TravelFilter.
func travelListFilter(r *http.Request) (domain.TravelFilter, error) {
	f := domain.TravelFilter{
		Title:       r.URL.Query().Get("title"),
		Destination: r.URL.Query().Get("destination"),
	}
	var err error
	if f.StartDateFrom, err = queryDate(r, "start_date_from"); err != nil {
		return domain.TravelFilter{}, err
	}
	if f.StartDateTo, err = queryDate(r, "start_date_to"); err != nil {
		return domain.TravelFilter{}, err
	}
	if f.EndDateFrom, err = queryDate(r, "end_date_from"); err != nil {
		return domain.TravelFilter{}, err
	}
	if f.EndDateTo, err = queryDate(r, "end_date_to"); err != nil {
		return domain.TravelFilter{}, err
	}
	return f, nil
}

func travelToResponse(t domain.Travel) travelResponse {
	return travelResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: optString(t.Description),
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Destination: optString(t.Destination),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func deletedTravelToResponse(t domain.Travel) deletedTravelResponse {
	return deletedTravelResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: optString(t.Description),
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Destination: optString(t.Destination),
		IsDeleted:   t.IsDeleted,
		DeletedAt:   t.DeletedAt,
		CreatedAt:   t.CreatedAt,
	}
}

// optString maps "" to a JSON null so optional fields render as null instead
// of empty strings.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
