// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (travel.go, event.go, eventtype.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// TravelServicer defines the business operations the travel handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TravelServicer interface {
	List(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)
	ListDeleted(ctx context.Context, f domain.TravelFilter, p domain.PageParams) ([]domain.Travel, int64, error)
	Get(ctx context.Context, id int64) (domain.Travel, int64, error)
	Create(ctx context.Context, travel domain.Travel) (domain.Travel, error)
	Update(ctx context.Context, id int64, patch domain.TravelPatch) (domain.Travel, error)
	SoftDelete(ctx context.Context, id int64) (time.Time, error)
	Restore(ctx context.Context, id int64) (domain.Travel, error)
}

// EventServicer defines the business operations the event handlers depend on.
type EventServicer interface {
	ListByTravel(ctx context.Context, travelID int64, f domain.EventFilter, p domain.PageParams) ([]domain.Event, int64, error)
	ListDeletedByTravel(ctx context.Context, travelID int64, p domain.PageParams) ([]domain.Event, int64, error)
	Get(ctx context.Context, id int64) (domain.Event, error)
	Create(ctx context.Context, travelID int64, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error)
	SoftDelete(ctx context.Context, id int64) (time.Time, error)
	Restore(ctx context.Context, id int64) (domain.Event, error)
}

// EventTypeServicer defines the business operations the event type handlers
// depend on.
type EventTypeServicer interface {
	List(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)
	ListDeleted(ctx context.Context, f domain.EventTypeFilter, p domain.PageParams) ([]domain.EventType, int64, error)
	Get(ctx context.Context, id int64) (domain.EventType, int64, error)
	Create(ctx context.Context, et domain.EventType) (domain.EventType, error)
	Update(ctx context.Context, id int64, patch domain.EventTypePatch) (domain.EventType, error)
	SoftDelete(ctx context.Context, id int64) (time.Time, error)
	Restore(ctx context.Context, id int64) (domain.EventType, error)
}

// pinger is satisfied by *pgxpool.Pool; the health endpoint uses it to verify
// database reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies of all API endpoints.
type Server struct {
	travels    TravelServicer
	events     EventServicer
	eventTypes EventTypeServicer
	db         pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(travels TravelServicer, events EventServicer, eventTypes EventTypeServicer, db pinger) *Server {
	return &Server{travels: travels, events: events, eventTypes: eventTypes, db: db}
}

// Router mounts every endpoint of the API onto a fresh chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/travels", func(r chi.Router) {
		r.Get("/", s.ListTravels)
		r.Get("/deleted", s.ListDeletedTravels)
		r.Post("/", s.CreateTravel)
		r.Route("/{travelID}", func(r chi.Router) {
			r.Get("/", s.GetTravel)
			r.Put("/", s.UpdateTravel)
			r.Delete("/", s.DeleteTravel)
			r.Post("/restore", s.RestoreTravel)

			r.Get("/events", s.ListTravelEvents)
			r.Get("/events/deleted", s.ListTravelDeletedEvents)
			r.Post("/events", s.CreateTravelEvent)
		})
	})

	r.Route("/events/{eventID}", func(r chi.Router) {
		r.Get("/", s.GetEvent)
		r.Put("/", s.UpdateEvent)
		r.Delete("/", s.DeleteEvent)
		r.Post("/restore", s.RestoreEvent)
	})

	r.Route("/event-types", func(r chi.Router) {
		r.Get("/", s.ListEventTypes)
		r.Get("/deleted", s.ListDeletedEventTypes)
		r.Post("/", s.CreateEventType)
		r.Route("/{eventTypeID}", func(r chi.Router) {
			r.Get("/", s.GetEventType)
			r.Put("/", s.UpdateEventType)
			r.Delete("/", s.DeleteEventType)
			r.Post("/restore", s.RestoreEventType)
		})
	})

	return r
}
