// Package api provides HTTP routing for the screens and the JSON API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/api/handlers"
	"github.com/stay-browser/server/internal/api/middleware"
	"github.com/stay-browser/server/internal/websocket"
)

// NewRouter creates and configures the HTTP router with all routes.
// metricsHandler may be nil, in which case /metrics is not served.
func NewRouter(svc *handlers.Services, hub *websocket.Hub, metricsHandler http.Handler, log *zap.Logger) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging(log))
	r.Use(middleware.ErrorRecovery(log))

	// Session-free endpoints
	r.HandleFunc("/api/health", handlers.HealthCheck(hub)).Methods("GET")
	r.HandleFunc("/api/ws", handlers.WebSocketUpgrade(hub, log)).Methods("GET")
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods("GET")
	}

	// Everything below reads or writes the visitor's screen state.
	screens := r.NewRoute().Subrouter()
	screens.Use(svc.Sessions.LoadAndSave)

	api := screens.PathPrefix("/api").Subrouter()
	api.HandleFunc("/listing", handlers.GetListing(svc)).Methods("GET")
	api.HandleFunc("/draft/start-date", handlers.SetStartDate(svc)).Methods("PUT")
	api.HandleFunc("/draft/end-date", handlers.SetEndDate(svc)).Methods("PUT")
	api.HandleFunc("/draft/persons", handlers.SetNumberOfPersons(svc)).Methods("PUT")
	api.HandleFunc("/filter", handlers.ApplyFilter(svc)).Methods("POST")
	api.HandleFunc("/accommodations/{id}/toggle", handlers.ToggleSelection(svc)).Methods("POST")
	api.HandleFunc("/quote", handlers.GetQuote(svc)).Methods("GET")
	api.HandleFunc("/reserve", handlers.Reserve(svc)).Methods("POST")
	api.HandleFunc("/confirmation", handlers.GetConfirmation(svc)).Methods("GET")

	screens.HandleFunc("/", handlers.ShowListing(svc)).Methods("GET")
	screens.HandleFunc("/filter", handlers.SubmitFilter(svc)).Methods("POST")
	screens.HandleFunc("/accommodations/{id}/toggle", handlers.ToggleAccommodation(svc)).Methods("POST")
	screens.HandleFunc("/reserve", handlers.SubmitReservation(svc)).Methods("POST")
	screens.HandleFunc("/confirm", handlers.ShowConfirmation(svc)).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Resource not found")
	})

	return r
}
