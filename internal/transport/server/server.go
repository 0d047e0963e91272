package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pep299/portfolio-pulse/internal/application"
	"github.com/pep299/portfolio-pulse/internal/transport/middleware"
)

// NewRouter configures HTTP routes over the application's handlers.
func NewRouter(app *application.Application) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check stays unauthenticated.
	api.HandleFunc("/health", healthHandler).Methods("GET")

	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Auth(app.Config.APIAuthToken))

	authed.Handle("/portfolio", app.SavePortfolioHandler).Methods("POST")
	authed.Handle("/portfolio", app.GetPortfolioHandler).Methods("GET")
	authed.Handle("/digest/generate", app.GenerateDigestHandler).Methods("POST")
	authed.Handle("/digests", app.ListDigestsHandler).Methods("GET")
	authed.Handle("/schedule/enable", app.EnableScheduleHandler).Methods("POST")
	authed.Handle("/schedule/disable", app.DisableScheduleHandler).Methods("POST")
	authed.Handle("/schedule", app.GetScheduleHandler).Methods("GET")

	return r
}

// healthHandler provides health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}
