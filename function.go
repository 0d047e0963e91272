// Package pulse exposes the HTTP entrypoint for Cloud Functions deployments.
package pulse

import (
	"log"
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/portfolio-pulse/internal/application"
	"github.com/pep299/portfolio-pulse/internal/transport/server"
)

func init() {
	functions.HTTP("PortfolioPulse", HandleRequest)
}

// HandleRequest handles a single HTTP request in the Cloud Functions runtime.
// Each invocation builds and tears down its own application, matching the
// function lifecycle.
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app, err := application.New(ctx)
	if err != nil {
		log.Printf("Failed to create application: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer app.Close()

	if err := app.Scheduler.Load(ctx); err != nil {
		log.Printf("Failed to load schedule state: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	server.NewRouter(app).ServeHTTP(w, r)
}
