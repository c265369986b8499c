package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"social-analytics/internal/handlers"
	"social-analytics/internal/server"
)

// RunServer starts the worker pool and returns the configured HTTP server.
func (app *App) RunServer() (*server.Server, http.Handler) {
	h := handlers.New(
		app.Coordinator,
		app.Queue,
		app.Collector,
		app.Config,
		app.Logger,
	)

	router := mux.NewRouter()
	SetupRoutes(router, h, app.Collector.Handler())

	app.Start()

	srv := server.New(router, app.Config.Port)
	return srv, router
}
