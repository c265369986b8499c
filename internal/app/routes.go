package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"social-analytics/internal/handlers"
	"social-analytics/internal/middleware"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *mux.Router, h *handlers.Handlers, metricsHandler http.Handler) {
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)

	router.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	router.Handle("/metrics", metricsHandler).Methods("GET")

	router.HandleFunc("/analyze", h.HandleAnalyze).Methods("POST")
	router.HandleFunc("/result/{topic}", h.HandleGetResult).Methods("GET")
}
