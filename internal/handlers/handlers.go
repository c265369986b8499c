// Package handlers implements the HTTP API surface: analysis submission,
// result retrieval, health and metrics.
package handlers

import (
	"encoding/json"
	"net/http"

	"social-analytics/internal/common/logging"
	"social-analytics/internal/config"
	"social-analytics/internal/coordinator"
	"social-analytics/internal/metrics"
)

// QueueStats is the slice of the job queue the handlers need for health
// reporting.
type QueueStats interface {
	Depth() int
}

type Handlers struct {
	coordinator *coordinator.Coordinator
	queue       QueueStats
	collector   *metrics.Collector
	config      *config.Config
	logger      logging.Logger
}

func New(coord *coordinator.Coordinator, queue QueueStats, collector *metrics.Collector, cfg *config.Config, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Handlers{
		coordinator: coord,
		queue:       queue,
		collector:   collector,
		config:      cfg,
		logger:      logger,
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
