package handlers

import (
	"net/http"
	"time"
)

// HealthCheck reports service liveness together with queue depth and the
// metric counters.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	snap := h.collector.Snapshot()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"queue_depth": h.queue.Depth(),
		"counters": map[string]interface{}{
			"cache_hits":        snap.CacheHits,
			"cache_misses":      snap.CacheMisses,
			"jobs_enqueued":     snap.JobsEnqueued,
			"batches_processed": snap.BatchesProcessed,
		},
	})
}
