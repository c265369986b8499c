package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"social-analytics/internal/common/errors"
	"social-analytics/internal/coordinator"
	"social-analytics/internal/models"
)

// AnalyzeRequest is the submission payload. MaxResults falls back to the
// configured default when omitted.
type AnalyzeRequest struct {
	Topic      string `json:"topic"`
	MaxResults int    `json:"max_results,omitempty"`
}

// AnalyzeResponse reports what happened to a submission or lookup.
type AnalyzeResponse struct {
	Status   string                 `json:"status"`
	Topic    string                 `json:"topic"`
	Result   *models.AnalysisResult `json:"result,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Attempts int                    `json:"attempts,omitempty"`
}

// HandleAnalyze accepts an analysis request for a topic. A fresh cached
// result is returned immediately with 200; an admitted or joined job
// returns 202; a saturated queue returns 503; an exhausted topic returns
// 502.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = h.config.MaxResultsInt()
	}

	request := models.NewAnalysisRequest(req.Topic, maxResults)
	if request.Topic == "" {
		h.writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	outcome, err := h.coordinator.Request(r.Context(), request.Topic, request.MaxResults)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeOutcome(w, request.Topic, outcome)
}

// HandleGetResult reports the current state of a topic without admitting
// any work: 200 when ready, 202 while in flight, 502 after failure, 404
// when the topic is unknown or its result expired.
func (h *Handlers) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	topic := models.NormalizeTopic(mux.Vars(r)["topic"])
	if topic == "" {
		h.writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	outcome, found, err := h.coordinator.Lookup(r.Context(), topic)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		h.writeError(w, http.StatusNotFound, "no analysis for topic")
		return
	}

	h.writeOutcome(w, topic, outcome)
}

func (h *Handlers) writeOutcome(w http.ResponseWriter, topic string, outcome coordinator.Outcome) {
	resp := AnalyzeResponse{
		Status:   string(outcome.Status),
		Topic:    topic,
		Result:   outcome.Result,
		Attempts: outcome.Attempts,
	}

	switch outcome.Status {
	case coordinator.StatusCached:
		h.writeJSON(w, http.StatusOK, resp)
	case coordinator.StatusQueued:
		h.writeJSON(w, http.StatusAccepted, resp)
	case coordinator.StatusFailed:
		status := http.StatusBadGateway
		if errors.IsType(outcome.Err, errors.ErrTypeBackpressure) {
			status = http.StatusServiceUnavailable
		}
		if outcome.Err != nil {
			resp.Error = outcome.Err.Error()
		}
		h.writeJSON(w, status, resp)
	default:
		h.writeError(w, http.StatusInternalServerError, "unexpected outcome: "+strings.ToLower(string(outcome.Status)))
	}
}
