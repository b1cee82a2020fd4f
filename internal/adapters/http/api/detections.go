// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	service "github.com/fightlab/ringside/internal/app"
	"github.com/fightlab/ringside/internal/domain/model"
)

// DetectionsHandler accepts raw detections from the upstream vision
// service.
type DetectionsHandler struct {
	deps Dependencies
}

// NewDetectionsHandler creates a new detections handler.
func NewDetectionsHandler(deps Dependencies) *DetectionsHandler {
	return &DetectionsHandler{deps: deps}
}

// HandlePostDetection handles POST /detections requests. Accepted
// detections are processed asynchronously; a duplicate event id is
// acknowledged without reprocessing.
func (h *DetectionsHandler) HandlePostDetection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var d model.Detection
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	status, err := h.deps.IngestDetection(r.Context(), d)
	if err != nil {
		writeDomainError(w, err, d.Validate())
		return
	}

	switch status {
	case service.IngestDuplicate:
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
	case service.IngestBackpressure:
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
	default:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
	}
}
