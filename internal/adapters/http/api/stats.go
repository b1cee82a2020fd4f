package api

import (
	"encoding/json"
	"net/http"
)

// StatsProvider exposes the service's runtime counters: queue backlog,
// worker pool size, registered matches and ranked fighters.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the operational stats snapshot.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(h.statsProvider.GetStats())
}
