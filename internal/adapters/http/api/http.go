// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fightlab/ringside/internal/adapters/repository"
	service "github.com/fightlab/ringside/internal/app"
	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/fightlab/ringside/internal/domain/validation"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateMatch(ctx context.Context, draft model.MatchDraft) (model.Match, validation.Result, error)
	GetMatch(ctx context.Context, id string) (model.Match, error)
	UpdateMatch(ctx context.Context, id string, draft model.MatchDraft) (model.Match, validation.Result, error)
	AddRound(ctx context.Context, matchID string, draft model.RoundDraft) (model.Round, validation.Result, error)
	RoundStatistics(ctx context.Context, matchID string, roundNumber int) ([2]model.MatchStatistics, error)

	IngestDetection(ctx context.Context, d model.Detection) (service.IngestStatus, error)

	TopStandings(ctx context.Context, n int) ([]Entry, error)
	FighterRank(ctx context.Context, fighterID string) (Entry, error)
}

// Entry mirrors the read shape returned by standings queries.
type Entry = repository.StandingsEntry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	matchesHandler    *MatchesHandler
	detectionsHandler *DetectionsHandler
	standingsHandler  *StandingsHandler
	rankHandler       *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxStandingsLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		matchesHandler:    NewMatchesHandler(deps),
		detectionsHandler: NewDetectionsHandler(deps),
		standingsHandler:  NewStandingsHandler(deps, maxStandingsLimit),
		rankHandler:       NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.matchesHandler.HandleMatch, "matches"))
	mux.HandleFunc("/detections", MetricsMiddleware(s.detectionsHandler.HandlePostDetection, "detections"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

// ackResponse is the reply for POST /detections.
type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// validationResponse carries a rejected payload's validation outcome.
type validationResponse struct {
	Code     string   `json:"code"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeValidation(w http.ResponseWriter, res validation.Result) {
	writeJSON(w, http.StatusBadRequest, validationResponse{
		Code:     "validation_failed",
		Errors:   res.Errors,
		Warnings: res.Warnings,
	})
}

// writeDomainError translates service and repository errors to status
// codes; unknown errors become 500s.
func writeDomainError(w http.ResponseWriter, err error, res validation.Result) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeValidation(w, res)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrRoundNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, model.ErrRoundLimit):
		writeError(w, http.StatusUnprocessableEntity, "round_limit", err)
	case errors.Is(err, model.ErrInvalidTransition):
		writeError(w, http.StatusUnprocessableEntity, "invalid_transition", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
