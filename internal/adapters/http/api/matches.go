// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// MatchesHandler serves the match resource.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleMatches handles POST /matches requests.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var draft matchDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	m, res, err := h.deps.CreateMatch(r.Context(), draft.MatchDraft)
	if err != nil {
		writeDomainError(w, err, res)
		return
	}
	writeJSON(w, http.StatusCreated, matchResponse{Match: m, Warnings: res.Warnings})
}

// HandleMatch routes /matches/{id} and its subresources:
//
//	GET   /matches/{id}
//	PATCH /matches/{id}
//	POST  /matches/{id}/rounds
//	GET   /matches/{id}/rounds/{n}/statistics
func (h *MatchesHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/matches/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		h.handleMatchByID(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "rounds":
		h.handlePostRound(w, r, parts[0])
	case len(parts) == 4 && parts[1] == "rounds" && parts[3] == "statistics":
		h.handleRoundStatistics(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (h *MatchesHandler) handleMatchByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		m, err := h.deps.GetMatch(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, validationResult())
			return
		}
		writeJSON(w, http.StatusOK, m)
	case http.MethodPatch:
		var draft matchDraftRequest
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		m, res, err := h.deps.UpdateMatch(r.Context(), id, draft.MatchDraft)
		if err != nil {
			writeDomainError(w, err, res)
			return
		}
		writeJSON(w, http.StatusOK, matchResponse{Match: m, Warnings: res.Warnings})
	default:
		http.NotFound(w, r)
	}
}

func (h *MatchesHandler) handlePostRound(w http.ResponseWriter, r *http.Request, matchID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var draft roundDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	round, res, err := h.deps.AddRound(r.Context(), matchID, draft.RoundDraft)
	if err != nil {
		writeDomainError(w, err, res)
		return
	}
	writeJSON(w, http.StatusCreated, roundResponse{Round: round, Warnings: res.Warnings})
}

func (h *MatchesHandler) handleRoundStatistics(w http.ResponseWriter, r *http.Request, matchID, roundStr string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	roundNumber, err := strconv.Atoi(roundStr)
	if err != nil || roundNumber < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	stats, err := h.deps.RoundStatistics(r.Context(), matchID, roundNumber)
	if err != nil {
		writeDomainError(w, err, validationResult())
		return
	}
	writeJSON(w, http.StatusOK, stats[:])
}
