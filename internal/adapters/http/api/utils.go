// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"github.com/fightlab/ringside/internal/domain/model"
	"github.com/fightlab/ringside/internal/domain/validation"
)

// Request and response envelopes. Drafts embed the domain draft types so
// the wire shape stays the single source of truth in the model package.

type matchDraftRequest struct {
	model.MatchDraft
}

type roundDraftRequest struct {
	model.RoundDraft
}

type matchResponse struct {
	model.Match
	Warnings []string `json:"warnings,omitempty"`
}

type roundResponse struct {
	model.Round
	Warnings []string `json:"warnings,omitempty"`
}

func validationResult() validation.Result {
	return validation.Result{}
}
