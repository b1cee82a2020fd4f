package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrRoundNotFound = errors.New("round not found")
	ErrInvalidLimit  = errors.New("invalid standings limit")
)
