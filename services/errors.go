package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handlers package.
// Grid validation errors live in the scoring package and propagate unchanged;
// ErrInsufficientPlayers lives in the schedule package.
var (
	ErrDivisionNotFound = errors.New("division not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrFixtureNotFound  = errors.New("fixture not found")

	ErrDivisionNameRequired = errors.New("division name is required")
	ErrPlayerNameRequired   = errors.New("player name is required")

	ErrDivisionNameConflict = errors.New("division name is already in use")
)
