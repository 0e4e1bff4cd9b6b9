package models

import "time"

// PlayerStats is the cumulative standings block for one team. It is mutated
// only through the scoring ledger; reads never recompute it from fixtures.
// Points track set wins one-for-one under the current scoring rule.
type PlayerStats struct {
	Played   int `json:"played"`
	SetsWon  int `json:"sets_won"`
	SetsLost int `json:"sets_lost"`
	Points   int `json:"points"`
}

// SetDifference is the standings tiebreaker after points.
func (s PlayerStats) SetDifference() int {
	return s.SetsWon - s.SetsLost
}

// Player is a team entered in a division's round robin.
type Player struct {
	ID         int    `json:"id"`
	DivisionID int    `json:"division_id"`
	Name       string `json:"name"`
	PlayerStats
	CreatedAt time.Time `json:"created_at"`
}
