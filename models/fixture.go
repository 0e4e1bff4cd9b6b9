package models

import "time"

// SetScore is one set of a fixture as (player1 games, player2 games).
type SetScore [2]int

// Fixture is one scheduled or played match between two players of a
// division. Result fields are nil until a result is recorded.
type Fixture struct {
	ID          int        `json:"id"`
	DivisionID  int        `json:"division_id"`
	Player1ID   int        `json:"player1_id"`
	Player2ID   int        `json:"player2_id"`
	Player1Name string     `json:"player1_name,omitempty"`
	Player2Name string     `json:"player2_name,omitempty"`
	SetScores   []SetScore `json:"set_scores,omitempty"`
	Player1Sets *int       `json:"player1_sets,omitempty"`
	Player2Sets *int       `json:"player2_sets,omitempty"`
	WinnerID    *int       `json:"winner_id,omitempty"`
	Played      bool       `json:"played"`
	MatchDate   *time.Time `json:"match_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasLegacyResult reports whether the fixture carries a result recorded
// before set counts were stored: a winner only, no set breakdown. Such rows
// exist only in migrated data and are rewritten on the next correction.
func (f *Fixture) HasLegacyResult() bool {
	return f.Played && f.Player1Sets == nil && f.Player2Sets == nil
}
