package scoring

import "github.com/DavidWhitehead8808/Purley-Padel-App/models"

// Legacy results were scored 3 points for a win, 1 for a loss, with no set
// breakdown stored.
const (
	legacyWinPoints  = 3
	legacyLossPoints = 1
)

// Apply folds one fixture result into both sides' cumulative stats.
func Apply(a, b *models.PlayerStats, setsA, setsB int) {
	a.Played++
	b.Played++
	a.SetsWon += setsA
	a.SetsLost += setsB
	a.Points += setsA
	b.SetsWon += setsB
	b.SetsLost += setsA
	b.Points += setsB
}

// Reverse undoes a previously applied result using the set counts stored on
// the fixture at the time it was recorded. The stored counts matter: the
// validation rules may have changed between submissions, so recomputing from
// the grid is not safe. Decrements clamp at zero so malformed legacy data
// cannot drive stats negative.
func Reverse(a, b *models.PlayerStats, priorA, priorB int) {
	a.Played = clampZero(a.Played - 1)
	b.Played = clampZero(b.Played - 1)
	a.SetsWon = clampZero(a.SetsWon - priorA)
	a.SetsLost = clampZero(a.SetsLost - priorB)
	a.Points = clampZero(a.Points - priorA)
	b.SetsWon = clampZero(b.SetsWon - priorB)
	b.SetsLost = clampZero(b.SetsLost - priorA)
	b.Points = clampZero(b.Points - priorB)
}

// ReverseLegacy undoes a result recorded under the old win/loss scoring,
// where only the winner was stored. One-time migration path for pre-existing
// rows, not part of the steady-state contract.
func ReverseLegacy(winner, loser *models.PlayerStats) {
	winner.Played = clampZero(winner.Played - 1)
	loser.Played = clampZero(loser.Played - 1)
	winner.Points = clampZero(winner.Points - legacyWinPoints)
	loser.Points = clampZero(loser.Points - legacyLossPoints)
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
