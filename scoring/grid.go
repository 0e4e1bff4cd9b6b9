package scoring

import (
	"errors"
	"fmt"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
)

var (
	ErrInvalidGrid         = errors.New("set scores are missing or empty")
	ErrTooManySets         = errors.New("too many sets")
	ErrMalformedSet        = errors.New("each set must be a pair of non-negative integers")
	ErrTiedSet             = errors.New("a set cannot be tied")
	ErrImplausibleSetScore = errors.New("set score is not a plausible completed set")
	ErrDrawNotAllowed      = errors.New("a match cannot end in a draw")
)

// Rules parameterizes what counts as a plausible completed set. The defaults
// encode the 6-game set with a 7-game tiebreak set: 6-x wins by two or more,
// 7-5 and 7-6 win via tiebreak. Scores like 8-6 are rejected on purpose even
// though amateurs occasionally record extended sets.
type Rules struct {
	MaxSets       int
	SetGames      int
	TiebreakGames int
}

func DefaultRules() Rules {
	return Rules{MaxSets: 3, SetGames: 6, TiebreakGames: 7}
}

// Outcome is the validated result of one fixture's set grid. Sets is the
// normalized copy of the input, preserving set order.
type Outcome struct {
	SetsA int               `json:"sets_won_a"`
	SetsB int               `json:"sets_won_b"`
	Sets  []models.SetScore `json:"normalized_grid"`
}

// ValidateGrid checks a raw set-score grid and tallies sets won per side.
// Pure function: no side effects, same input gives same outcome.
func (r Rules) ValidateGrid(raw [][]int) (*Outcome, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidGrid
	}
	if len(raw) > r.MaxSets {
		return nil, fmt.Errorf("%w: got %d, maximum is %d", ErrTooManySets, len(raw), r.MaxSets)
	}

	out := &Outcome{Sets: make([]models.SetScore, 0, len(raw))}
	for i, entry := range raw {
		if len(entry) != 2 {
			return nil, fmt.Errorf("%w: set %d has %d values", ErrMalformedSet, i+1, len(entry))
		}
		a, b := entry[0], entry[1]
		if a < 0 || b < 0 {
			return nil, fmt.Errorf("%w: set %d is %d-%d", ErrMalformedSet, i+1, a, b)
		}
		if a == b {
			return nil, fmt.Errorf("%w: set %d is %d-%d", ErrTiedSet, i+1, a, b)
		}
		if !r.plausibleSet(a, b) {
			return nil, fmt.Errorf("%w: set %d is %d-%d", ErrImplausibleSetScore, i+1, a, b)
		}
		if a > b {
			out.SetsA++
		} else {
			out.SetsB++
		}
		out.Sets = append(out.Sets, models.SetScore{a, b})
	}

	if out.SetsA == out.SetsB {
		return nil, fmt.Errorf("%w: %d-%d in sets", ErrDrawNotAllowed, out.SetsA, out.SetsB)
	}
	return out, nil
}

func (r Rules) plausibleSet(a, b int) bool {
	winner, loser := a, b
	if b > a {
		winner, loser = b, a
	}
	diff := winner - loser
	switch winner {
	case r.SetGames:
		return diff >= 2
	case r.TiebreakGames:
		return diff == 1 || diff == 2
	default:
		return false
	}
}
