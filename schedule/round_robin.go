package schedule

import (
	"context"
	"errors"
	"fmt"
)

var ErrInsufficientPlayers = errors.New("at least two players are required to generate fixtures")

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() PairingGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GeneratePairings creates the fixture list for a single round robin: one
// pairing per unordered pair of players, enumerated canonically (each player
// against every later player in roster order). N players yield N*(N-1)/2
// pairings. The order affects only display, not correctness.
func (g *RoundRobinGenerator) GeneratePairings(ctx context.Context, params GeneratePairingsParams) ([]Pairing, error) {
	players := params.Players
	if len(players) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrInsufficientPlayers, len(players))
	}

	pairings := make([]Pairing, 0, len(players)*(len(players)-1)/2)
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			pairings = append(pairings, Pairing{
				Player1ID: players[i].ID,
				Player2ID: players[j].ID,
			})
		}
	}

	return pairings, nil
}
