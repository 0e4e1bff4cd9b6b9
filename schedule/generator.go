package schedule

import (
	"context"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
)

// Pairing is one generated fixture slot before persistence.
type Pairing struct {
	Player1ID int
	Player2ID int
}

type GeneratePairingsParams struct {
	Division *models.Division
	Players  []*models.Player
}

type PairingGenerator interface {
	GeneratePairings(ctx context.Context, params GeneratePairingsParams) ([]Pairing, error)

	GetName() string
}
