package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/DavidWhitehead8808/Purley-Padel-App/schedule"
)

type generationFixture struct {
	service      *fixtureService
	divisionRepo *fakeDivisionRepo
	playerRepo   *fakePlayerRepo
	fixtureRepo  *fakeFixtureRepo
	division     *models.Division
}

func newGenerationFixture(t *testing.T, rosterSize int) *generationFixture {
	t.Helper()
	divisionRepo := newFakeDivisionRepo()
	playerRepo := newFakePlayerRepo()
	fixtureRepo := newFakeFixtureRepo()

	division := divisionRepo.add(&models.Division{Name: "Division One"})
	for i := 1; i <= rosterSize; i++ {
		playerRepo.add(&models.Player{
			DivisionID: division.ID,
			Name:       fmt.Sprintf("Team %d", i),
		})
	}

	return &generationFixture{
		service: &fixtureService{
			divisionRepo: divisionRepo,
			playerRepo:   playerRepo,
			fixtureRepo:  fixtureRepo,
			generator:    schedule.NewRoundRobinGenerator(),
		},
		divisionRepo: divisionRepo,
		playerRepo:   playerRepo,
		fixtureRepo:  fixtureRepo,
		division:     division,
	}
}

func TestGenerateFixtures(t *testing.T) {
	ctx := context.Background()

	t.Run("division not found", func(t *testing.T) {
		f := newGenerationFixture(t, 4)
		_, err := f.service.generateWithinTx(ctx, nil, 999)
		assert.ErrorIs(t, err, ErrDivisionNotFound)
	})

	t.Run("four players yield six fixtures and zeroed stats", func(t *testing.T) {
		f := newGenerationFixture(t, 4)
		for _, p := range f.playerRepo.players {
			p.PlayerStats = models.PlayerStats{Played: 3, SetsWon: 5, SetsLost: 2, Points: 5}
		}

		fixtures, err := f.service.generateWithinTx(ctx, nil, f.division.ID)
		require.NoError(t, err)
		assert.Len(t, fixtures, 6)

		seen := make(map[[2]int]bool)
		for _, fx := range fixtures {
			assert.Equal(t, f.division.ID, fx.DivisionID)
			assert.False(t, fx.Played)
			key := [2]int{fx.Player1ID, fx.Player2ID}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			assert.False(t, seen[key], "pair %v appears twice", key)
			seen[key] = true
		}
		assert.Len(t, seen, 6)

		players, err := f.playerRepo.ListByDivision(ctx, nil, f.division.ID, false)
		require.NoError(t, err)
		require.Len(t, players, 4)
		for _, p := range players {
			assert.Equal(t, models.PlayerStats{}, p.PlayerStats, "player %s", p.Name)
		}
	})

	t.Run("single player is a transactional no-op", func(t *testing.T) {
		f := newGenerationFixture(t, 1)
		players, _ := f.playerRepo.ListByDivision(ctx, nil, f.division.ID, false)
		f.playerRepo.players[players[0].ID].PlayerStats = models.PlayerStats{Played: 2, SetsWon: 3, SetsLost: 1, Points: 3}
		stale := f.fixtureRepo.add(&models.Fixture{DivisionID: f.division.ID, Player1ID: 1, Player2ID: 50})

		_, err := f.service.generateWithinTx(ctx, nil, f.division.ID)
		assert.ErrorIs(t, err, schedule.ErrInsufficientPlayers)

		remaining, err := f.fixtureRepo.ListByDivision(ctx, nil, f.division.ID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, stale.ID, remaining[0].ID)

		p, _ := f.playerRepo.GetByID(ctx, nil, players[0].ID)
		assert.Equal(t, models.PlayerStats{Played: 2, SetsWon: 3, SetsLost: 1, Points: 3}, p.PlayerStats)
	})

	t.Run("regeneration replaces prior fixtures", func(t *testing.T) {
		f := newGenerationFixture(t, 3)
		first, err := f.service.generateWithinTx(ctx, nil, f.division.ID)
		require.NoError(t, err)
		require.Len(t, first, 3)

		second, err := f.service.generateWithinTx(ctx, nil, f.division.ID)
		require.NoError(t, err)
		require.Len(t, second, 3)

		remaining, err := f.fixtureRepo.ListByDivision(ctx, nil, f.division.ID)
		require.NoError(t, err)
		assert.Len(t, remaining, 3)
		for _, fx := range remaining {
			assert.False(t, fx.Played)
		}
	})
}
