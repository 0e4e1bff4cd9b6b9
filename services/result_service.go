package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/DavidWhitehead8808/Purley-Padel-App/repositories"
	"github.com/DavidWhitehead8808/Purley-Padel-App/scoring"
)

type RecordResultInput struct {
	SetScores [][]int `json:"set_scores"`
}

type ResultService interface {
	// RecordResult validates the grid, then persists the fixture result and
	// the standings effect as one transaction. Recording over an already
	// played fixture reverses the stored prior result first, so a correction
	// lands the same standings as if only the new result had ever been
	// recorded.
	RecordResult(ctx context.Context, fixtureID int, input RecordResultInput) (*scoring.Outcome, error)
}

type resultService struct {
	db          *sql.DB
	fixtureRepo repositories.FixtureRepository
	playerRepo  repositories.PlayerRepository
	rules       scoring.Rules
}

func NewResultService(
	db *sql.DB,
	fixtureRepo repositories.FixtureRepository,
	playerRepo repositories.PlayerRepository,
	rules scoring.Rules,
) ResultService {
	return &resultService{
		db:          db,
		fixtureRepo: fixtureRepo,
		playerRepo:  playerRepo,
		rules:       rules,
	}
}

func (s *resultService) RecordResult(ctx context.Context, fixtureID int, input RecordResultInput) (*scoring.Outcome, error) {
	// Validation is pure and happens before the transaction: a bad grid
	// never touches state.
	outcome, err := s.rules.ValidateGrid(input.SetScores)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := s.recordWithinTx(ctx, tx, fixtureID, outcome); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result for fixture %d: %w", fixtureID, err)
	}
	return outcome, nil
}

// recordWithinTx runs the reverse-then-apply state machine against the given
// executor. The fixture row lock serializes concurrent submissions for the
// same fixture; both player rows are then locked in ascending ID order.
func (s *resultService) recordWithinTx(ctx context.Context, exec repositories.SQLExecutor, fixtureID int, outcome *scoring.Outcome) error {
	fixture, err := s.fixtureRepo.GetByIDForUpdate(ctx, exec, fixtureID)
	if err != nil {
		if errors.Is(err, repositories.ErrFixtureNotFound) {
			return ErrFixtureNotFound
		}
		return fmt.Errorf("failed to lock fixture %d: %w", fixtureID, err)
	}

	player1, player2, err := s.lockPlayers(ctx, exec, fixture)
	if err != nil {
		return err
	}

	if fixture.Played {
		if err := s.reversePrior(fixture, player1, player2); err != nil {
			return err
		}
	}

	sets1, sets2 := outcome.SetsA, outcome.SetsB
	winnerID := fixture.Player1ID
	if sets2 > sets1 {
		winnerID = fixture.Player2ID
	}
	now := time.Now()

	fixture.SetScores = outcome.Sets
	fixture.Player1Sets = &sets1
	fixture.Player2Sets = &sets2
	fixture.WinnerID = &winnerID
	fixture.Played = true
	fixture.MatchDate = &now

	if err := s.fixtureRepo.UpdateResult(ctx, exec, fixture); err != nil {
		return fmt.Errorf("failed to persist result for fixture %d: %w", fixtureID, err)
	}

	scoring.Apply(&player1.PlayerStats, &player2.PlayerStats, sets1, sets2)

	if err := s.playerRepo.UpdateStats(ctx, exec, player1); err != nil {
		return fmt.Errorf("failed to update stats for player %d: %w", player1.ID, err)
	}
	if err := s.playerRepo.UpdateStats(ctx, exec, player2); err != nil {
		return fmt.Errorf("failed to update stats for player %d: %w", player2.ID, err)
	}
	return nil
}

// lockPlayers acquires both sides' row locks in ascending ID order and
// returns them as (side1, side2) of the fixture.
func (s *resultService) lockPlayers(ctx context.Context, exec repositories.SQLExecutor, fixture *models.Fixture) (*models.Player, *models.Player, error) {
	firstID, secondID := fixture.Player1ID, fixture.Player2ID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	byID := make(map[int]*models.Player, 2)
	for _, id := range []int{firstID, secondID} {
		player, err := s.playerRepo.GetByIDForUpdate(ctx, exec, id)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return nil, nil, ErrPlayerNotFound
			}
			return nil, nil, fmt.Errorf("failed to lock player %d: %w", id, err)
		}
		byID[id] = player
	}
	return byID[fixture.Player1ID], byID[fixture.Player2ID], nil
}

// reversePrior undoes the standings effect of the fixture's stored result.
// The stored set counts are used, never a recomputation of the old grid.
// Rows carrying only a winner (pre-set-score data) take the legacy path.
func (s *resultService) reversePrior(fixture *models.Fixture, player1, player2 *models.Player) error {
	if fixture.HasLegacyResult() {
		if fixture.WinnerID == nil {
			return fmt.Errorf("fixture %d is marked played but has no winner or set counts", fixture.ID)
		}
		winner, loser := player1, player2
		if *fixture.WinnerID == player2.ID {
			winner, loser = player2, player1
		}
		scoring.ReverseLegacy(&winner.PlayerStats, &loser.PlayerStats)
		return nil
	}

	if fixture.Player1Sets == nil || fixture.Player2Sets == nil {
		return fmt.Errorf("fixture %d is marked played but is missing stored set counts", fixture.ID)
	}
	scoring.Reverse(&player1.PlayerStats, &player2.PlayerStats, *fixture.Player1Sets, *fixture.Player2Sets)
	return nil
}
