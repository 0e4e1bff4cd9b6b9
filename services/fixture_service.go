package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/DavidWhitehead8808/Purley-Padel-App/repositories"
	"github.com/DavidWhitehead8808/Purley-Padel-App/schedule"
)

type FixtureService interface {
	ListFixturesByDivision(ctx context.Context, divisionID int) ([]*models.Fixture, error)
	// GenerateFixtures replaces a division's fixture list with a fresh single
	// round robin and zeroes every player's stats, as one atomic unit. It
	// fails with schedule.ErrInsufficientPlayers, leaving existing fixtures
	// and standings untouched, when the roster has fewer than two players.
	GenerateFixtures(ctx context.Context, divisionID int) ([]*models.Fixture, error)
}

type fixtureService struct {
	db           *sql.DB
	divisionRepo repositories.DivisionRepository
	playerRepo   repositories.PlayerRepository
	fixtureRepo  repositories.FixtureRepository
	generator    schedule.PairingGenerator
}

func NewFixtureService(
	db *sql.DB,
	divisionRepo repositories.DivisionRepository,
	playerRepo repositories.PlayerRepository,
	fixtureRepo repositories.FixtureRepository,
	generator schedule.PairingGenerator,
) FixtureService {
	return &fixtureService{
		db:           db,
		divisionRepo: divisionRepo,
		playerRepo:   playerRepo,
		fixtureRepo:  fixtureRepo,
		generator:    generator,
	}
}

func (s *fixtureService) ListFixturesByDivision(ctx context.Context, divisionID int) ([]*models.Fixture, error) {
	if _, err := s.divisionRepo.GetByID(ctx, nil, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to check division %d: %w", divisionID, err)
	}

	fixtures, err := s.fixtureRepo.ListByDivision(ctx, nil, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures for division %d: %w", divisionID, err)
	}
	return fixtures, nil
}

func (s *fixtureService) GenerateFixtures(ctx context.Context, divisionID int) ([]*models.Fixture, error) {
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

	fixtures, err := s.generateWithinTx(ctx, tx, divisionID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit fixture generation for division %d: %w", divisionID, err)
	}
	return fixtures, nil
}

// generateWithinTx does the full-replace generation against the given
// executor. The division row lock serializes regeneration against any
// concurrent result recording in the same division.
func (s *fixtureService) generateWithinTx(ctx context.Context, exec repositories.SQLExecutor, divisionID int) ([]*models.Fixture, error) {
	division, err := s.divisionRepo.GetByIDForUpdate(ctx, exec, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to lock division %d: %w", divisionID, err)
	}

	players, err := s.playerRepo.ListByDivision(ctx, exec, divisionID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster for division %d: %w", divisionID, err)
	}

	// Generate before touching anything, so an undersized roster is a no-op.
	pairings, err := s.generator.GeneratePairings(ctx, schedule.GeneratePairingsParams{
		Division: division,
		Players:  players,
	})
	if err != nil {
		return nil, err
	}

	if err := s.fixtureRepo.DeleteByDivision(ctx, exec, divisionID); err != nil {
		return nil, fmt.Errorf("failed to clear fixtures for division %d: %w", divisionID, err)
	}
	if err := s.playerRepo.ResetStatsByDivision(ctx, exec, divisionID); err != nil {
		return nil, fmt.Errorf("failed to reset standings for division %d: %w", divisionID, err)
	}

	fixtures := make([]*models.Fixture, 0, len(pairings))
	for _, pairing := range pairings {
		fixtures = append(fixtures, &models.Fixture{
			DivisionID: divisionID,
			Player1ID:  pairing.Player1ID,
			Player2ID:  pairing.Player2ID,
		})
	}
	if err := s.fixtureRepo.BatchCreate(ctx, exec, fixtures); err != nil {
		return nil, fmt.Errorf("failed to insert fixtures for division %d: %w", divisionID, err)
	}
	return fixtures, nil
}
