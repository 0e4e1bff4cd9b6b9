package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/DavidWhitehead8808/Purley-Padel-App/repositories"
	"golang.org/x/sync/errgroup"
)

type CreateDivisionInput struct {
	Name string `json:"name"`
}

// DivisionOverview bundles everything a division page needs: the division,
// its league table and its fixture list.
type DivisionOverview struct {
	Division *models.Division  `json:"division"`
	Table    []*models.Player  `json:"table"`
	Fixtures []*models.Fixture `json:"fixtures"`
}

type DivisionService interface {
	ListDivisions(ctx context.Context) ([]*models.Division, error)
	CreateDivision(ctx context.Context, input CreateDivisionInput) (*models.Division, error)
	GetDivisionOverview(ctx context.Context, divisionID int) (*DivisionOverview, error)
	DeleteDivision(ctx context.Context, divisionID int) error
}

type divisionService struct {
	db           *sql.DB
	divisionRepo repositories.DivisionRepository
	playerRepo   repositories.PlayerRepository
	fixtureRepo  repositories.FixtureRepository
}

func NewDivisionService(
	db *sql.DB,
	divisionRepo repositories.DivisionRepository,
	playerRepo repositories.PlayerRepository,
	fixtureRepo repositories.FixtureRepository,
) DivisionService {
	return &divisionService{
		db:           db,
		divisionRepo: divisionRepo,
		playerRepo:   playerRepo,
		fixtureRepo:  fixtureRepo,
	}
}

func (s *divisionService) ListDivisions(ctx context.Context) ([]*models.Division, error) {
	divisions, err := s.divisionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	return divisions, nil
}

func (s *divisionService) CreateDivision(ctx context.Context, input CreateDivisionInput) (*models.Division, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDivisionNameRequired
	}

	division := &models.Division{Name: name}
	if err := s.divisionRepo.Create(ctx, nil, division); err != nil {
		if errors.Is(err, repositories.ErrDivisionNameConflict) {
			return nil, ErrDivisionNameConflict
		}
		return nil, fmt.Errorf("failed to create division: %w", err)
	}
	return division, nil
}

// GetDivisionOverview loads the table and fixtures concurrently once the
// division itself is known to exist.
func (s *divisionService) GetDivisionOverview(ctx context.Context, divisionID int) (*DivisionOverview, error) {
	division, err := s.divisionRepo.GetByID(ctx, nil, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to load division %d: %w", divisionID, err)
	}

	overview := &DivisionOverview{Division: division}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		table, err := s.playerRepo.ListByDivision(gctx, nil, divisionID, true)
		if err != nil {
			return fmt.Errorf("failed to load table for division %d: %w", divisionID, err)
		}
		overview.Table = table
		return nil
	})
	g.Go(func() error {
		fixtures, err := s.fixtureRepo.ListByDivision(gctx, nil, divisionID)
		if err != nil {
			return fmt.Errorf("failed to load fixtures for division %d: %w", divisionID, err)
		}
		overview.Fixtures = fixtures
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *divisionService) DeleteDivision(ctx context.Context, divisionID int) error {
	if err := s.divisionRepo.Delete(ctx, nil, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return ErrDivisionNotFound
		}
		return fmt.Errorf("failed to delete division %d: %w", divisionID, err)
	}
	return nil
}
