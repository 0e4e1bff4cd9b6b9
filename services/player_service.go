package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/DavidWhitehead8808/Purley-Padel-App/repositories"
)

type CreatePlayerInput struct {
	Name string `json:"name"`
}

type PlayerService interface {
	// ListPlayersByDivision returns the division's league table: points
	// descending, then set difference, then name.
	ListPlayersByDivision(ctx context.Context, divisionID int) ([]*models.Player, error)
	CreatePlayer(ctx context.Context, divisionID int, input CreatePlayerInput) (*models.Player, error)
}

type playerService struct {
	playerRepo   repositories.PlayerRepository
	divisionRepo repositories.DivisionRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	divisionRepo repositories.DivisionRepository,
) PlayerService {
	return &playerService{
		playerRepo:   playerRepo,
		divisionRepo: divisionRepo,
	}
}

func (s *playerService) ListPlayersByDivision(ctx context.Context, divisionID int) ([]*models.Player, error) {
	if _, err := s.divisionRepo.GetByID(ctx, nil, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to check division %d: %w", divisionID, err)
	}

	players, err := s.playerRepo.ListByDivision(ctx, nil, divisionID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for division %d: %w", divisionID, err)
	}
	return players, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, divisionID int, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	if _, err := s.divisionRepo.GetByID(ctx, nil, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to check division %d: %w", divisionID, err)
	}

	player := &models.Player{
		DivisionID: divisionID,
		Name:       name,
	}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerDivisionInvalid) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}
