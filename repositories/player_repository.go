package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerDivisionInvalid = errors.New("player division conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	// GetByIDForUpdate locks the player row; callers lock both sides of a
	// fixture in ascending ID order to keep lock acquisition deadlock-free.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	// ListByDivision returns the division roster. With standingsOrder the
	// players come back in league-table order (points, set difference, name);
	// otherwise in roster order (id), which fixture generation relies on.
	ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int, standingsOrder bool) ([]*models.Player, error)
	UpdateStats(ctx context.Context, exec SQLExecutor, player *models.Player) error
	ResetStatsByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (division_id, name, played, sets_won, sets_lost, points, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now()
	}
	err := executor.QueryRowContext(ctx, query,
		player.DivisionID, player.Name,
		player.Played, player.SetsWon, player.SetsLost, player.Points,
		player.CreatedAt,
	).Scan(&player.ID)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(
		&p.ID, &p.DivisionID, &p.Name,
		&p.Played, &p.SetsWon, &p.SetsLost, &p.Points,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, division_id, name, played, sets_won, sets_lost, points, created_at
		FROM players WHERE id = $1`
	return r.scanPlayer(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, division_id, name, played, sets_won, sets_lost, points, created_at
		FROM players WHERE id = $1 FOR UPDATE`
	return r.scanPlayer(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int, standingsOrder bool) ([]*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, division_id, name, played, sets_won, sets_lost, points, created_at
		FROM players
		WHERE division_id = $1`
	if standingsOrder {
		query += ` ORDER BY points DESC, (sets_won - sets_lost) DESC, name ASC`
	} else {
		query += ` ORDER BY id ASC`
	}

	rows, err := executor.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, errScan := r.scanPlayer(rows)
		if errScan != nil {
			return nil, errScan
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateStats(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players SET played = $1, sets_won = $2, sets_lost = $3, points = $4
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query,
		player.Played, player.SetsWon, player.SetsLost, player.Points, player.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ResetStatsByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players SET played = 0, sets_won = 0, sets_lost = 0, points = 0
		WHERE division_id = $1`
	_, err := executor.ExecContext(ctx, query, divisionID)
	return err
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23503": foreign_key_violation
		if pqErr.Constraint == "players_division_id_fkey" {
			return ErrPlayerDivisionInvalid
		}
	}
	return err
}
