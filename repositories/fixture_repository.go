package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DavidWhitehead8808/Purley-Padel-App/models"
	"github.com/lib/pq"
)

var (
	ErrFixtureNotFound      = errors.New("fixture not found")
	ErrFixturePlayerInvalid = errors.New("fixture player conflict or invalid")
	ErrFixturePairConflict  = errors.New("fixture already exists for this pair of players")
)

type FixtureRepository interface {
	Create(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error
	BatchCreate(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Fixture, error)
	// GetByIDForUpdate locks the fixture row for the duration of the
	// surrounding transaction, so concurrent corrections of the same fixture
	// cannot interleave their reverse/apply pairs.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Fixture, error)
	// ListByDivision resolves both players' names on each fixture.
	ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int) ([]*models.Fixture, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error
	DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
}

type postgresFixtureRepository struct {
	db *sql.DB
}

func NewPostgresFixtureRepository(db *sql.DB) FixtureRepository {
	return &postgresFixtureRepository{db: db}
}

func (r *postgresFixtureRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func marshalSetScores(scores []models.SetScore) (interface{}, error) {
	if len(scores) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal set scores: %w", err)
	}
	return data, nil
}

func unmarshalSetScores(raw []byte) ([]models.SetScore, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var scores []models.SetScore
	if err := json.Unmarshal(raw, &scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal set scores: %w", err)
	}
	return scores, nil
}

func (r *postgresFixtureRepository) Create(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO fixtures
			(division_id, player1_id, player2_id, set_scores, player1_sets, player2_sets,
			 winner_id, played, match_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	if fixture.CreatedAt.IsZero() {
		fixture.CreatedAt = time.Now()
	}
	scores, err := marshalSetScores(fixture.SetScores)
	if err != nil {
		return err
	}
	err = executor.QueryRowContext(ctx, query,
		fixture.DivisionID, fixture.Player1ID, fixture.Player2ID,
		scores, fixture.Player1Sets, fixture.Player2Sets,
		fixture.WinnerID, fixture.Played, fixture.MatchDate,
		fixture.CreatedAt,
	).Scan(&fixture.ID)
	return r.handleFixtureError(err)
}

func (r *postgresFixtureRepository) BatchCreate(ctx context.Context, exec SQLExecutor, fixtures []*models.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	for _, fixture := range fixtures {
		if err := r.Create(ctx, executor, fixture); err != nil {
			return fmt.Errorf("BatchCreate failed for pair %d vs %d: %w",
				fixture.Player1ID, fixture.Player2ID, err)
		}
	}
	return nil
}

type fixtureScanner interface{ Scan(...interface{}) error }

func (r *postgresFixtureRepository) scanFixture(rowScanner fixtureScanner, withNames bool) (*models.Fixture, error) {
	var f models.Fixture
	var rawScores []byte

	dest := []interface{}{
		&f.ID, &f.DivisionID, &f.Player1ID, &f.Player2ID,
		&rawScores, &f.Player1Sets, &f.Player2Sets,
		&f.WinnerID, &f.Played, &f.MatchDate, &f.CreatedAt,
	}
	if withNames {
		dest = append(dest, &f.Player1Name, &f.Player2Name)
	}

	if err := rowScanner.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFixtureNotFound
		}
		return nil, err
	}

	scores, err := unmarshalSetScores(rawScores)
	if err != nil {
		return nil, err
	}
	f.SetScores = scores
	return &f, nil
}

func (r *postgresFixtureRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Fixture, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, division_id, player1_id, player2_id, set_scores, player1_sets, player2_sets,
		       winner_id, played, match_date, created_at
		FROM fixtures WHERE id = $1`
	return r.scanFixture(executor.QueryRowContext(ctx, query, id), false)
}

func (r *postgresFixtureRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Fixture, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, division_id, player1_id, player2_id, set_scores, player1_sets, player2_sets,
		       winner_id, played, match_date, created_at
		FROM fixtures WHERE id = $1 FOR UPDATE`
	return r.scanFixture(executor.QueryRowContext(ctx, query, id), false)
}

func (r *postgresFixtureRepository) ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int) ([]*models.Fixture, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT f.id, f.division_id, f.player1_id, f.player2_id, f.set_scores,
		       f.player1_sets, f.player2_sets, f.winner_id, f.played, f.match_date, f.created_at,
		       p1.name, p2.name
		FROM fixtures f
		JOIN players p1 ON f.player1_id = p1.id
		JOIN players p2 ON f.player2_id = p2.id
		WHERE f.division_id = $1
		ORDER BY f.id ASC`
	rows, err := executor.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := make([]*models.Fixture, 0)
	for rows.Next() {
		f, errScan := r.scanFixture(rows, true)
		if errScan != nil {
			return nil, errScan
		}
		fixtures = append(fixtures, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (r *postgresFixtureRepository) UpdateResult(ctx context.Context, exec SQLExecutor, fixture *models.Fixture) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE fixtures SET
			set_scores = $1, player1_sets = $2, player2_sets = $3,
			winner_id = $4, played = $5, match_date = $6
		WHERE id = $7`
	scores, err := marshalSetScores(fixture.SetScores)
	if err != nil {
		return err
	}
	result, err := executor.ExecContext(ctx, query,
		scores, fixture.Player1Sets, fixture.Player2Sets,
		fixture.WinnerID, fixture.Played, fixture.MatchDate,
		fixture.ID,
	)
	if err != nil {
		return r.handleFixtureError(err)
	}
	return checkAffectedRows(result, ErrFixtureNotFound)
}

func (r *postgresFixtureRepository) DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM fixtures WHERE division_id = $1`, divisionID)
	return err
}

func (r *postgresFixtureRepository) handleFixtureError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23503": foreign_key_violation
		// "23505": unique_violation (one fixture per unordered pair)
		switch pqErr.Constraint {
		case "fixtures_player1_id_fkey", "fixtures_player2_id_fkey", "fixtures_winner_id_fkey":
			return ErrFixturePlayerInvalid
		case "fixtures_division_pair_key":
			return ErrFixturePairConflict
		}
	}
	return err
}
