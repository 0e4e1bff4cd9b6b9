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
	ErrDivisionNotFound     = errors.New("division not found")
	ErrDivisionNameConflict = errors.New("division name conflict or invalid")
)

type DivisionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, division *models.Division) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Division, error)
	// GetByIDForUpdate locks the division row for the duration of the
	// surrounding transaction, serializing fixture regeneration per division.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Division, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Division, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresDivisionRepository struct {
	db *sql.DB
}

func NewPostgresDivisionRepository(db *sql.DB) DivisionRepository {
	return &postgresDivisionRepository{db: db}
}

func (r *postgresDivisionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresDivisionRepository) Create(ctx context.Context, exec SQLExecutor, division *models.Division) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO divisions (name, created_at)
		VALUES ($1, $2)
		RETURNING id`
	if division.CreatedAt.IsZero() {
		division.CreatedAt = time.Now()
	}
	err := executor.QueryRowContext(ctx, query, division.Name, division.CreatedAt).Scan(&division.ID)
	return r.handleDivisionError(err)
}

func (r *postgresDivisionRepository) scanDivision(rowScanner interface{ Scan(...interface{}) error }) (*models.Division, error) {
	var d models.Division
	err := rowScanner.Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDivisionNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresDivisionRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Division, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, created_at FROM divisions WHERE id = $1`
	return r.scanDivision(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresDivisionRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Division, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, created_at FROM divisions WHERE id = $1 FOR UPDATE`
	return r.scanDivision(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresDivisionRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Division, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, created_at FROM divisions ORDER BY name ASC`
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := make([]*models.Division, 0)
	for rows.Next() {
		d, errScan := r.scanDivision(rows)
		if errScan != nil {
			return nil, errScan
		}
		divisions = append(divisions, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return divisions, nil
}

func (r *postgresDivisionRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	// Players and fixtures go with the division via ON DELETE CASCADE.
	result, err := executor.ExecContext(ctx, `DELETE FROM divisions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}

func (r *postgresDivisionRepository) handleDivisionError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23505": unique_violation
		if pqErr.Constraint == "divisions_name_key" {
			return ErrDivisionNameConflict
		}
	}
	return err
}
