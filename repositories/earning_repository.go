package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m-kaif07/esport-tournament-website/models"
)

var ErrEarningUserInvalid = errors.New("earning user conflict or invalid")

type EarningRepository interface {
	Create(ctx context.Context, exec SQLExecutor, e *models.Earning) error
	ExistsByUserAndDescription(ctx context.Context, exec SQLExecutor, userID int, description string) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Earning, error)
}

type postgresEarningRepository struct {
	db *sql.DB
}

func NewPostgresEarningRepository(db *sql.DB) EarningRepository {
	return &postgresEarningRepository{db: db}
}

func (r *postgresEarningRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresEarningRepository) Create(ctx context.Context, exec SQLExecutor, e *models.Earning) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO earnings (user_id, amount, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, e.UserID, e.Amount, e.Description).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create earning: %w", err)
	}
	return nil
}

// ExistsByUserAndDescription backs idempotent prize crediting: assigning the
// same winner rank twice must not credit the prize twice.
func (r *postgresEarningRepository) ExistsByUserAndDescription(ctx context.Context, exec SQLExecutor, userID int, description string) (bool, error) {
	executor := r.getExecutor(exec)
	query := `SELECT EXISTS(SELECT 1 FROM earnings WHERE user_id = $1 AND description = $2)`

	var exists bool
	if err := executor.QueryRowContext(ctx, query, userID, description).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing earning: %w", err)
	}
	return exists, nil
}

func (r *postgresEarningRepository) ListByUser(ctx context.Context, userID int) ([]*models.Earning, error) {
	query := `SELECT id, user_id, amount, description, created_at FROM earnings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list earnings for user %d: %w", userID, err)
	}
	defer rows.Close()

	earnings := make([]*models.Earning, 0)
	for rows.Next() {
		var e models.Earning
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan earning row: %w", err)
		}
		earnings = append(earnings, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating earning rows: %w", err)
	}
	return earnings, nil
}
