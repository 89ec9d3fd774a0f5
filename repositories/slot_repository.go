package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/m-kaif07/esport-tournament-website/models"
)

var (
	ErrSlotNotFound          = errors.New("slot not found")
	ErrNoEmptySlot           = errors.New("no empty slot available")
	ErrSlotTaken             = errors.New("slot is no longer empty")
	ErrSlotTournamentInvalid = errors.New("slot tournament conflict or invalid")
)

type SlotRepository interface {
	CreateRange(ctx context.Context, exec SQLExecutor, tournamentID, from, to int, now time.Time) error
	Get(ctx context.Context, tournamentID, slotNumber int) (*models.Slot, error)
	FindFirstEmpty(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	Reserve(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, occupants [4]*string, now time.Time) error
	Confirm(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, now time.Time) error
	Release(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, now time.Time) error
	Overwrite(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, status models.SlotStatus, occupants [4]*string, now time.Time) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Slot, error)
	CountFilled(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	DeleteAbove(ctx context.Context, exec SQLExecutor, tournamentID, keep int) error
}

type postgresSlotRepository struct {
	db *sql.DB
}

func NewPostgresSlotRepository(db *sql.DB) SlotRepository {
	return &postgresSlotRepository{db: db}
}

func (r *postgresSlotRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSlotRepository) CreateRange(ctx context.Context, exec SQLExecutor, tournamentID, from, to int, now time.Time) error {
	if from > to {
		return nil
	}
	executor := r.getExecutor(exec)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`INSERT INTO slots (tournament_id, slot_number, status, updated_at) VALUES `)
	args := make([]interface{}, 0, (to-from+1)*2+2)
	args = append(args, tournamentID, now)
	argCounter := 3
	for n := from; n <= to; n++ {
		if n > from {
			queryBuilder.WriteString(", ")
		}
		queryBuilder.WriteString(fmt.Sprintf("($1, $%d, 'empty', $2)", argCounter))
		args = append(args, n)
		argCounter++
	}

	_, err := executor.ExecContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrSlotTournamentInvalid
		}
		return fmt.Errorf("failed to seed slots %d..%d for tournament %d: %w", from, to, tournamentID, err)
	}
	return nil
}

func (r *postgresSlotRepository) Get(ctx context.Context, tournamentID, slotNumber int) (*models.Slot, error) {
	query := `
		SELECT id, tournament_id, slot_number, status, p1, p2, p3, p4, updated_at
		FROM slots
		WHERE tournament_id = $1 AND slot_number = $2`

	s := &models.Slot{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, slotNumber).Scan(
		&s.ID, &s.TournamentID, &s.SlotNumber, &s.Status,
		&s.P1, &s.P2, &s.P3, &s.P4, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot %d of tournament %d: %w", slotNumber, tournamentID, err)
	}
	return s, nil
}

// FindFirstEmpty returns the lowest-numbered empty slot of the tournament.
// The result is only a candidate: Reserve re-checks the status at write time.
func (r *postgresSlotRepository) FindFirstEmpty(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT slot_number FROM slots
		WHERE tournament_id = $1 AND status = 'empty'
		ORDER BY slot_number ASC
		LIMIT 1`

	var slotNumber int
	err := executor.QueryRowContext(ctx, query, tournamentID).Scan(&slotNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoEmptySlot
		}
		return 0, fmt.Errorf("failed to find empty slot for tournament %d: %w", tournamentID, err)
	}
	return slotNumber, nil
}

// Reserve flips a slot empty -> reserved and writes the occupant names.
// The WHERE status = 'empty' predicate is the race guard: when a concurrent
// transaction claimed the slot first, zero rows are affected and ErrSlotTaken
// is returned so the caller can abort its unit.
func (r *postgresSlotRepository) Reserve(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, occupants [4]*string, now time.Time) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE slots
		SET status = 'reserved', p1 = $1, p2 = $2, p3 = $3, p4 = $4, updated_at = $5
		WHERE tournament_id = $6 AND slot_number = $7 AND status = 'empty'`

	result, err := executor.ExecContext(ctx, query,
		occupants[0], occupants[1], occupants[2], occupants[3], now, tournamentID, slotNumber)
	if err != nil {
		return fmt.Errorf("failed to reserve slot %d of tournament %d: %w", slotNumber, tournamentID, err)
	}
	return checkAffectedRows(result, ErrSlotTaken)
}

func (r *postgresSlotRepository) Confirm(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, now time.Time) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE slots SET status = 'confirmed', updated_at = $1
		WHERE tournament_id = $2 AND slot_number = $3`

	result, err := executor.ExecContext(ctx, query, now, tournamentID, slotNumber)
	if err != nil {
		return fmt.Errorf("failed to confirm slot %d of tournament %d: %w", slotNumber, tournamentID, err)
	}
	return checkAffectedRows(result, ErrSlotNotFound)
}

func (r *postgresSlotRepository) Release(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, now time.Time) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE slots
		SET status = 'empty', p1 = NULL, p2 = NULL, p3 = NULL, p4 = NULL, updated_at = $1
		WHERE tournament_id = $2 AND slot_number = $3`

	result, err := executor.ExecContext(ctx, query, now, tournamentID, slotNumber)
	if err != nil {
		return fmt.Errorf("failed to release slot %d of tournament %d: %w", slotNumber, tournamentID, err)
	}
	return checkAffectedRows(result, ErrSlotNotFound)
}

// Overwrite sets a slot's status and occupants unconditionally. Admin-only;
// the registration workflows go through Reserve/Confirm/Release instead.
func (r *postgresSlotRepository) Overwrite(ctx context.Context, exec SQLExecutor, tournamentID, slotNumber int, status models.SlotStatus, occupants [4]*string, now time.Time) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE slots
		SET status = $1, p1 = $2, p2 = $3, p3 = $4, p4 = $5, updated_at = $6
		WHERE tournament_id = $7 AND slot_number = $8`

	result, err := executor.ExecContext(ctx, query,
		status, occupants[0], occupants[1], occupants[2], occupants[3], now, tournamentID, slotNumber)
	if err != nil {
		return fmt.Errorf("failed to overwrite slot %d of tournament %d: %w", slotNumber, tournamentID, err)
	}
	return checkAffectedRows(result, ErrSlotNotFound)
}

func (r *postgresSlotRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Slot, error) {
	query := `
		SELECT id, tournament_id, slot_number, status, p1, p2, p3, p4, updated_at
		FROM slots
		WHERE tournament_id = $1
		ORDER BY slot_number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	slots := make([]*models.Slot, 0)
	for rows.Next() {
		var s models.Slot
		if err := rows.Scan(&s.ID, &s.TournamentID, &s.SlotNumber, &s.Status,
			&s.P1, &s.P2, &s.P3, &s.P4, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		slots = append(slots, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot rows: %w", err)
	}
	return slots, nil
}

func (r *postgresSlotRepository) CountFilled(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `SELECT COUNT(*) FROM slots WHERE tournament_id = $1 AND status IN ('reserved', 'confirmed')`

	var count int
	if err := executor.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count filled slots for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresSlotRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `SELECT COUNT(*) FROM slots WHERE tournament_id = $1`

	var count int
	if err := executor.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count slots for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

// DeleteAbove drops slots numbered above keep, used when a mode change
// shrinks a tournament's capacity.
func (r *postgresSlotRepository) DeleteAbove(ctx context.Context, exec SQLExecutor, tournamentID, keep int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM slots WHERE tournament_id = $1 AND slot_number > $2`

	if _, err := executor.ExecContext(ctx, query, tournamentID, keep); err != nil {
		return fmt.Errorf("failed to trim slots above %d for tournament %d: %w", keep, tournamentID, err)
	}
	return nil
}
