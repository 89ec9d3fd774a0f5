package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/m-kaif07/esport-tournament-website/models"
)

var (
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationConflict          = errors.New("registration conflict: user already registered for this tournament")
	ErrPaymentRefConflict            = errors.New("payment reference already used by another registration")
	ErrRegistrationUserInvalid       = errors.New("registration user conflict or invalid")
	ErrRegistrationTournamentInvalid = errors.New("registration tournament conflict or invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error
	SetSlotNumber(ctx context.Context, exec SQLExecutor, id, slotNumber int) error
	MarkPaid(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	FindByID(ctx context.Context, id int) (*models.Registration, error)
	FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.Registration, error)
	SumTeamSizes(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	SumTeamSizesByTournament(ctx context.Context) (map[int]int, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Registration, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Registration, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error {
	executor := r.getExecutor(exec)

	rosterJSON, err := json.Marshal(reg.Roster)
	if err != nil {
		return fmt.Errorf("failed to serialize roster: %w", err)
	}

	query := `
		INSERT INTO registrations (user_id, tournament_id, slot_number, team_size, roster, phone, utr, paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err = executor.QueryRowContext(ctx, query,
		reg.UserID,
		reg.TournamentID,
		reg.SlotNumber,
		reg.TeamSize,
		rosterJSON,
		reg.Phone,
		reg.UTR,
		reg.Paid,
	).Scan(&reg.ID, &reg.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "registrations_utr_key" {
					return ErrPaymentRefConflict
				}
				return ErrRegistrationConflict
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "registrations_user_id_fkey":
					return ErrRegistrationUserInvalid
				case "registrations_tournament_id_fkey":
					return ErrRegistrationTournamentInvalid
				}
			}
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) SetSlotNumber(ctx context.Context, exec SQLExecutor, id, slotNumber int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE registrations SET slot_number = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, slotNumber, id)
	if err != nil {
		return fmt.Errorf("failed to set slot number on registration %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) MarkPaid(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE registrations SET paid = TRUE WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark registration %d paid: %w", id, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM registrations WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) scanRegistration(rowScanner interface {
	Scan(dest ...interface{}) error
}, reg *models.Registration) error {
	var rosterJSON []byte
	if err := rowScanner.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.TournamentID,
		&reg.SlotNumber,
		&reg.TeamSize,
		&rosterJSON,
		&reg.Phone,
		&reg.UTR,
		&reg.Paid,
		&reg.CreatedAt,
	); err != nil {
		return err
	}
	if len(rosterJSON) > 0 {
		if err := json.Unmarshal(rosterJSON, &reg.Roster); err != nil {
			return fmt.Errorf("failed to deserialize roster of registration %d: %w", reg.ID, err)
		}
	}
	return nil
}

const registrationColumns = `id, user_id, tournament_id, slot_number, team_size, roster, phone, utr, paid, created_at`

func (r *postgresRegistrationRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Registration, error) {
	reg := &models.Registration{}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.scanRegistration(row, reg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) FindByID(ctx context.Context, id int) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresRegistrationRepository) FindByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 AND tournament_id = $2`
	return r.findOne(ctx, query, userID, tournamentID)
}

// SumTeamSizes is the derived "filled players" aggregate. It is advisory:
// the conditional slot update is the authoritative overflow guard.
func (r *postgresRegistrationRepository) SumTeamSizes(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `SELECT COALESCE(SUM(team_size), 0) FROM registrations WHERE tournament_id = $1`

	var sum int
	if err := executor.QueryRowContext(ctx, query, tournamentID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum team sizes for tournament %d: %w", tournamentID, err)
	}
	return sum, nil
}

func (r *postgresRegistrationRepository) SumTeamSizesByTournament(ctx context.Context) (map[int]int, error) {
	query := `SELECT tournament_id, COALESCE(SUM(team_size), 0) FROM registrations GROUP BY tournament_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sum team sizes per tournament: %w", err)
	}
	defer rows.Close()

	sums := make(map[int]int)
	for rows.Next() {
		var tournamentID, sum int
		if err := rows.Scan(&tournamentID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan team size sum row: %w", err)
		}
		sums[tournamentID] = sum
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team size sum rows: %w", err)
	}
	return sums, nil
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Registration, error) {
	query := `
		SELECT
			r.id, r.user_id, r.tournament_id, r.slot_number, r.team_size, r.roster,
			r.phone, r.utr, r.paid, r.created_at,
			u.id, u.username, u.email
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.tournament_id = $1
		ORDER BY r.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		var u models.User
		var rosterJSON []byte
		if err := rows.Scan(
			&reg.ID, &reg.UserID, &reg.TournamentID, &reg.SlotNumber, &reg.TeamSize, &rosterJSON,
			&reg.Phone, &reg.UTR, &reg.Paid, &reg.CreatedAt,
			&u.ID, &u.Username, &u.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		if len(rosterJSON) > 0 {
			if err := json.Unmarshal(rosterJSON, &reg.Roster); err != nil {
				return nil, fmt.Errorf("failed to deserialize roster of registration %d: %w", reg.ID, err)
			}
		}
		reg.User = &u
		registrations = append(registrations, &reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) ListByUser(ctx context.Context, userID int) ([]*models.Registration, error) {
	query := `
		SELECT
			r.id, r.user_id, r.tournament_id, r.slot_number, r.team_size, r.roster,
			r.phone, r.utr, r.paid, r.created_at,
			t.id, t.title, t.game, t.mode, t.total_slots, t.fee, t.prize_pool, t.start_time, t.created_at
		FROM registrations r
		JOIN tournaments t ON t.id = r.tournament_id
		WHERE r.user_id = $1
		ORDER BY t.start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for user %d: %w", userID, err)
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		var t models.Tournament
		var rosterJSON []byte
		if err := rows.Scan(
			&reg.ID, &reg.UserID, &reg.TournamentID, &reg.SlotNumber, &reg.TeamSize, &rosterJSON,
			&reg.Phone, &reg.UTR, &reg.Paid, &reg.CreatedAt,
			&t.ID, &t.Title, &t.Game, &t.Mode, &t.TotalSlots, &t.Fee, &t.PrizePool, &t.StartTime, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		if len(rosterJSON) > 0 {
			if err := json.Unmarshal(rosterJSON, &reg.Roster); err != nil {
				return nil, fmt.Errorf("failed to deserialize roster of registration %d: %w", reg.ID, err)
			}
		}
		reg.Tournament = &t
		registrations = append(registrations, &reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return registrations, nil
}
