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
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrTournamentWinnerInvalid = errors.New("tournament winner user conflict or invalid")
)

// TournamentUpdateParams carries the optional fields of a partial update.
// Nil pointers leave the corresponding column untouched.
type TournamentUpdateParams struct {
	Title        *string
	Game         *string
	Map          *string
	Mode         *models.GameMode
	TotalSlots   *int
	Fee          *int
	PrizePool    *int
	Prize1       *int
	Prize2       *int
	Prize3       *int
	RoomID       *string
	RoomPassword *string
	BannerKey    *string
	QRKey        *string
	StartTime    *time.Time
}

type WinnerNames struct {
	Winner1 *string
	Winner2 *string
	Winner3 *string
}

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, game *string) ([]*models.Tournament, error)
	Update(ctx context.Context, exec SQLExecutor, id int, params TournamentUpdateParams) error
	Delete(ctx context.Context, id int) error
	SetWinner(ctx context.Context, exec SQLExecutor, tournamentID, rank, userID int) error
	ListWinnerNames(ctx context.Context, tournamentIDs []int) (map[int]WinnerNames, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `id, title, game, map, mode, total_slots, fee, prize_pool, prize1, prize2, prize3,
		winner1_id, winner2_id, winner3_id, room_id, room_password, banner_key, qr_key, start_time, created_at`

func scanTournament(rowScanner interface {
	Scan(dest ...interface{}) error
}, t *models.Tournament) error {
	return rowScanner.Scan(
		&t.ID, &t.Title, &t.Game, &t.Map, &t.Mode, &t.TotalSlots, &t.Fee, &t.PrizePool,
		&t.Prize1, &t.Prize2, &t.Prize3,
		&t.Winner1ID, &t.Winner2ID, &t.Winner3ID,
		&t.RoomID, &t.RoomPassword, &t.BannerKey, &t.QRKey, &t.StartTime, &t.CreatedAt,
	)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournaments (title, game, map, mode, total_slots, fee, prize_pool, prize1, prize2, prize3,
			room_id, room_password, banner_key, qr_key, start_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		t.Title, t.Game, t.Map, t.Mode, t.TotalSlots, t.Fee, t.PrizePool,
		t.Prize1, t.Prize2, t.Prize3,
		t.RoomID, t.RoomPassword, t.BannerKey, t.QRKey, t.StartTime,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	if err := scanTournament(r.db.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, game *string) ([]*models.Tournament, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + tournamentColumns + ` FROM tournaments`)
	args := []interface{}{}
	if game != nil {
		queryBuilder.WriteString(` WHERE game = $1`)
		args = append(args, *game)
	}
	queryBuilder.WriteString(` ORDER BY start_time ASC`)

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := scanTournament(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, exec SQLExecutor, id int, params TournamentUpdateParams) error {
	executor := r.getExecutor(exec)

	setClauses := make([]string, 0, 15)
	args := make([]interface{}, 0, 16)
	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Game != nil {
		add("game", *params.Game)
	}
	if params.Map != nil {
		add("map", *params.Map)
	}
	if params.Mode != nil {
		add("mode", *params.Mode)
	}
	if params.TotalSlots != nil {
		add("total_slots", *params.TotalSlots)
	}
	if params.Fee != nil {
		add("fee", *params.Fee)
	}
	if params.PrizePool != nil {
		add("prize_pool", *params.PrizePool)
	}
	if params.Prize1 != nil {
		add("prize1", *params.Prize1)
	}
	if params.Prize2 != nil {
		add("prize2", *params.Prize2)
	}
	if params.Prize3 != nil {
		add("prize3", *params.Prize3)
	}
	if params.RoomID != nil {
		add("room_id", *params.RoomID)
	}
	if params.RoomPassword != nil {
		add("room_password", *params.RoomPassword)
	}
	if params.BannerKey != nil {
		add("banner_key", *params.BannerKey)
	}
	if params.QRKey != nil {
		add("qr_key", *params.QRKey)
	}
	if params.StartTime != nil {
		add("start_time", *params.StartTime)
	}

	if len(setClauses) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tournaments SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), len(args))

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	// Slots and registrations go with it via ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SetWinner(ctx context.Context, exec SQLExecutor, tournamentID, rank, userID int) error {
	executor := r.getExecutor(exec)

	var column string
	switch rank {
	case 1:
		column = "winner1_id"
	case 2:
		column = "winner2_id"
	case 3:
		column = "winner3_id"
	default:
		return fmt.Errorf("invalid winner rank %d", rank)
	}

	query := fmt.Sprintf(`UPDATE tournaments SET %s = $1 WHERE id = $2`, column)
	result, err := executor.ExecContext(ctx, query, userID, tournamentID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentWinnerInvalid
		}
		return fmt.Errorf("failed to set winner rank %d on tournament %d: %w", rank, tournamentID, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) ListWinnerNames(ctx context.Context, tournamentIDs []int) (map[int]WinnerNames, error) {
	if len(tournamentIDs) == 0 {
		return map[int]WinnerNames{}, nil
	}

	query := `
		SELECT t.id, u1.username, u2.username, u3.username
		FROM tournaments t
		LEFT JOIN users u1 ON u1.id = t.winner1_id
		LEFT JOIN users u2 ON u2.id = t.winner2_id
		LEFT JOIN users u3 ON u3.id = t.winner3_id
		WHERE t.id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(tournamentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list winner names: %w", err)
	}
	defer rows.Close()

	winners := make(map[int]WinnerNames)
	for rows.Next() {
		var id int
		var w WinnerNames
		if err := rows.Scan(&id, &w.Winner1, &w.Winner2, &w.Winner3); err != nil {
			return nil, fmt.Errorf("failed to scan winner names row: %w", err)
		}
		winners[id] = w
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating winner name rows: %w", err)
	}
	return winners, nil
}
