package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m-kaif07/esport-tournament-website/models"
	"github.com/m-kaif07/esport-tournament-website/realtime"
	"github.com/m-kaif07/esport-tournament-website/repositories"
	"github.com/m-kaif07/esport-tournament-website/storage"
)

// roomRevealWindow: registered users see the room credentials starting this
// long before the tournament starts.
const roomRevealWindow = 5 * time.Minute

type UploadFile struct {
	Reader      io.Reader
	ContentType string
}

type CreateTournamentInput struct {
	Title     string
	Game      string
	Map       *string
	Mode      models.GameMode
	Fee       int
	PrizePool int
	Prize1    int
	Prize2    int
	Prize3    int
	StartTime time.Time
	Banner    *UploadFile
	QR        *UploadFile
}

type UpdateTournamentInput struct {
	Title        *string
	Game         *string
	Map          *string
	Mode         *models.GameMode
	Fee          *int
	PrizePool    *int
	Prize1       *int
	Prize2       *int
	Prize3       *int
	RoomID       *string
	RoomPassword *string
	StartTime    *time.Time
	Banner       *UploadFile
	QR           *UploadFile
}

// TournamentSummary is a tournament plus the derived fill statistics shown
// in listings.
type TournamentSummary struct {
	*models.Tournament
	FilledPlayers  int     `json:"filled_players"`
	SlotsFilled    int     `json:"slots_filled"`
	PlayerCapacity int     `json:"player_capacity"`
	Winner1Name    *string `json:"winner1_name"`
	Winner2Name    *string `json:"winner2_name"`
	Winner3Name    *string `json:"winner3_name"`
}

// TournamentDetail adds the caller-specific view: whether they are
// registered and, inside the reveal window, the room credentials.
type TournamentDetail struct {
	TournamentSummary
	IsRegistered bool    `json:"is_registered"`
	ShowRoom     bool    `json:"show_room"`
	RoomID       *string `json:"room_id"`
	RoomPassword *string `json:"room_password"`
}

type AssignWinnerResult struct {
	WinnerID int `json:"winner_id"`
	Rank     int `json:"rank"`
	Prize    int `json:"prize"`
}

type TournamentService struct {
	txr            repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	slotRepo       repositories.SlotRepository
	regRepo        repositories.RegistrationRepository
	userRepo       repositories.UserRepository
	earningRepo    repositories.EarningRepository
	uploader       storage.FileUploader // nil when no object storage is configured
	hub            realtime.Publisher
	push           PushSender
	logger         *slog.Logger
}

func NewTournamentService(
	txr repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	slotRepo repositories.SlotRepository,
	regRepo repositories.RegistrationRepository,
	userRepo repositories.UserRepository,
	earningRepo repositories.EarningRepository,
	uploader storage.FileUploader,
	hub realtime.Publisher,
	push PushSender,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		txr:            txr,
		tournamentRepo: tournamentRepo,
		slotRepo:       slotRepo,
		regRepo:        regRepo,
		userRepo:       userRepo,
		earningRepo:    earningRepo,
		uploader:       uploader,
		hub:            hub,
		push:           push,
		logger:         logger,
	}
}

// Create inserts the tournament and seeds its empty slots 1..totalSlots in
// one transaction, then announces it to all connected clients.
func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Title) == "" || input.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: title and start time are required", ErrValidationFailed)
	}
	if input.Fee < 0 {
		return nil, ErrTournamentInvalidFee
	}
	game := input.Game
	if game == "" {
		game = models.GameFreeFire
	}
	mode := input.Mode
	if mode == "" {
		mode = models.ModeSolo
	}

	t := &models.Tournament{
		Title:      input.Title,
		Game:       game,
		Map:        input.Map,
		Mode:       mode,
		TotalSlots: DefaultSlotCount(game, mode),
		Fee:        input.Fee,
		PrizePool:  input.PrizePool,
		Prize1:     input.Prize1,
		Prize2:     input.Prize2,
		Prize3:     input.Prize3,
		StartTime:  input.StartTime,
	}

	if input.Banner != nil {
		key, err := s.uploadImage(ctx, "banners", input.Banner)
		if err != nil {
			return nil, err
		}
		t.BannerKey = key
	}
	if input.QR != nil {
		key, err := s.uploadImage(ctx, "qr", input.QR)
		if err != nil {
			return nil, err
		}
		t.QRKey = key
	}

	txErr := s.txr.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.tournamentRepo.Create(ctx, exec, t); err != nil {
			return err
		}
		return s.slotRepo.CreateRange(ctx, exec, t.ID, 1, t.TotalSlots, time.Now())
	})
	if txErr != nil {
		return nil, s.internal(txErr, "create tournament", 0)
	}

	s.hub.BroadcastAll(realtime.EventNotification, map[string]interface{}{
		"type":    "new_tournament",
		"message": "New tournament added!",
	})
	if tokens, err := s.userRepo.ListFCMTokens(ctx); err == nil {
		s.push.Send(ctx, tokens, "New Tournament!",
			fmt.Sprintf("A new tournament %q has been added. Check it out!", t.Title))
	}

	s.populateImageURLs(t)
	return t, nil
}

// Update applies a partial update. A game or mode change recomputes the
// slot count and re-seeds the pool: extra empty slots are appended, or
// trailing slots are dropped when capacity shrinks.
func (s *TournamentService) Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	existing, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(err, "update tournament", id)
	}

	params := repositories.TournamentUpdateParams{
		Title:        input.Title,
		Game:         input.Game,
		Map:          input.Map,
		Mode:         input.Mode,
		Fee:          input.Fee,
		PrizePool:    input.PrizePool,
		Prize1:       input.Prize1,
		Prize2:       input.Prize2,
		Prize3:       input.Prize3,
		RoomID:       input.RoomID,
		RoomPassword: input.RoomPassword,
		StartTime:    input.StartTime,
	}
	if input.Fee != nil && *input.Fee < 0 {
		return nil, ErrTournamentInvalidFee
	}

	if input.Banner != nil {
		key, err := s.uploadImage(ctx, "banners", input.Banner)
		if err != nil {
			return nil, err
		}
		params.BannerKey = key
	}
	if input.QR != nil {
		key, err := s.uploadImage(ctx, "qr", input.QR)
		if err != nil {
			return nil, err
		}
		params.QRKey = key
	}

	var newTotal *int
	if input.Mode != nil || input.Game != nil {
		game := existing.Game
		if input.Game != nil {
			game = *input.Game
		}
		mode := existing.Mode
		if input.Mode != nil {
			mode = *input.Mode
		}
		total := DefaultSlotCount(game, mode)
		newTotal = &total
		params.TotalSlots = &total
	}

	txErr := s.txr.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.tournamentRepo.Update(ctx, exec, id, params); err != nil {
			return err
		}
		if newTotal == nil {
			return nil
		}
		have, err := s.slotRepo.CountByTournament(ctx, exec, id)
		if err != nil {
			return err
		}
		switch {
		case have < *newTotal:
			return s.slotRepo.CreateRange(ctx, exec, id, have+1, *newTotal, time.Now())
		case have > *newTotal:
			return s.slotRepo.DeleteAbove(ctx, exec, id, *newTotal)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(txErr, "update tournament", id)
	}

	if input.RoomID != nil || input.RoomPassword != nil {
		s.hub.Publish(realtime.TournamentRoom(id), realtime.EventNotification, map[string]interface{}{
			"type":    "room_updated",
			"message": "Room ID and Password have been updated for this tournament.",
		})
	}

	updated, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.internal(err, "update tournament", id)
	}
	s.populateImageURLs(updated)
	return updated, nil
}

func (s *TournamentService) Delete(ctx context.Context, id int) error {
	err := s.tournamentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return s.internal(err, "delete tournament", id)
	}
	return nil
}

// List returns all tournaments with fill statistics and winner names,
// optionally filtered by game. Rows and the fill aggregate are fetched
// concurrently.
func (s *TournamentService) List(ctx context.Context, game *string) ([]*TournamentSummary, error) {
	var (
		tournaments []*models.Tournament
		fillCounts  map[int]int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournaments, err = s.tournamentRepo.List(gCtx, game)
		return err
	})
	g.Go(func() error {
		var err error
		fillCounts, err = s.regRepo.SumTeamSizesByTournament(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.internal(err, "list tournaments", 0)
	}

	ids := make([]int, len(tournaments))
	for i, t := range tournaments {
		ids[i] = t.ID
	}
	winners, err := s.tournamentRepo.ListWinnerNames(ctx, ids)
	if err != nil {
		return nil, s.internal(err, "list tournaments", 0)
	}

	summaries := make([]*TournamentSummary, 0, len(tournaments))
	for _, t := range tournaments {
		s.populateImageURLs(t)
		summaries = append(summaries, s.summarize(t, fillCounts[t.ID], winners[t.ID]))
	}
	return summaries, nil
}

// GetByID returns the detailed view for one user. Room credentials are
// included only when the user is registered and the reveal window has
// opened.
func (s *TournamentService) GetByID(ctx context.Context, id, currentUserID int) (*TournamentDetail, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(err, "get tournament", id)
	}

	filledPlayers, err := s.regRepo.SumTeamSizes(ctx, nil, id)
	if err != nil {
		return nil, s.internal(err, "get tournament", id)
	}

	isRegistered := false
	if _, err := s.regRepo.FindByUserAndTournament(ctx, currentUserID, id); err == nil {
		isRegistered = true
	} else if !errors.Is(err, repositories.ErrRegistrationNotFound) {
		return nil, s.internal(err, "get tournament", id)
	}

	winners, err := s.tournamentRepo.ListWinnerNames(ctx, []int{id})
	if err != nil {
		return nil, s.internal(err, "get tournament", id)
	}

	s.populateImageURLs(t)
	detail := &TournamentDetail{
		TournamentSummary: *s.summarize(t, filledPlayers, winners[id]),
		IsRegistered:      isRegistered,
	}
	if isRegistered && !time.Now().Before(t.StartTime.Add(-roomRevealWindow)) {
		detail.ShowRoom = true
		detail.RoomID = t.RoomID
		detail.RoomPassword = t.RoomPassword
	}
	return detail, nil
}

// Slots returns the public slot snapshot of a tournament.
func (s *TournamentService) Slots(ctx context.Context, tournamentID int) ([]*models.Slot, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(err, "list slots", tournamentID)
	}
	return s.slotRepo.ListByTournament(ctx, tournamentID)
}

// OverwriteSlot lets an admin force a slot's status and occupant names.
// Non-empty statuses require exactly teamSize names.
func (s *TournamentService) OverwriteSlot(ctx context.Context, tournamentID, slotNumber int, status models.SlotStatus, participants []string) (*models.Slot, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(err, "overwrite slot", tournamentID)
	}

	switch status {
	case models.SlotEmpty, models.SlotReserved, models.SlotConfirmed:
	default:
		status = models.SlotEmpty
	}

	var occupants [4]*string
	if status != models.SlotEmpty {
		teamSize := TeamSizeForMode(t.Mode)
		nonEmpty := 0
		for i := 0; i < len(participants) && i < 4; i++ {
			name := strings.TrimSpace(participants[i])
			if name != "" {
				occupants[i] = &name
				nonEmpty++
			}
		}
		if nonEmpty != teamSize {
			return nil, fmt.Errorf("%w: need exactly %d", ErrTeamSizeMismatch, teamSize)
		}
	}

	if err := s.slotRepo.Overwrite(ctx, nil, tournamentID, slotNumber, status, occupants, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, s.internal(err, "overwrite slot", tournamentID)
	}

	slot, err := s.slotRepo.Get(ctx, tournamentID, slotNumber)
	if err != nil {
		return nil, s.internal(err, "overwrite slot", tournamentID)
	}
	s.hub.Publish(realtime.TournamentRoom(tournamentID), realtime.EventSlotUpdate, map[string]interface{}{
		"tournament_id": tournamentID,
		"slot":          slot,
	})
	return slot, nil
}

// AssignWinner records a rank 1-3 winner, credits the prize once, and
// notifies the winner. Re-assigning the same user to the same rank is a
// no-op; assigning a different user to a taken rank is a conflict.
func (s *TournamentService) AssignWinner(ctx context.Context, tournamentID, userID, rank int) (*AssignWinnerResult, error) {
	if rank < 1 || rank > 3 {
		return nil, ErrInvalidWinnerRank
	}

	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(err, "assign winner", tournamentID)
	}

	if _, err := s.regRepo.FindByUserAndTournament(ctx, userID, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrWinnerNotRegistered
		}
		return nil, s.internal(err, "assign winner", tournamentID)
	}

	existingWinner := [3]*int{t.Winner1ID, t.Winner2ID, t.Winner3ID}[rank-1]
	if existingWinner != nil && *existingWinner != userID {
		return nil, ErrWinnerRankTaken
	}

	prize := [3]int{t.Prize1, t.Prize2, t.Prize3}[rank-1]
	rankLabel := [3]string{"1st", "2nd", "3rd"}[rank-1]
	earningDesc := fmt.Sprintf("Tournament prize (%s): %s", rankLabel, t.Title)

	txErr := s.txr.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.tournamentRepo.SetWinner(ctx, exec, tournamentID, rank, userID); err != nil {
			return err
		}
		exists, err := s.earningRepo.ExistsByUserAndDescription(ctx, exec, userID, earningDesc)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return s.earningRepo.Create(ctx, exec, &models.Earning{
			UserID:      userID,
			Amount:      prize,
			Description: earningDesc,
		})
	})
	if txErr != nil {
		return nil, s.internal(txErr, "assign winner", tournamentID)
	}

	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		if user.FCMToken != nil {
			s.push.Send(ctx, []string{*user.FCMToken},
				"Congratulations, You Won!",
				fmt.Sprintf("Dear %s, you secured %s place in %q. A prize of %d has been credited.",
					user.Username, rankLabel, t.Title, prize))
		}
		s.hub.Publish(realtime.TournamentRoom(tournamentID), realtime.EventTournamentUpdated, map[string]interface{}{
			"id":          tournamentID,
			"rank":        rank,
			"winner_name": user.Username,
			"start_time":  t.StartTime,
		})
	}

	return &AssignWinnerResult{WinnerID: userID, Rank: rank, Prize: prize}, nil
}

func (s *TournamentService) summarize(t *models.Tournament, filledPlayers int, winners repositories.WinnerNames) *TournamentSummary {
	teamSize := TeamSizeForMode(t.Mode)
	return &TournamentSummary{
		Tournament:     t,
		FilledPlayers:  filledPlayers,
		SlotsFilled:    SlotsFilled(filledPlayers, teamSize),
		PlayerCapacity: PlayerCapacity(t.TotalSlots, teamSize),
		Winner1Name:    winners.Winner1,
		Winner2Name:    winners.Winner2,
		Winner3Name:    winners.Winner3,
	}
}

func (s *TournamentService) uploadImage(ctx context.Context, prefix string, file *UploadFile) (*string, error) {
	if s.uploader == nil {
		s.logger.Warn("image upload skipped, no object storage configured", slog.String("prefix", prefix))
		return nil, nil
	}
	key := fmt.Sprintf("tournaments/%s/%d", prefix, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, file.ContentType, file.Reader)
	if err != nil {
		return nil, s.internal(err, "upload image", 0)
	}
	return &result.Key, nil
}

func (s *TournamentService) populateImageURLs(t *models.Tournament) {
	if s.uploader == nil {
		return
	}
	if t.BannerKey != nil && *t.BannerKey != "" {
		url := s.uploader.GetPublicURL(*t.BannerKey)
		t.BannerURL = &url
	}
	if t.QRKey != nil && *t.QRKey != "" {
		url := s.uploader.GetPublicURL(*t.QRKey)
		t.QRURL = &url
	}
}

func (s *TournamentService) internal(err error, op string, tournamentID int) error {
	s.logger.Error("tournament operation failed",
		slog.String("op", op),
		slog.Int("tournament_id", tournamentID),
		slog.Any("error", err))
	return fmt.Errorf("%s: %w", op, err)
}
