package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/m-kaif07/esport-tournament-website/models"
	"github.com/m-kaif07/esport-tournament-website/realtime"
	"github.com/m-kaif07/esport-tournament-website/repositories"
)

// uidPattern: numeric in-game UID, at least 4 digits.
var uidPattern = regexp.MustCompile(`^\d{4,}$`)

// slotsFillingThreshold: remaining-slot count at or below which a
// "register fast" notice is pushed to the tournament room.
const slotsFillingThreshold = 5

type RegisterInput struct {
	Participants []models.Participant `json:"participants"`
	Phone        *string              `json:"phone,omitempty"`
	UTR          *string              `json:"utr,omitempty"`
}

type RegisterResult struct {
	RegistrationID int  `json:"registration_id"`
	SlotNumber     int  `json:"slot_number"`
	AutoConfirmed  bool `json:"auto_confirmed"`
}

// RegistrationService owns the reservation, approval and reject workflows.
// Every workflow mutates the slot and the registration in one atomic unit
// and publishes room events only after that unit commits.
type RegistrationService struct {
	txr            repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	slotRepo       repositories.SlotRepository
	regRepo        repositories.RegistrationRepository
	userRepo       repositories.UserRepository
	hub            realtime.Publisher
	push           PushSender
	logger         *slog.Logger
}

func NewRegistrationService(
	txr repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	slotRepo repositories.SlotRepository,
	regRepo repositories.RegistrationRepository,
	userRepo repositories.UserRepository,
	hub realtime.Publisher,
	push PushSender,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		txr:            txr,
		tournamentRepo: tournamentRepo,
		slotRepo:       slotRepo,
		regRepo:        regRepo,
		userRepo:       userRepo,
		hub:            hub,
		push:           push,
		logger:         logger,
	}
}

// Register reserves the lowest-numbered empty slot for the user's team and
// creates the registration row in the same transaction. Free tournaments
// are confirmed immediately; paid ones stay reserved until an admin
// approves the payment.
func (s *RegistrationService) Register(ctx context.Context, userID, tournamentID int, input RegisterInput) (*RegisterResult, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(err, "register", tournamentID, userID)
	}

	if !tournament.RegistrationOpen(time.Now()) {
		return nil, ErrRegistrationClosed
	}

	teamSize := TeamSizeForMode(tournament.Mode)
	if err := validateParticipants(input.Participants, teamSize); err != nil {
		return nil, err
	}

	if _, err := s.regRepo.FindByUserAndTournament(ctx, userID, tournamentID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repositories.ErrRegistrationNotFound) {
		return nil, s.internal(err, "register", tournamentID, userID)
	}

	// Advisory aggregate check; the conditional slot update below is the
	// authoritative gate.
	filledPlayers, err := s.regRepo.SumTeamSizes(ctx, nil, tournamentID)
	if err != nil {
		return nil, s.internal(err, "register", tournamentID, userID)
	}
	if filledPlayers+teamSize > PlayerCapacity(tournament.TotalSlots, teamSize) {
		return nil, ErrTournamentFull
	}

	var occupants [4]*string
	for i := 0; i < len(input.Participants) && i < 4; i++ {
		name := input.Participants[i].Name
		occupants[i] = &name
	}

	autoConfirmed := tournament.Fee <= 0
	reg := &models.Registration{
		UserID:       userID,
		TournamentID: tournamentID,
		TeamSize:     teamSize,
		Roster:       input.Participants,
		Phone:        input.Phone,
		UTR:          normalizeUTR(input.UTR),
	}

	var slotNumber int
	txErr := s.txr.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		now := time.Now()

		slotNumber, err = s.slotRepo.FindFirstEmpty(ctx, exec, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrNoEmptySlot) {
				return ErrNoSlotsAvailable
			}
			return err
		}

		if err := s.regRepo.Create(ctx, exec, reg); err != nil {
			switch {
			case errors.Is(err, repositories.ErrRegistrationConflict):
				return ErrAlreadyRegistered
			case errors.Is(err, repositories.ErrPaymentRefConflict):
				return ErrPaymentRefInUse
			}
			return err
		}

		if err := s.slotRepo.Reserve(ctx, exec, tournamentID, slotNumber, occupants, now); err != nil {
			if errors.Is(err, repositories.ErrSlotTaken) {
				return ErrSlotJustTaken
			}
			return err
		}

		if err := s.regRepo.SetSlotNumber(ctx, exec, reg.ID, slotNumber); err != nil {
			return err
		}

		if autoConfirmed {
			if err := s.regRepo.MarkPaid(ctx, exec, reg.ID); err != nil {
				return err
			}
			if err := s.slotRepo.Confirm(ctx, exec, tournamentID, slotNumber, now); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if isDomainError(txErr) {
			return nil, txErr
		}
		return nil, s.internal(txErr, "register", tournamentID, userID)
	}

	s.publishSlotUpdate(ctx, tournamentID, slotNumber)
	s.notifyIfFillingFast(ctx, tournament)

	return &RegisterResult{
		RegistrationID: reg.ID,
		SlotNumber:     slotNumber,
		AutoConfirmed:  autoConfirmed,
	}, nil
}

// Approve marks a registration's payment as received and confirms its
// reserved slot.
func (s *RegistrationService) Approve(ctx context.Context, registrationID int) error {
	reg, err := s.regRepo.FindByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return s.internal(err, "approve", 0, 0)
	}
	if reg.SlotNumber == nil {
		return ErrNoSlotToConfirm
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, reg.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return s.internal(err, "approve", reg.TournamentID, reg.UserID)
	}

	txErr := s.txr.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.regRepo.MarkPaid(ctx, exec, registrationID); err != nil {
			return err
		}
		return s.slotRepo.Confirm(ctx, exec, reg.TournamentID, *reg.SlotNumber, time.Now())
	})
	if txErr != nil {
		return s.internal(txErr, "approve", reg.TournamentID, reg.UserID)
	}

	s.publishSlotUpdate(ctx, reg.TournamentID, *reg.SlotNumber)
	s.hub.Publish(realtime.UserRoom(reg.UserID), realtime.EventPaymentConfirmed, map[string]interface{}{
		"tournament_id":   reg.TournamentID,
		"title":           tournament.Title,
		"registration_id": registrationID,
	})

	if user, err := s.userRepo.GetByID(ctx, reg.UserID); err == nil && user.FCMToken != nil {
		s.push.Send(ctx, []string{*user.FCMToken},
			"Payment Confirmed!",
			fmt.Sprintf("Your payment for tournament %q has been confirmed.", tournament.Title))
	}
	return nil
}

// Reject frees the registration's slot (reserved or already confirmed) and
// deletes the registration.
func (s *RegistrationService) Reject(ctx context.Context, registrationID int) error {
	reg, err := s.regRepo.FindByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return s.internal(err, "reject", 0, 0)
	}

	txErr := s.txr.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if reg.SlotNumber != nil {
			if err := s.slotRepo.Release(ctx, exec, reg.TournamentID, *reg.SlotNumber, time.Now()); err != nil {
				return err
			}
		}
		return s.regRepo.Delete(ctx, exec, registrationID)
	})
	if txErr != nil {
		return s.internal(txErr, "reject", reg.TournamentID, reg.UserID)
	}

	if reg.SlotNumber != nil {
		s.publishSlotUpdate(ctx, reg.TournamentID, *reg.SlotNumber)
	}
	return nil
}

// ListByTournament returns all registrations of a tournament with user
// details, for the admin review screen.
func (s *RegistrationService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Registration, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, s.internal(err, "list registrations", tournamentID, 0)
	}
	return s.regRepo.ListByTournament(ctx, tournamentID)
}

// ListByUser returns the caller's registrations with tournament details.
func (s *RegistrationService) ListByUser(ctx context.Context, userID int) ([]*models.Registration, error) {
	return s.regRepo.ListByUser(ctx, userID)
}

func (s *RegistrationService) publishSlotUpdate(ctx context.Context, tournamentID, slotNumber int) {
	slot, err := s.slotRepo.Get(ctx, tournamentID, slotNumber)
	if err != nil {
		s.logger.Error("failed to load slot for event",
			slog.Int("tournament_id", tournamentID),
			slog.Int("slot_number", slotNumber),
			slog.Any("error", err))
		return
	}
	s.hub.Publish(realtime.TournamentRoom(tournamentID), realtime.EventSlotUpdate, map[string]interface{}{
		"tournament_id": tournamentID,
		"slot":          slot,
	})
}

func (s *RegistrationService) notifyIfFillingFast(ctx context.Context, tournament *models.Tournament) {
	filled, err := s.slotRepo.CountFilled(ctx, nil, tournament.ID)
	if err != nil {
		s.logger.Error("failed to count filled slots",
			slog.Int("tournament_id", tournament.ID),
			slog.Any("error", err))
		return
	}
	remaining := tournament.TotalSlots - filled
	if remaining > 0 && remaining <= slotsFillingThreshold {
		s.hub.Publish(realtime.TournamentRoom(tournament.ID), realtime.EventNotification, map[string]interface{}{
			"type":    "slots_filling",
			"message": fmt.Sprintf("Register Fast! Only %d slots left.", remaining),
		})
	}
}

func (s *RegistrationService) internal(err error, op string, tournamentID, userID int) error {
	s.logger.Error("registration workflow failed",
		slog.String("op", op),
		slog.Int("tournament_id", tournamentID),
		slog.Int("user_id", userID),
		slog.Any("error", err))
	return fmt.Errorf("%s: %w", op, err)
}

func validateParticipants(participants []models.Participant, teamSize int) error {
	if len(participants) != teamSize {
		return fmt.Errorf("%w: need exactly %d", ErrTeamSizeMismatch, teamSize)
	}
	for _, p := range participants {
		if strings.TrimSpace(p.Name) == "" || !uidPattern.MatchString(p.UID) {
			return ErrInvalidParticipant
		}
	}
	return nil
}

func normalizeUTR(utr *string) *string {
	if utr == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*utr)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isDomainError(err error) bool {
	for _, domainErr := range []error{
		ErrNoSlotsAvailable, ErrAlreadyRegistered, ErrPaymentRefInUse, ErrSlotJustTaken,
	} {
		if errors.Is(err, domainErr) {
			return true
		}
	}
	return false
}
