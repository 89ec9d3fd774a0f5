package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m-kaif07/esport-tournament-website/models"
	"github.com/m-kaif07/esport-tournament-website/repositories"
)

type UserService struct {
	userRepo    repositories.UserRepository
	earningRepo repositories.EarningRepository
	logger      *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, earningRepo repositories.EarningRepository, logger *slog.Logger) *UserService {
	return &UserService{userRepo: userRepo, earningRepo: earningRepo, logger: logger}
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.internal(err, "get user", id)
	}
	return user, nil
}

// SetFCMToken saves the device token used for push notifications.
func (s *UserService) SetFCMToken(ctx context.Context, userID int, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: fcm token is required", ErrValidationFailed)
	}
	if err := s.userRepo.SetFCMToken(ctx, userID, token); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return s.internal(err, "set fcm token", userID)
	}
	return nil
}

func (s *UserService) ListEarnings(ctx context.Context, userID int) ([]*models.Earning, error) {
	earnings, err := s.earningRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.internal(err, "list earnings", userID)
	}
	return earnings, nil
}

func (s *UserService) internal(err error, op string, userID int) error {
	s.logger.Error("user operation failed",
		slog.String("op", op),
		slog.Int("user_id", userID),
		slog.Any("error", err))
	return fmt.Errorf("%s: %w", op, err)
}
