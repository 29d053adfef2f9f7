package service

import (
	"context"
	"fmt"

	"furniturehub/internal/model"
	"furniturehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if err := s.userRepo.UpdateProfile(ctx, id, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Profile = profile

	s.logger.Info().Str("user_id", id.String()).Msg("profile updated")
	return user, nil
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) OrderHistory(ctx context.Context, userID uuid.UUID) ([]model.OrderHistoryEntry, error) {
	entries, err := s.userRepo.GetOrderHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}
	return entries, nil
}
