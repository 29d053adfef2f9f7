package service

import (
	"context"
	"fmt"

	"furniturehub/internal/model"
	"furniturehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notificationService implements NotificationService.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger.With().Str("service", "notification").Logger(),
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read. Marking an already-read
// notification succeeds without changing its read timestamp.
func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.notificationRepo.MarkRead(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !ok {
		return model.ErrNotifNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
