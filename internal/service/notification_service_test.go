package service

import (
	"context"
	"testing"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	id := uuid.New()

	repo := new(MockNotificationRepository)
	repo.On("MarkRead", ctx, userID, id).Return(false, nil)

	svc := NewNotificationService(repo, zerolog.Nop())

	err := svc.MarkRead(ctx, userID, id)
	assert.ErrorIs(t, err, model.ErrNotifNotFound)
}

func TestNotificationService_MarkRead_Idempotent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	id := uuid.New()

	repo := new(MockNotificationRepository)
	repo.On("MarkRead", ctx, userID, id).Return(true, nil)

	svc := NewNotificationService(repo, zerolog.Nop())

	require.NoError(t, svc.MarkRead(ctx, userID, id))
	// Re-marking an already-read notification still succeeds.
	require.NoError(t, svc.MarkRead(ctx, userID, id))
}

func TestNotificationService_List_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockNotificationRepository)
	repo.On("ListByUser", ctx, userID, false, 20, 0).Return([]model.Notification{}, 0, nil)

	svc := NewNotificationService(repo, zerolog.Nop())

	_, _, err := svc.List(ctx, userID, false, 0, -5)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNotificationService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(MockNotificationRepository)
	repo.On("CountUnread", ctx, userID).Return(3, nil)

	svc := NewNotificationService(repo, zerolog.Nop())

	count, err := svc.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
