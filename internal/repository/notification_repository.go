package repository

import (
	"context"
	"fmt"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements the NotificationRepository interface using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Create inserts a notification.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, link, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query, n.ID, n.UserID, n.Type, n.Title, n.Message, n.Link, n.Read, n.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", n.UserID.String()).
			Str("type", string(n.Type)).
			Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, int, error) {
	where := "WHERE user_id = $1"
	if unreadOnly {
		where += " AND NOT read"
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM notifications %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count notifications")
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, type, title, message, link, read, read_at, created_at
		FROM notifications
		%s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, where)

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query notifications")
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link, &n.Read, &n.ReadAt, &n.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan notification row")
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating notification rows")
		return nil, 0, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read", userID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to count unread notifications")
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `
		UPDATE notifications
		SET read = true, read_at = COALESCE(read_at, now())
		WHERE user_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		r.logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to mark notification read")
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkAllRead marks all of a user's notifications read.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read = true, read_at = now()
		WHERE user_id = $1 AND NOT read
	`

	_, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to mark notifications read")
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
