package repository

import (
	"context"
	"fmt"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const userColumns = `id, username, email, role, first_name, last_name, phone,
	street, city, state, zip, country, created_at`

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Role,
		&u.Profile.FirstName, &u.Profile.LastName, &u.Profile.Phone,
		&u.Profile.Address.Street, &u.Profile.Address.City, &u.Profile.Address.State,
		&u.Profile.Address.Zip, &u.Profile.Address.Country,
		&u.CreatedAt,
	)
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	var u model.User
	err := scanUser(r.pool.QueryRow(ctx, query, id), &u)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetByToken resolves a bearer token against the sessions table. Expired
// sessions are ignored; the external auth system prunes them.
func (r *userRepository) GetByToken(ctx context.Context, token string) (*model.AuthUser, error) {
	query := `
		SELECT u.id, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 AND (s.expires_at IS NULL OR s.expires_at > now())
	`

	var au model.AuthUser
	err := r.pool.QueryRow(ctx, query, token).Scan(&au.ID, &au.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to resolve session token")
		return nil, fmt.Errorf("failed to resolve session token: %w", err)
	}

	return &au, nil
}

// List retrieves users with pagination, newest first.
func (r *userRepository) List(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count users")
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, userColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

// UpdateProfile rewrites a user's profile fields.
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4,
			street = $5, city = $6, state = $7, zip = $8, country = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		id, profile.FirstName, profile.LastName, profile.Phone,
		profile.Address.Street, profile.Address.City, profile.Address.State,
		profile.Address.Zip, profile.Address.Country,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update profile")
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// AppendOrderHistory records an order summary on the user within the
// order-placement transaction.
func (r *userRepository) AppendOrderHistory(ctx context.Context, tx pgx.Tx, entry model.OrderHistoryEntry) error {
	query := `
		INSERT INTO user_order_history (user_id, order_id, ordered_at, total_amount)
		VALUES ($1, $2, $3, $4)
	`

	_, err := tx.Exec(ctx, query, entry.UserID, entry.OrderID, entry.OrderedAt, entry.TotalAmount)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", entry.UserID.String()).
			Str("order_id", entry.OrderID.String()).
			Msg("failed to append order history")
		return fmt.Errorf("failed to append order history: %w", err)
	}

	return nil
}

// GetOrderHistory retrieves a user's order summaries, newest first.
func (r *userRepository) GetOrderHistory(ctx context.Context, userID uuid.UUID) ([]model.OrderHistoryEntry, error) {
	query := `
		SELECT user_id, order_id, ordered_at, total_amount
		FROM user_order_history
		WHERE user_id = $1
		ORDER BY ordered_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query order history")
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}
	defer rows.Close()

	var entries []model.OrderHistoryEntry
	for rows.Next() {
		var e model.OrderHistoryEntry
		if err := rows.Scan(&e.UserID, &e.OrderID, &e.OrderedAt, &e.TotalAmount); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order history row")
			return nil, fmt.Errorf("failed to scan order history: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order history rows")
		return nil, fmt.Errorf("error iterating order history: %w", err)
	}

	return entries, nil
}
