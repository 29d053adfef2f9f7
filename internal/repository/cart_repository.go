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

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetItems retrieves all cart lines for a user.
func (r *cartRepository) GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// GetItem retrieves a single cart line scoped to its owner.
func (r *cartRepository) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity
		FROM cart_items
		WHERE user_id = $1 AND id = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, userID, itemID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// FindByProduct retrieves the cart line for a product, if any.
func (r *cartRepository) FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, userID, productID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to find cart item")
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}

	return &item, nil
}

// Insert adds a new cart line.
func (r *cartRepository) Insert(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.UserID, item.ProductID, item.Quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", item.UserID.String()).
			Str("product_id", item.ProductID.String()).
			Msg("failed to insert cart item")
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

// SetQuantity updates a cart line's quantity.
func (r *cartRepository) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`

	tag, err := r.pool.Exec(ctx, query, userID, itemID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to update cart item")
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// Remove deletes a cart line. Removing an absent line is not an error.
func (r *cartRepository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM cart_items WHERE user_id = $1 AND id = $2", userID, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes all of a user's cart lines.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearTx clears the cart within an order-placement transaction.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart in transaction")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
