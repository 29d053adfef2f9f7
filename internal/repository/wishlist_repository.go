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

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// GetItems retrieves wishlist entries with products resolved. The inner
// join drops entries whose product no longer exists.
func (r *wishlistRepository) GetItems(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	query := fmt.Sprintf(`
		SELECT w.id, w.user_id, w.product_id, w.added_at, %s
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC
	`, prefixColumns("p", productColumns))

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var item model.WishlistItem
		var p model.Product
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.AddedAt,
			&p.ID, &p.SKU, &p.Name, &p.Brand, &p.CategoryID, &p.Price, &p.DiscountPrice,
			&p.Description, &p.Material, &p.Color, &p.Stock, &p.Status, &p.AverageRating,
			&p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist row")
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		item.Product = &p
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating wishlist rows")
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}

	return items, nil
}

// GetItem retrieves a single wishlist entry scoped to its owner.
func (r *wishlistRepository) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_id, added_at
		FROM wishlist_items
		WHERE user_id = $1 AND id = $2
	`

	var item model.WishlistItem
	err := r.pool.QueryRow(ctx, query, userID, itemID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.AddedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to query wishlist item")
		return nil, fmt.Errorf("failed to query wishlist item: %w", err)
	}

	return &item, nil
}

// FindByProduct retrieves the wishlist entry for a product, if any.
func (r *wishlistRepository) FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*model.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_id, added_at
		FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2
	`

	var item model.WishlistItem
	err := r.pool.QueryRow(ctx, query, userID, productID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.AddedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to find wishlist item")
		return nil, fmt.Errorf("failed to find wishlist item: %w", err)
	}

	return &item, nil
}

// Insert adds a wishlist entry.
func (r *wishlistRepository) Insert(ctx context.Context, item *model.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, added_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.UserID, item.ProductID, item.AddedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", item.UserID.String()).
			Str("product_id", item.ProductID.String()).
			Msg("failed to insert wishlist item")
		return fmt.Errorf("failed to insert wishlist item: %w", err)
	}

	return nil
}

// Remove deletes a wishlist entry.
func (r *wishlistRepository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM wishlist_items WHERE user_id = $1 AND id = $2", userID, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to remove wishlist item")
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

// Clear deletes all of a user's wishlist entries.
func (r *wishlistRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM wishlist_items WHERE user_id = $1", userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear wishlist")
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}
