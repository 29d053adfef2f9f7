package repository

import (
	"context"
	"fmt"
	"strings"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, sku, name, brand, category_id, price, discount_price, description,
	material, color, stock, status, average_rating, is_featured, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Brand, &p.CategoryID, &p.Price, &p.DiscountPrice,
		&p.Description, &p.Material, &p.Color, &p.Stock, &p.Status, &p.AverageRating,
		&p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
}

// List retrieves products matching the filter with the total matching count.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	conditions := []string{}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Featured {
		conditions = append(conditions, "is_featured")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ANY($1)", productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, sku, name, brand, category_id, price, discount_price,
			description, material, color, stock, status, average_rating, is_featured,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Brand, p.CategoryID, p.Price, p.DiscountPrice,
		p.Description, p.Material, p.Color, p.Stock, p.Status, p.AverageRating,
		p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("sku", p.SKU).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID.String()).Str("sku", p.SKU).Msg("product created")
	return nil
}

// Update rewrites a product's mutable fields.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, brand = $4, category_id = $5, price = $6,
			discount_price = $7, description = $8, material = $9, color = $10,
			stock = $11, status = $12, is_featured = $13, updated_at = $14
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Brand, p.CategoryID, p.Price, p.DiscountPrice,
		p.Description, p.Material, p.Color, p.Stock, p.Status, p.IsFeatured, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// DecrementStock atomically decrements stock, refusing to go below zero.
// Status is recomputed from the resulting stock in the same statement so a
// concurrent decrement can never leave a stale status behind.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $2,
			status = CASE
				WHEN stock - $2 <= 0 THEN 'out_of_stock'
				WHEN stock - $2 <= 5 THEN 'low_stock'
				ELSE 'in_stock'
			END,
			updated_at = now()
		WHERE id = $1 AND stock >= $2
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// RestoreStock increments stock within the provided transaction.
func (r *productRepository) RestoreStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock + $2,
			status = CASE
				WHEN stock + $2 <= 0 THEN 'out_of_stock'
				WHEN stock + $2 <= 5 THEN 'low_stock'
				ELSE 'in_stock'
			END,
			updated_at = now()
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to restore stock")
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	return nil
}

// GetRatings retrieves a product's ratings, newest first.
func (r *productRepository) GetRatings(ctx context.Context, productID uuid.UUID) ([]model.Rating, error) {
	query := `
		SELECT id, product_id, user_id, rating, review, created_at
		FROM product_ratings
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query ratings")
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ID, &rt.ProductID, &rt.UserID, &rt.Rating, &rt.Review, &rt.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan rating row")
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating rating rows")
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}

// UpsertRating inserts or replaces the user's rating for a product, then
// recomputes the product's average rating.
func (r *productRepository) UpsertRating(ctx context.Context, rt *model.Rating) (bool, error) {
	query := `
		INSERT INTO product_ratings (id, product_id, user_id, rating, review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, user_id)
		DO UPDATE SET rating = excluded.rating, review = excluded.review, created_at = excluded.created_at
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.pool.QueryRow(ctx, query, rt.ID, rt.ProductID, rt.UserID, rt.Rating, rt.Review, rt.CreatedAt).
		Scan(&inserted)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", rt.ProductID.String()).
			Str("user_id", rt.UserID.String()).
			Msg("failed to upsert rating")
		return false, fmt.Errorf("failed to upsert rating: %w", err)
	}

	avgQuery := `
		UPDATE products
		SET average_rating = COALESCE(
			(SELECT AVG(rating) FROM product_ratings WHERE product_id = $1), 0)
		WHERE id = $1
	`
	if _, err := r.pool.Exec(ctx, avgQuery, rt.ProductID); err != nil {
		r.logger.Error().Err(err).Str("product_id", rt.ProductID.String()).Msg("failed to refresh average rating")
		return false, fmt.Errorf("failed to refresh average rating: %w", err)
	}

	r.logger.Debug().
		Str("product_id", rt.ProductID.String()).
		Bool("inserted", inserted).
		Msg("rating saved")

	return inserted, nil
}
