package seed

import (
	"context"
	"fmt"
	"time"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Importer writes seed records into the catalogue tables.
type Importer struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(pool *pgxpool.Pool, logger zerolog.Logger) *Importer {
	return &Importer{
		pool:   pool,
		logger: logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import upserts the records into the database. Categories are keyed by
// name and products by SKU, so re-running an import is safe. Products whose
// category cannot be resolved are skipped with a warning.
func (i *Importer) Import(ctx context.Context, records []Record) error {
	categoryIDs, err := i.importCategories(ctx, records)
	if err != nil {
		return err
	}

	imported, skipped, err := i.importProducts(ctx, records, categoryIDs)
	if err != nil {
		return err
	}

	i.logger.Info().
		Int("categories", len(categoryIDs)).
		Int("products", imported).
		Int("skipped", skipped).
		Msg("seed import complete")

	return nil
}

func (i *Importer) importCategories(ctx context.Context, records []Record) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID)

	query := `
		INSERT INTO categories (id, name, description, product_count, created_at)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`

	for _, rec := range records {
		if rec.Kind != "category" {
			continue
		}

		var id uuid.UUID
		err := i.pool.QueryRow(ctx, query, uuid.New(), rec.Category.Name, rec.Category.Description, time.Now()).Scan(&id)
		if err != nil {
			i.logger.Error().Err(err).Str("name", rec.Category.Name).Msg("failed to upsert category")
			return nil, fmt.Errorf("failed to upsert category %s: %w", rec.Category.Name, err)
		}
		ids[rec.Category.Name] = id
	}

	return ids, nil
}

func (i *Importer) importProducts(ctx context.Context, records []Record, categoryIDs map[string]uuid.UUID) (int, int, error) {
	query := `
		INSERT INTO products (
			id, sku, name, brand, category_id, price, discount_price,
			description, material, color, stock, status, average_rating,
			is_featured, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, $14, $14)
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category_id = EXCLUDED.category_id,
			price = EXCLUDED.price,
			discount_price = EXCLUDED.discount_price,
			description = EXCLUDED.description,
			material = EXCLUDED.material,
			color = EXCLUDED.color,
			stock = EXCLUDED.stock,
			status = EXCLUDED.status,
			is_featured = EXCLUDED.is_featured,
			updated_at = EXCLUDED.updated_at
	`

	batch := &pgx.Batch{}
	skipped := 0

	for _, rec := range records {
		if rec.Kind != "product" {
			continue
		}
		p := rec.Product

		categoryID, ok := categoryIDs[p.Category]
		if !ok {
			if err := i.pool.QueryRow(ctx,
				"SELECT id FROM categories WHERE name = $1", p.Category).Scan(&categoryID); err != nil {
				i.logger.Warn().
					Str("sku", p.SKU).
					Str("category", p.Category).
					Msg("skipping product with unknown category")
				skipped++
				continue
			}
			categoryIDs[p.Category] = categoryID
		}

		batch.Queue(query,
			uuid.New(), p.SKU, p.Name, p.Brand, categoryID, p.Price, p.DiscountPrice,
			p.Description, p.Material, p.Color, p.Stock, model.StatusForStock(p.Stock),
			p.IsFeatured, time.Now(),
		)
	}

	imported := batch.Len()
	if imported == 0 {
		return 0, skipped, nil
	}

	results := i.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range imported {
		if _, err := results.Exec(); err != nil {
			return 0, skipped, fmt.Errorf("failed to upsert product: %w", err)
		}
	}

	// Refresh the denormalised counters after bulk changes.
	_, err := i.pool.Exec(ctx, `
		UPDATE categories c
		SET product_count = (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
	`)
	if err != nil {
		return 0, skipped, fmt.Errorf("failed to refresh product counts: %w", err)
	}

	return imported, skipped, nil
}
