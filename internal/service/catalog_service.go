package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"furniturehub/internal/model"
	"furniturehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts retrieves products matching the filter.
func (s *catalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetProduct retrieves a single product.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// CreateProduct validates and inserts a product. Status is derived from
// stock regardless of what the caller supplied.
func (s *catalogService) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, p.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	now := time.Now()
	p.ID = uuid.New()
	p.Status = model.StatusForStock(p.Stock)
	p.AverageRating = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.categoryRepo.AdjustProductCount(ctx, p.CategoryID, 1); err != nil {
		s.logger.Warn().Err(err).Str("category_id", p.CategoryID.String()).Msg("failed to adjust product count")
	}

	s.logger.Info().
		Str("product_id", p.ID.String()).
		Str("sku", p.SKU).
		Msg("product created")

	return p, nil
}

// UpdateProduct rewrites a product's mutable fields, rederiving status.
func (s *catalogService) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if p.CategoryID != existing.CategoryID {
		category, err := s.categoryRepo.GetByID(ctx, p.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
		if category == nil {
			return nil, model.ErrCategoryNotFound
		}
	}

	p.Status = model.StatusForStock(p.Stock)
	p.AverageRating = existing.AverageRating
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if p.CategoryID != existing.CategoryID {
		if err := s.categoryRepo.AdjustProductCount(ctx, existing.CategoryID, -1); err != nil {
			s.logger.Warn().Err(err).Msg("failed to adjust product count")
		}
		if err := s.categoryRepo.AdjustProductCount(ctx, p.CategoryID, 1); err != nil {
			s.logger.Warn().Err(err).Msg("failed to adjust product count")
		}
	}

	return p, nil
}

// DeleteProduct removes a product from the catalogue. Existing order items
// keep their snapshot; cart and wishlist reads drop the vanished product.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.categoryRepo.AdjustProductCount(ctx, product.CategoryID, -1); err != nil {
		s.logger.Warn().Err(err).Str("category_id", product.CategoryID.String()).Msg("failed to adjust product count")
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// AddRating records a rating, replacing the user's previous one for the
// same product. The product's average is recomputed in the same statement.
func (s *catalogService) AddRating(ctx context.Context, userID, productID uuid.UUID, rating int, review string) (*model.Product, bool, error) {
	if rating < 1 || rating > 5 {
		return nil, false, model.ErrValidation("Rating must be between 1 and 5")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add rating: %w", err)
	}
	if product == nil {
		return nil, false, model.ErrProductNotFound
	}

	created, err := s.productRepo.UpsertRating(ctx, &model.Rating{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Review:    review,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to add rating: %w", err)
	}

	product, err = s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add rating: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID.String()).
		Str("user_id", userID.String()).
		Int("rating", rating).
		Bool("created", created).
		Msg("rating recorded")

	return product, created, nil
}

// ListRatings retrieves a product's ratings with the current average.
func (s *catalogService) ListRatings(ctx context.Context, productID uuid.UUID) ([]model.Rating, float64, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ratings: %w", err)
	}
	if product == nil {
		return nil, 0, model.ErrProductNotFound
	}

	ratings, err := s.productRepo.GetRatings(ctx, productID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ratings: %w", err)
	}

	return ratings, product.AverageRating, nil
}

// ListCategories retrieves all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory validates and inserts a category.
func (s *catalogService) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, model.ErrValidation("Category name is required")
	}

	c.ID = uuid.New()
	c.ProductCount = 0
	c.CreatedAt = time.Now()

	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Str("category_id", c.ID.String()).Str("name", c.Name).Msg("category created")
	return c, nil
}

func validateProduct(p *model.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return model.ErrValidation("Product name is required")
	case strings.TrimSpace(p.SKU) == "":
		return model.ErrValidation("Product SKU is required")
	case p.Price <= 0:
		return model.ErrValidation("Product price must be greater than zero")
	case p.DiscountPrice != nil && *p.DiscountPrice <= 0:
		return model.ErrValidation("Discount price must be greater than zero")
	case p.Stock < 0:
		return model.ErrValidation("Product stock cannot be negative")
	}
	return nil
}
