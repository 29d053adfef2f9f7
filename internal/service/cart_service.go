package service

import (
	"context"
	"fmt"

	"furniturehub/internal/model"
	"furniturehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart computes the derived cart view against the live catalogue. The
// view is rebuilt on every read so catalogue price changes show up
// immediately; lines whose product vanished are dropped silently.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.CartView, error) {
	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}

	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	view := model.BuildCartView(items, byID)

	if len(view.Items) < len(items) {
		s.logger.Debug().
			Str("user_id", userID.String()).
			Int("dropped", len(items)-len(view.Items)).
			Msg("dropped cart lines for missing products")
	}

	return &view, nil
}

// AddItem upserts a cart line after validating the product and its stock.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, model.ErrValidation("Quantity must be greater than zero")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to add to cart: %w", err)
	}
	if product == nil {
		return 0, model.ErrProductNotFound
	}

	existing, err := s.cartRepo.FindByProduct(ctx, userID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to add to cart: %w", err)
	}

	// The requested quantity accumulates with what is already in the cart.
	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}

	if newQuantity > product.Stock {
		s.logger.Debug().
			Str("user_id", userID.String()).
			Str("product_id", productID.String()).
			Int("requested", newQuantity).
			Int("stock", product.Stock).
			Msg("insufficient stock for cart add")
		return 0, model.ErrInsufficientStock(product.Name, product.Stock)
	}

	if existing != nil {
		err = s.cartRepo.SetQuantity(ctx, userID, existing.ID, newQuantity)
	} else {
		err = s.cartRepo.Insert(ctx, &model.CartItem{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add to cart: %w", err)
	}

	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", newQuantity).
		Msg("product added to cart")

	return len(items), nil
}

// UpdateItem sets a line's quantity. A quantity of zero or below removes
// the line, matching an explicit delete.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	item, err := s.cartRepo.GetItem(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if item == nil {
		return model.ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.Remove(ctx, userID, itemID); err != nil {
			return fmt.Errorf("failed to update cart: %w", err)
		}
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if quantity > product.Stock {
		return model.ErrInsufficientStock(product.Name, product.Stock)
	}

	if err := s.cartRepo.SetQuantity(ctx, userID, itemID, quantity); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}

	return nil
}

// RemoveItem deletes a line unconditionally.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.cartRepo.Remove(ctx, userID, itemID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear empties the cart. Clearing an already-empty cart succeeds.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
