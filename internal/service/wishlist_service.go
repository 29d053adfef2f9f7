package service

import (
	"context"
	"fmt"
	"time"

	"furniturehub/internal/model"
	"furniturehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// wishlistService implements WishlistService.
type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	cartService  CartService
	logger       zerolog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	cartService CartService,
	logger zerolog.Logger,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		cartService:  cartService,
		logger:       logger.With().Str("service", "wishlist").Logger(),
	}
}

// List retrieves the user's wishlist with products resolved.
func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	items, err := s.wishlistRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return items, nil
}

// Add saves a product to the wishlist, rejecting duplicates.
func (s *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (int, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	if product == nil {
		return 0, model.ErrProductNotFound
	}

	existing, err := s.wishlistRepo.FindByProduct(ctx, userID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	if existing != nil {
		return 0, model.ErrAlreadyInWishlist
	}

	if err := s.wishlistRepo.Insert(ctx, &model.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}); err != nil {
		return 0, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	items, err := s.wishlistRepo.GetItems(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Msg("product added to wishlist")

	return len(items), nil
}

// Remove deletes a wishlist entry.
func (s *wishlistService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.wishlistRepo.GetItem(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if item == nil {
		return model.ErrWishlistNotFound
	}

	if err := s.wishlistRepo.Remove(ctx, userID, itemID); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

// Clear empties the wishlist. Clearing an already-empty wishlist succeeds.
func (s *wishlistService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.wishlistRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}

// MoveToCart adds the saved product to the cart with quantity 1 and removes
// the wishlist entry. The entry is removed only after the cart add
// succeeds, so a stock failure leaves the wishlist intact.
func (s *wishlistService) MoveToCart(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.wishlistRepo.GetItem(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to move wishlist item: %w", err)
	}
	if item == nil {
		return model.ErrWishlistNotFound
	}

	if _, err := s.cartService.AddItem(ctx, userID, item.ProductID, 1); err != nil {
		return err
	}

	if err := s.wishlistRepo.Remove(ctx, userID, itemID); err != nil {
		return fmt.Errorf("failed to move wishlist item: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("product_id", item.ProductID.String()).
		Msg("wishlist item moved to cart")

	return nil
}

// Contains reports whether the product is in the user's wishlist.
func (s *wishlistService) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	item, err := s.wishlistRepo.FindByProduct(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return item != nil, nil
}
