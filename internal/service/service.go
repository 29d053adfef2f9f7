package service

import (
	"context"

	"furniturehub/internal/model"

	"github.com/google/uuid"
)

// CartService defines cart operations for the authenticated user.
type CartService interface {
	// GetCart computes the derived cart view against the live catalogue.
	GetCart(ctx context.Context, userID uuid.UUID) (*model.CartView, error)

	// AddItem upserts a cart line after stock validation. Returns the
	// number of lines in the cart afterwards.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (int, error)

	// UpdateItem sets a line's quantity; a quantity of zero or below
	// removes the line.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error

	// RemoveItem deletes a line unconditionally.
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error

	// Clear empties the cart unconditionally.
	Clear(ctx context.Context, userID uuid.UUID) error
}

// PlaceOrderInput carries the checkout request.
type PlaceOrderInput struct {
	ShippingAddress model.Address       `json:"shippingAddress"`
	PaymentMethod   model.PaymentMethod `json:"paymentMethod"`
	Notes           string              `json:"notes"`
}

// OrderService defines order placement and lifecycle operations.
type OrderService interface {
	// Place transforms the user's cart into an order.
	Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*model.Order, error)

	// GetByID retrieves an order, enforcing owner-or-staff access.
	GetByID(ctx context.Context, requester model.AuthUser, orderID uuid.UUID) (*model.Order, error)

	// ListMine retrieves the requester's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// List retrieves all orders with optional status filter (staff only).
	List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]model.Order, int, error)

	// UpdateStatus sets an order's status unconditionally (staff only),
	// stamping milestones and restoring stock on cancellation.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, trackingNumber string) (*model.Order, error)

	// Cancel is the self-service cancellation path, limited to orders
	// still pending or confirmed.
	Cancel(ctx context.Context, requester model.AuthUser, orderID uuid.UUID) (*model.Order, error)
}

// CatalogService defines product and category operations.
type CatalogService interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// AddRating records a 1-5 rating with optional review text, replacing
	// the user's previous rating for the product if one exists. Returns
	// the product with its refreshed average and whether the rating was
	// newly created.
	AddRating(ctx context.Context, userID, productID uuid.UUID, rating int, review string) (*model.Product, bool, error)

	// ListRatings retrieves a product's ratings, newest first, with the
	// current average.
	ListRatings(ctx context.Context, productID uuid.UUID) ([]model.Rating, float64, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error)
}

// WishlistService defines wishlist operations for the authenticated user.
type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error)

	// Add saves a product, rejecting duplicates. Returns the wishlist
	// size afterwards.
	Add(ctx context.Context, userID, productID uuid.UUID) (int, error)

	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error

	// MoveToCart adds the saved product to the cart (quantity 1) and
	// removes it from the wishlist.
	MoveToCart(ctx context.Context, userID, itemID uuid.UUID) error

	// Contains reports whether the product is in the user's wishlist.
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// NotificationService defines notification read operations. Notifications
// are created internally by other services.
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// UserService defines account profile operations.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, int, error)
	OrderHistory(ctx context.Context, userID uuid.UUID) ([]model.OrderHistoryEntry, error)
}
