package repository

import (
	"context"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// List retrieves products matching the filter along with the total
	// matching count for pagination.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update rewrites a product's mutable fields.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically decrements stock within the provided
	// transaction, refusing to go below zero. Returns false when the
	// product has less stock than requested.
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (bool, error)

	// RestoreStock increments stock within the provided transaction.
	RestoreStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error

	// GetRatings retrieves a product's ratings, newest first.
	GetRatings(ctx context.Context, productID uuid.UUID) ([]model.Rating, error)

	// UpsertRating inserts or replaces the user's rating for a product and
	// recomputes the product's average rating. Returns true when a new
	// rating row was created rather than updated.
	UpsertRating(ctx context.Context, r *model.Rating) (bool, error)
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	// AdjustProductCount shifts the denormalised product counter.
	AdjustProductCount(ctx context.Context, id uuid.UUID, delta int) error
}

// CartRepository defines the interface for cart line data access. Cart
// lines are owned child rows of the user record.
type CartRepository interface {
	GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.CartItem, error)
	FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error)
	Insert(ctx context.Context, item *model.CartItem) error
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	// ClearTx clears the cart within an order-placement transaction.
	ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// NextOrderSeq draws the next value from the order number sequence.
	NextOrderSeq(ctx context.Context, tx pgx.Tx) (int64, error)

	// Create inserts an order and its items within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// List retrieves orders newest first with optional status filter,
	// returning the total matching count for pagination.
	List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]model.Order, int, error)

	// UpdateStatus writes an order's status, payment status, tracking
	// number and milestone timestamps within the provided transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, order *model.Order) error
}

// UserRepository defines the interface for user and session data access.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByToken resolves a bearer token against the sessions table. The
	// external auth system owns session creation; this is lookup only.
	GetByToken(ctx context.Context, token string) (*model.AuthUser, error)

	List(ctx context.Context, limit, offset int) ([]model.User, int, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) error

	// AppendOrderHistory records an order summary on the user within the
	// order-placement transaction.
	AppendOrderHistory(ctx context.Context, tx pgx.Tx, entry model.OrderHistoryEntry) error

	GetOrderHistory(ctx context.Context, userID uuid.UUID) ([]model.OrderHistoryEntry, error)
}

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	// GetItems retrieves wishlist entries with their products resolved;
	// entries whose product no longer exists are omitted.
	GetItems(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.WishlistItem, error)
	FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*model.WishlistItem, error)
	Insert(ctx context.Context, item *model.WishlistItem) error
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	// MarkRead marks one notification read; returns false when the
	// notification does not exist or belongs to another user.
	MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
