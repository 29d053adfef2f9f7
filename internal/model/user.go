package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's access level.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Elevated reports whether the role may access staff-only operations.
func (r Role) Elevated() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Address is a postal address embedded in user profiles and orders.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Empty reports whether no address fields are set.
func (a Address) Empty() bool {
	return a == Address{}
}

// Profile holds a user's personal details.
type Profile struct {
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Address   Address `json:"address"`
}

// User represents an account. The password hash never leaves the store;
// credential verification is handled by the external auth system.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthUser is the identity resolved from a bearer token.
type AuthUser struct {
	ID   uuid.UUID
	Role Role
}

// CartItem is one product+quantity line owned by a user's cart.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// WishlistItem is one saved product in a user's wishlist.
type WishlistItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
	Product   *Product  `json:"product,omitempty"`
}

// OrderHistoryEntry is the lightweight order summary appended to a user
// record when an order is placed.
type OrderHistoryEntry struct {
	UserID      uuid.UUID `json:"-"`
	OrderID     uuid.UUID `json:"orderId"`
	OrderedAt   time.Time `json:"orderedAt"`
	TotalAmount float64   `json:"totalAmount"`
}
