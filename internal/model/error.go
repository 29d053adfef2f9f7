package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeCartItemNotFound  = "CART_ITEM_NOT_FOUND"
	ErrCodeWishlistNotFound  = "WISHLIST_ITEM_NOT_FOUND"
	ErrCodeNotifNotFound     = "NOTIFICATION_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeAlreadyInWishlist = "ALREADY_IN_WISHLIST"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError carries a stable error code alongside the human-readable
// message that ends up in the response envelope.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCategoryNotFound  = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrCartItemNotFound  = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrWishlistNotFound  = NewDomainError(ErrCodeWishlistNotFound, "Item not found in wishlist")
	ErrUserNotFound      = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrNotifNotFound     = NewDomainError(ErrCodeNotifNotFound, "Notification not found")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrAlreadyInWishlist = NewDomainError(ErrCodeAlreadyInWishlist, "Product already in wishlist")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Not authorized to perform this action")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Cannot cancel order in current status")
)

// ErrInsufficientStock builds an insufficient-stock error naming the
// offending product and the quantity still available.
func ErrInsufficientStock(name string, available int) *DomainError {
	return NewDomainError(
		ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for %s. Available: %d", name, available),
	)
}

// ErrValidation builds a validation error with a request-specific message.
func ErrValidation(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}
