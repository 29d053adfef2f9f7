package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is a state in the order lifecycle.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a customer may still cancel an order in this
// status. Staff status updates are not bound by this check.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

// PaymentStatus tracks the payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how an order is paid for.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentCashOnDelivery, PaymentBankTransfer:
		return true
	}
	return false
}

// Pricing constants applied at checkout.
const (
	TaxRate               = 0.08
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 50.0
)

// ShippingFor returns the shipping cost for a given subtotal.
func ShippingFor(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// OrderItem is an immutable product snapshot embedded in an order. The
// price is fixed at checkout even if the catalogue price later changes.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

// Order represents a placed order. Created once per checkout; mutated only
// through status transitions; never deleted.
type Order struct {
	ID              uuid.UUID     `json:"id"`
	OrderNumber     string        `json:"orderNumber"`
	UserID          uuid.UUID     `json:"userId"`
	Items           []OrderItem   `json:"items"`
	ShippingAddress Address       `json:"shippingAddress"`
	Subtotal        float64       `json:"subtotal"`
	Tax             float64       `json:"tax"`
	ShippingCost    float64       `json:"shippingCost"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	Status          OrderStatus   `json:"status"`
	TrackingNumber  string        `json:"trackingNumber,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	OrderedAt       time.Time     `json:"orderedAt"`
	ShippedAt       *time.Time    `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time    `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time    `json:"cancelledAt,omitempty"`
}

// CalculateTotals derives subtotal, tax, shipping and total from the order
// items. Totals are never independently settable.
func (o *Order) CalculateTotals() {
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	o.Subtotal = subtotal
	o.Tax = subtotal * TaxRate
	o.ShippingCost = ShippingFor(subtotal)
	o.TotalAmount = o.Subtotal + o.Tax + o.ShippingCost
}

// NewOrderNumber formats an order number from the order timestamp and a
// sequence value. The sequence is drawn from a dedicated database sequence
// so numbers stay unique under concurrent placement.
func NewOrderNumber(at time.Time, seq int64) string {
	ts := strings.ToUpper(strconv.FormatInt(at.UnixMilli(), 36))
	return fmt.Sprintf("ORD-%s-%04d", ts, seq%10000)
}
