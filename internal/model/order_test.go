package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals_FreeShipping(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: uuid.New(), Price: 300.00, Quantity: 1},
			{ProductID: uuid.New(), Price: 250.00, Quantity: 1},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, 550.00, order.Subtotal)
	assert.InDelta(t, 44.00, order.Tax, 0.001)
	assert.Equal(t, 0.00, order.ShippingCost)
	assert.InDelta(t, 594.00, order.TotalAmount, 0.001)
}

func TestCalculateTotals_FlatShippingBelowThreshold(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: uuid.New(), Price: 100.00, Quantity: 2},
		},
	}

	order.CalculateTotals()

	assert.Equal(t, 200.00, order.Subtotal)
	assert.InDelta(t, 16.00, order.Tax, 0.001)
	assert.Equal(t, 50.00, order.ShippingCost)
	assert.InDelta(t, 266.00, order.TotalAmount, 0.001)
}

func TestCalculateTotals_EmptyOrder(t *testing.T) {
	order := &Order{}
	order.CalculateTotals()

	assert.Equal(t, 0.00, order.Subtotal)
	assert.Equal(t, 0.00, order.Tax)
	assert.Equal(t, 50.00, order.ShippingCost)
}

func TestShippingFor(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"below threshold", 499.99, 50.00},
		{"at threshold", 500.00, 0.00},
		{"above threshold", 1200.00, 0.00},
		{"zero", 0.00, 50.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShippingFor(tt.subtotal))
		})
	}
}

func TestNewOrderNumber_Format(t *testing.T) {
	at := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	number := NewOrderNumber(at, 42)

	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.Equal(t, strings.ToUpper(parts[1]), parts[1])
	assert.Equal(t, "0042", parts[2])
}

func TestNewOrderNumber_SequenceWraps(t *testing.T) {
	at := time.Now()
	number := NewOrderNumber(at, 123456)
	assert.True(t, strings.HasSuffix(number, "-3456"))
}

func TestOrderStatus_Cancellable(t *testing.T) {
	assert.True(t, OrderPending.Cancellable())
	assert.True(t, OrderConfirmed.Cancellable())
	assert.False(t, OrderProcessing.Cancellable())
	assert.False(t, OrderShipped.Cancellable())
	assert.False(t, OrderDelivered.Cancellable())
	assert.False(t, OrderCancelled.Cancellable())
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.True(t, OrderDelivered.Valid())
	assert.False(t, OrderStatus("returned").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentCashOnDelivery.Valid())
	assert.True(t, PaymentBankTransfer.Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
}
