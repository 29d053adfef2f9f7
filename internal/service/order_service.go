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

// orderService implements OrderService.
type orderService struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	cartRepo         repository.CartRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	logger           zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger.With().Str("service", "order").Logger(),
	}
}

// Place transforms the user's cart into an order. The per-line stock
// decrements, order insert, cart clear and history append all run in one
// transaction, so a failed line leaves no stock consumed. This closes the
// partial-failure gap the sequential per-line flow would otherwise have;
// the externally observable contract is unchanged when no race occurs.
func (s *orderService) Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*model.Order, error) {
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentCard
	}
	if !paymentMethod.Valid() {
		return nil, model.ErrValidation(fmt.Sprintf("Invalid payment method: %s", paymentMethod))
	}

	cartItems, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	ids := make([]uuid.UUID, len(cartItems))
	for i, item := range cartItems {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Lines whose product vanished are dropped, mirroring the cart view.
	lines := cartItems[:0]
	for _, item := range cartItems {
		if _, ok := byID[item.ProductID]; ok {
			lines = append(lines, item)
		}
	}

	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}

	shippingAddress := input.ShippingAddress
	if shippingAddress.Empty() {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
		if user != nil {
			shippingAddress = user.Profile.Address
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   model.PaymentPending,
		Status:          model.OrderPending,
		Notes:           input.Notes,
		OrderedAt:       now,
	}

	for _, line := range lines {
		product := byID[line.ProductID]

		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, product.ID, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
		if !ok {
			s.logger.Warn().
				Str("user_id", userID.String()).
				Str("product_id", product.ID.String()).
				Int("requested", line.Quantity).
				Msg("insufficient stock at checkout")
			err = model.ErrInsufficientStock(product.Name, product.Stock)
			return nil, err
		}

		order.Items = append(order.Items, model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Quantity:  line.Quantity,
		})
	}

	order.CalculateTotals()

	var seq int64
	seq, err = s.orderRepo.NextOrderSeq(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	order.OrderNumber = model.NewOrderNumber(now, seq)

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.cartRepo.ClearTx(ctx, tx, userID); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.userRepo.AppendOrderHistory(ctx, tx, model.OrderHistoryEntry{
		UserID:      userID,
		OrderID:     order.ID,
		OrderedAt:   order.OrderedAt,
		TotalAmount: order.TotalAmount,
	}); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Str("user_id", userID.String()).
		Float64("total", order.TotalAmount).
		Msg("order placed")

	s.notify(ctx, userID, model.NotificationOrder,
		"Order placed",
		fmt.Sprintf("Your order %s has been placed.", order.OrderNumber),
		"/orders/"+order.ID.String(),
	)

	return order, nil
}

// GetByID retrieves an order, enforcing owner-or-staff access.
func (s *orderService) GetByID(ctx context.Context, requester model.AuthUser, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.UserID != requester.ID && !requester.Role.Elevated() {
		return nil, model.ErrForbidden
	}

	return order, nil
}

// ListMine retrieves the requester's orders, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// List retrieves all orders with optional status filter.
func (s *orderService) List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]model.Order, int, error) {
	if status != "" && !status.Valid() {
		return nil, 0, model.ErrValidation(fmt.Sprintf("Invalid order status: %s", status))
	}

	orders, total, err := s.orderRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus sets an order's status unconditionally. There is no
// transition table here: staff may move an order to any status, including
// cancelling a shipped order. Stock is restored only when the order moves
// into cancelled from another status, so a repeated cancel cannot restore
// twice.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, trackingNumber string) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrValidation(fmt.Sprintf("Invalid order status: %s", status))
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	previous := order.Status
	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}

	now := time.Now()
	switch status {
	case model.OrderShipped:
		order.ShippedAt = &now
	case model.OrderDelivered:
		order.DeliveredAt = &now
		order.PaymentStatus = model.PaymentPaid
	case model.OrderCancelled:
		order.CancelledAt = &now
	}

	restoreStock := status == model.OrderCancelled && previous != model.OrderCancelled

	if err := s.applyStatus(ctx, order, restoreStock); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("order status updated")

	s.notify(ctx, order.UserID, model.NotificationOrder,
		"Order status updated",
		fmt.Sprintf("Your order %s is now %s.", order.OrderNumber, status),
		"/orders/"+order.ID.String(),
	)

	return order, nil
}

// Cancel is the self-service cancellation path. Unlike the staff status
// update it enforces ownership and only allows cancelling orders that are
// still pending or confirmed.
func (s *orderService) Cancel(ctx context.Context, requester model.AuthUser, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.UserID != requester.ID && !requester.Role.Elevated() {
		return nil, model.ErrForbidden
	}

	if !order.Status.Cancellable() {
		return nil, model.ErrInvalidTransition
	}

	now := time.Now()
	order.Status = model.OrderCancelled
	order.CancelledAt = &now

	if err := s.applyStatus(ctx, order, true); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", requester.ID.String()).
		Msg("order cancelled")

	s.notify(ctx, order.UserID, model.NotificationOrder,
		"Order cancelled",
		fmt.Sprintf("Your order %s has been cancelled.", order.OrderNumber),
		"/orders/"+order.ID.String(),
	)

	return order, nil
}

// applyStatus writes the order's lifecycle fields and, when requested,
// restores stock for every line, all within one transaction. Every
// cancellation therefore restores exactly the quantity that checkout
// decremented.
func (s *orderService) applyStatus(ctx context.Context, order *model.Order, restoreStock bool) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to update order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.UpdateStatus(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if restoreStock {
		for _, item := range order.Items {
			if err = s.productRepo.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// notify records an in-app notification. Failures are logged and do not
// fail the triggering operation.
func (s *orderService) notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message, link string) {
	n := &model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to create notification")
	}
}
