package repository

import (
	"context"
	"fmt"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, order_number, user_id, street, city, state, zip, country,
	subtotal, tax, shipping_cost, total_amount, payment_method, payment_status,
	status, tracking_number, notes, ordered_at, shipped_at, delivered_at, cancelled_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// NextOrderSeq draws the next value from the order number sequence.
func (r *orderRepository) NextOrderSeq(ctx context.Context, tx pgx.Tx) (int64, error) {
	var seq int64
	if err := tx.QueryRow(ctx, "SELECT nextval('order_number_seq')").Scan(&seq); err != nil {
		r.logger.Error().Err(err).Msg("failed to fetch order sequence")
		return 0, fmt.Errorf("failed to fetch order sequence: %w", err)
	}
	return seq, nil
}

// Create inserts an order and its items within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, order_number, user_id, street, city, state, zip, country,
			subtotal, tax, shipping_cost, total_amount, payment_method, payment_status,
			status, tracking_number, notes, ordered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.OrderNumber, order.UserID,
		order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.State,
		order.ShippingAddress.Zip, order.ShippingAddress.Country,
		order.Subtotal, order.Tax, order.ShippingCost, order.TotalAmount,
		order.PaymentMethod, order.PaymentStatus, order.Status,
		order.TrackingNumber, order.Notes, order.OrderedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if len(order.Items) > 0 {
		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		batch := &pgx.Batch{}
		for _, item := range order.Items {
			batch.Queue(itemQuery, item.ID, item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for i := 0; i < len(order.Items); i++ {
			if _, err := results.Exec(); err != nil {
				r.logger.Error().
					Err(err).
					Str("order_id", order.ID.String()).
					Str("product_id", order.Items[i].ProductID.String()).
					Msg("failed to create order item")
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Int("item_count", len(order.Items)).
		Msg("order created")

	return nil
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.Zip, &o.ShippingAddress.Country,
		&o.Subtotal, &o.Tax, &o.ShippingCost, &o.TotalAmount,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.TrackingNumber, &o.Notes, &o.OrderedAt,
		&o.ShippedAt, &o.DeliveredAt, &o.CancelledAt,
	)
}

// GetByID retrieves an order with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) collect(ctx context.Context, rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1
		ORDER BY ordered_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query user orders")
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}

	return r.collect(ctx, rows)
}

// List retrieves orders newest first with optional status filter.
func (r *orderRepository) List(ctx context.Context, status model.OrderStatus, limit, offset int) ([]model.Order, int, error) {
	where := ""
	args := []any{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		%s
		ORDER BY ordered_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}

	orders, err := r.collect(ctx, rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus writes an order's lifecycle fields within the transaction.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $2, payment_status = $3, tracking_number = $4,
			shipped_at = $5, delivered_at = $6, cancelled_at = $7
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		order.ID, order.Status, order.PaymentStatus, order.TrackingNumber,
		order.ShippedAt, order.DeliveredAt, order.CancelledAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order status updated")

	return nil
}
