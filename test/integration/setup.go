package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			product_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			sku VARCHAR(50) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			brand VARCHAR(100) NOT NULL DEFAULT '',
			category_id UUID NOT NULL REFERENCES categories(id),
			price DOUBLE PRECISION NOT NULL,
			discount_price DOUBLE PRECISION,
			description TEXT NOT NULL DEFAULT '',
			material VARCHAR(100) NOT NULL DEFAULT '',
			color VARCHAR(50) NOT NULL DEFAULT '',
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			status VARCHAR(20) NOT NULL,
			average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_featured BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS product_ratings (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			user_id UUID NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			review TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (product_id, user_id)
		);

		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'customer',
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			phone VARCHAR(30) NOT NULL DEFAULT '',
			street VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			state VARCHAR(100) NOT NULL DEFAULT '',
			zip VARCHAR(20) NOT NULL DEFAULT '',
			country VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS sessions (
			token VARCHAR(255) PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS wishlist_items (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			added_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, product_id)
		);

		CREATE SEQUENCE IF NOT EXISTS order_number_seq;

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_number VARCHAR(30) NOT NULL UNIQUE,
			user_id UUID NOT NULL,
			street VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			state VARCHAR(100) NOT NULL DEFAULT '',
			zip VARCHAR(20) NOT NULL DEFAULT '',
			country VARCHAR(100) NOT NULL DEFAULT '',
			subtotal DOUBLE PRECISION NOT NULL,
			tax DOUBLE PRECISION NOT NULL,
			shipping_cost DOUBLE PRECISION NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			payment_status VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL,
			tracking_number VARCHAR(50) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			ordered_at TIMESTAMPTZ NOT NULL,
			shipped_at TIMESTAMPTZ,
			delivered_at TIMESTAMPTZ,
			cancelled_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0)
		);

		CREATE TABLE IF NOT EXISTS user_order_history (
			user_id UUID NOT NULL,
			order_id UUID NOT NULL,
			ordered_at TIMESTAMPTZ NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (user_id, order_id)
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			type VARCHAR(20) NOT NULL,
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			link VARCHAR(255) NOT NULL DEFAULT '',
			read BOOLEAN NOT NULL DEFAULT false,
			read_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_cart_items_user_id ON cart_items(user_id);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// Catalog holds the IDs of the seeded catalogue fixtures.
type Catalog struct {
	CategoryID uuid.UUID
	SofaID     uuid.UUID
	TableID    uuid.UUID
	LampID     uuid.UUID
}

// SeedCatalog inserts a category and three products. The sofa is in stock,
// the table is low on stock and the lamp is nearly sold out.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) Catalog {
	t.Helper()

	ctx := context.Background()

	catalog := Catalog{
		CategoryID: uuid.New(),
		SofaID:     uuid.New(),
		TableID:    uuid.New(),
		LampID:     uuid.New(),
	}

	_, err := pool.Exec(ctx,
		"INSERT INTO categories (id, name, description, product_count) VALUES ($1, $2, $3, $4)",
		catalog.CategoryID, "Living Room", "Living room furniture", 3,
	)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	products := []struct {
		id       uuid.UUID
		sku      string
		name     string
		price    float64
		discount *float64
		stock    int
		status   string
		featured bool
	}{
		{catalog.SofaID, "SOF-001", "Oak Sofa", 300.00, nil, 10, "in_stock", true},
		{catalog.TableID, "TAB-001", "Walnut Table", 275.00, ptr(250.00), 4, "low_stock", false},
		{catalog.LampID, "LMP-001", "Brass Lamp", 40.00, nil, 2, "low_stock", false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, sku, name, brand, category_id, price, discount_price, stock, status, is_featured)
			VALUES ($1, $2, $3, 'Acme', $4, $5, $6, $7, $8, $9)`,
			p.id, p.sku, p.name, catalog.CategoryID, p.price, p.discount, p.stock, p.status, p.featured,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.sku, err)
		}
	}

	return catalog
}

// SeedUser inserts a user with the given role plus a session for the
// returned token.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role string) (uuid.UUID, string) {
	t.Helper()

	ctx := context.Background()

	userID := uuid.New()
	token := "tok-" + userID.String()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, username, email, role, first_name, last_name, street, city, state, zip, country)
		VALUES ($1, $2, $3, $4, 'Alex', 'Carter', '9 Ash Grove', 'Leeds', 'West Yorkshire', 'LS1 4AP', 'UK')`,
		userID, "user-"+userID.String()[:8], userID.String()[:8]+"@example.com", role,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, now() + interval '1 hour')",
		token, userID,
	)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	return userID, token
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"notifications", "user_order_history", "order_items", "orders",
		"wishlist_items", "cart_items", "product_ratings", "products",
		"categories", "sessions", "users",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

func ptr(v float64) *float64 { return &v }
