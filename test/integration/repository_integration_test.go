package integration

import (
	"context"
	"testing"

	"furniturehub/internal/model"
	"furniturehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("List returns seeded products with total", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		products, total, err := repo.List(ctx, model.ProductFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, products, 3)
	})

	t.Run("List filters by status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		products, total, err := repo.List(ctx, model.ProductFilter{Status: model.StatusLowStock, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, p := range products {
			assert.Equal(t, model.StatusLowStock, p.Status)
		}
	})

	t.Run("List filters by featured", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)

		products, total, err := repo.List(ctx, model.ProductFilter{Featured: true, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, catalog.SofaID, products[0].ID)
	})

	t.Run("GetByID returns product with discount price", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)

		product, err := repo.GetByID(ctx, catalog.TableID)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "TAB-001", product.SKU)
		assert.Equal(t, 275.00, product.Price)
		require.NotNil(t, product.DiscountPrice)
		assert.Equal(t, 250.00, *product.DiscountPrice)
		assert.Equal(t, 250.00, product.EffectivePrice())
	})

	t.Run("GetByID returns nil for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		product, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("DecrementStock succeeds and recomputes status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)

		ok, err := repo.DecrementStock(ctx, tx, catalog.SofaID, 6)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, tx.Commit(ctx))

		product, err := repo.GetByID(ctx, catalog.SofaID)
		require.NoError(t, err)
		assert.Equal(t, 4, product.Stock)
		assert.Equal(t, model.StatusLowStock, product.Status)
	})

	t.Run("DecrementStock refuses to go below zero", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)

		ok, err := repo.DecrementStock(ctx, tx, catalog.LampID, 5)
		require.NoError(t, err)
		assert.False(t, ok)
		require.NoError(t, tx.Rollback(ctx))

		product, err := repo.GetByID(ctx, catalog.LampID)
		require.NoError(t, err)
		assert.Equal(t, 2, product.Stock)
	})

	t.Run("RestoreStock recomputes status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.RestoreStock(ctx, tx, catalog.LampID, 10))
		require.NoError(t, tx.Commit(ctx))

		product, err := repo.GetByID(ctx, catalog.LampID)
		require.NoError(t, err)
		assert.Equal(t, 12, product.Stock)
		assert.Equal(t, model.StatusInStock, product.Status)
	})

	t.Run("UpsertRating refreshes the average", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)

		userA := uuid.New()
		userB := uuid.New()

		inserted, err := repo.UpsertRating(ctx, &model.Rating{
			ID: uuid.New(), ProductID: catalog.SofaID, UserID: userA, Rating: 5,
		})
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = repo.UpsertRating(ctx, &model.Rating{
			ID: uuid.New(), ProductID: catalog.SofaID, UserID: userB, Rating: 3, Review: "Decent",
		})
		require.NoError(t, err)
		assert.True(t, inserted)

		product, err := repo.GetByID(ctx, catalog.SofaID)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, product.AverageRating, 0.001)

		// Re-rating replaces the previous value instead of adding a row.
		inserted, err = repo.UpsertRating(ctx, &model.Rating{
			ID: uuid.New(), ProductID: catalog.SofaID, UserID: userA, Rating: 1,
		})
		require.NoError(t, err)
		assert.False(t, inserted)

		ratings, err := repo.GetRatings(ctx, catalog.SofaID)
		require.NoError(t, err)
		assert.Len(t, ratings, 2)

		product, err = repo.GetByID(ctx, catalog.SofaID)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, product.AverageRating, 0.001)
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCartRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Insert and FindByProduct", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		item := &model.CartItem{ID: uuid.New(), UserID: userID, ProductID: catalog.SofaID, Quantity: 2}
		require.NoError(t, repo.Insert(ctx, item))

		found, err := repo.FindByProduct(ctx, userID, catalog.SofaID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, item.ID, found.ID)
		assert.Equal(t, 2, found.Quantity)
	})

	t.Run("SetQuantity on missing line returns not found", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		err := repo.SetQuantity(ctx, userID, uuid.New(), 3)
		require.ErrorIs(t, err, model.ErrCartItemNotFound)
	})

	t.Run("GetItem is scoped to the owner", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")
		otherID, _ := SeedUser(t, testDB.Pool, "customer")

		item := &model.CartItem{ID: uuid.New(), UserID: userID, ProductID: catalog.LampID, Quantity: 1}
		require.NoError(t, repo.Insert(ctx, item))

		found, err := repo.GetItem(ctx, otherID, item.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Clear empties the cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		catalog := SeedCatalog(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		require.NoError(t, repo.Insert(ctx, &model.CartItem{
			ID: uuid.New(), UserID: userID, ProductID: catalog.SofaID, Quantity: 1,
		}))
		require.NoError(t, repo.Clear(ctx, userID))

		items, err := repo.GetItems(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewUserRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetByToken resolves a live session", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID, token := SeedUser(t, testDB.Pool, "staff")

		au, err := repo.GetByToken(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, au)
		assert.Equal(t, userID, au.ID)
		assert.Equal(t, model.RoleStaff, au.Role)
	})

	t.Run("GetByToken ignores expired sessions", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		_, err := testDB.Pool.Exec(ctx,
			"INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, now() - interval '1 hour')",
			"stale-token", userID,
		)
		require.NoError(t, err)

		au, err := repo.GetByToken(ctx, "stale-token")
		require.NoError(t, err)
		assert.Nil(t, au)
	})

	t.Run("GetByID returns the profile", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		user, err := repo.GetByID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alex", user.Profile.FirstName)
		assert.Equal(t, "Leeds", user.Profile.Address.City)
	})

	t.Run("UpdateProfile rewrites profile fields", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		profile := model.Profile{
			FirstName: "Robin",
			LastName:  "Hale",
			Phone:     "07700 900123",
			Address:   model.Address{Street: "14 Elm Row", City: "York", Country: "UK"},
		}
		require.NoError(t, repo.UpdateProfile(ctx, userID, profile))

		user, err := repo.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Robin", user.Profile.FirstName)
		assert.Equal(t, "York", user.Profile.Address.City)
	})
}

func TestNotificationRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewNotificationRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("MarkRead reports whether a row changed", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		n := &model.Notification{
			ID: uuid.New(), UserID: userID, Type: model.NotificationOrder,
			Title: "Order placed", Message: "Your order is on its way",
		}
		require.NoError(t, repo.Create(ctx, n))

		ok, err := repo.MarkRead(ctx, userID, n.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.MarkRead(ctx, userID, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("CountUnread excludes read notifications", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID, _ := SeedUser(t, testDB.Pool, "customer")

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, &model.Notification{
				ID: uuid.New(), UserID: userID, Type: model.NotificationInfo,
				Title: "Hello", Message: "Welcome",
			}))
		}
		require.NoError(t, repo.MarkAllRead(ctx, userID))
		require.NoError(t, repo.Create(ctx, &model.Notification{
			ID: uuid.New(), UserID: userID, Type: model.NotificationInfo,
			Title: "Hello again", Message: "Still here",
		}))

		count, err := repo.CountUnread(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
