package service

import (
	"context"
	"testing"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateProduct_DerivesStatus(t *testing.T) {
	ctx := context.Background()

	category := model.Category{ID: uuid.New(), Name: "Chairs"}

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("GetByID", ctx, category.ID).Return(&category, nil)
	productRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)
	categoryRepo.On("AdjustProductCount", ctx, category.ID, 1).Return(nil)

	svc := NewCatalogService(productRepo, categoryRepo, zerolog.Nop())

	created, err := svc.CreateProduct(ctx, &model.Product{
		SKU:        "CHA-001",
		Name:       "Stool",
		CategoryID: category.ID,
		Price:      39.99,
		Stock:      3,
		// Caller-supplied status is ignored.
		Status: model.StatusInStock,
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusLowStock, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)
	categoryRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, nil)

	svc := NewCatalogService(productRepo, categoryRepo, zerolog.Nop())

	_, err := svc.CreateProduct(ctx, &model.Product{
		SKU:        "CHA-001",
		Name:       "Stool",
		CategoryID: categoryID,
		Price:      39.99,
	})

	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(new(MockProductRepository), new(MockCategoryRepository), zerolog.Nop())

	tests := []struct {
		name    string
		product model.Product
	}{
		{"missing name", model.Product{SKU: "X", Price: 10}},
		{"missing sku", model.Product{Name: "X", Price: 10}},
		{"zero price", model.Product{Name: "X", SKU: "X", Price: 0}},
		{"negative stock", model.Product{Name: "X", SKU: "X", Price: 10, Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, &tt.product)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		})
	}
}

func TestCatalogService_UpdateProduct_RederivesStatus(t *testing.T) {
	ctx := context.Background()

	existing := model.Product{
		ID:            uuid.New(),
		SKU:           "SOF-001",
		Name:          "Sofa",
		CategoryID:    uuid.New(),
		Price:         500,
		Stock:         10,
		Status:        model.StatusInStock,
		AverageRating: 4.2,
	}

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	productRepo.On("GetByID", ctx, existing.ID).Return(&existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewCatalogService(productRepo, categoryRepo, zerolog.Nop())

	update := existing
	update.Stock = 0

	updated, err := svc.UpdateProduct(ctx, &update)

	require.NoError(t, err)
	assert.Equal(t, model.StatusOutOfStock, updated.Status)
	// The average rating is owned by the rating flow, not the update.
	assert.Equal(t, 4.2, updated.AverageRating)
}

func TestCatalogService_DeleteProduct_AdjustsCategoryCount(t *testing.T) {
	ctx := context.Background()

	product := model.Product{ID: uuid.New(), CategoryID: uuid.New()}

	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)

	productRepo.On("GetByID", ctx, product.ID).Return(&product, nil)
	productRepo.On("Delete", ctx, product.ID).Return(nil)
	categoryRepo.On("AdjustProductCount", ctx, product.CategoryID, -1).Return(nil)

	svc := NewCatalogService(productRepo, categoryRepo, zerolog.Nop())

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	categoryRepo.AssertExpectations(t)
}

func TestCatalogService_AddRating_RangeChecked(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(new(MockProductRepository), new(MockCategoryRepository), zerolog.Nop())

	for _, rating := range []int{0, 6, -1} {
		_, _, err := svc.AddRating(ctx, uuid.New(), uuid.New(), rating, "")

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	}
}

func TestCatalogService_AddRating_ReturnsRefreshedProduct(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	before := model.Product{ID: uuid.New(), Name: "Desk", Price: 200, AverageRating: 3.0}
	after := before
	after.AverageRating = 4.0

	productRepo := new(MockProductRepository)

	productRepo.On("GetByID", ctx, before.ID).Return(&before, nil).Once()
	productRepo.On("UpsertRating", ctx, mock.AnythingOfType("*model.Rating")).Return(true, nil)
	productRepo.On("GetByID", ctx, before.ID).Return(&after, nil).Once()

	svc := NewCatalogService(productRepo, new(MockCategoryRepository), zerolog.Nop())

	product, created, err := svc.AddRating(ctx, userID, before.ID, 5, "solid desk")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4.0, product.AverageRating)
}

func TestCatalogService_AddRating_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	productRepo := new(MockProductRepository)
	productRepo.On("GetByID", ctx, productID).Return(nil, nil)

	svc := NewCatalogService(productRepo, new(MockCategoryRepository), zerolog.Nop())

	_, _, err := svc.AddRating(ctx, uuid.New(), productID, 4, "")
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_CreateCategory_RequiresName(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(new(MockProductRepository), new(MockCategoryRepository), zerolog.Nop())

	_, err := svc.CreateCategory(ctx, &model.Category{Name: "  "})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
}

func TestCatalogService_ListProducts_ClampsLimit(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("List", ctx, mock.MatchedBy(func(f model.ProductFilter) bool {
		return f.Limit == 20 && f.Offset == 0
	})).Return([]model.Product{}, 0, nil)

	svc := NewCatalogService(productRepo, new(MockCategoryRepository), zerolog.Nop())

	_, _, err := svc.ListProducts(ctx, model.ProductFilter{Limit: 5000, Offset: -2})
	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}
