package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"furniturehub/internal/middleware"
	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target, body string, user model.AuthUser) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCartHandler_Get(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}

	view := &model.CartView{
		Items:     []model.CartLine{},
		Subtotal:  550.00,
		Tax:       44.00,
		Shipping:  0.00,
		Total:     594.00,
		ItemCount: 2,
	}

	mockService := new(MockCartService)
	mockService.On("GetCart", mock.Anything, user.ID).Return(view, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/cart", "", user))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, 594.00, data["total"])
}

func TestCartHandler_AddItem_Success(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}
	productID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("AddItem", mock.Anything, user.ID, productID, 2).Return(3, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	body := `{"productId": "` + productID.String() + `", "quantity": 2}`
	rec := httptest.NewRecorder()
	h.AddItem(rec, authedRequest(http.MethodPost, "/api/cart", body, user))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	mockService.AssertExpectations(t)
}

func TestCartHandler_AddItem_DefaultsQuantity(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}
	productID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("AddItem", mock.Anything, user.ID, productID, 1).Return(1, nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	body := `{"productId": "` + productID.String() + `"}`
	rec := httptest.NewRecorder()
	h.AddItem(rec, authedRequest(http.MethodPost, "/api/cart", body, user))

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_AddItem_InsufficientStock(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}
	productID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("AddItem", mock.Anything, user.ID, productID, 5).
		Return(0, model.ErrInsufficientStock("Chair", 2))

	h := NewCartHandler(mockService, zerolog.Nop())

	body := `{"productId": "` + productID.String() + `", "quantity": 5}`
	rec := httptest.NewRecorder()
	h.AddItem(rec, authedRequest(http.MethodPost, "/api/cart", body, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Insufficient stock for Chair. Available: 2", resp.Message)
}

func TestCartHandler_AddItem_MissingProductID(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}

	mockService := new(MockCartService)
	h := NewCartHandler(mockService, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.AddItem(rec, authedRequest(http.MethodPost, "/api/cart", `{"quantity": 1}`, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartHandler_AddItem_InvalidBody(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}

	h := NewCartHandler(new(MockCartService), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.AddItem(rec, authedRequest(http.MethodPost, "/api/cart", `{not json`, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_UpdateItem_NotFound(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}
	itemID := uuid.New()

	mockService := new(MockCartService)
	mockService.On("UpdateItem", mock.Anything, user.ID, itemID, 3).
		Return(model.ErrCartItemNotFound)

	h := NewCartHandler(mockService, zerolog.Nop())

	req := authedRequest(http.MethodPut, "/api/cart/"+itemID.String(), `{"quantity": 3}`, user)
	req.SetPathValue("id", itemID.String())

	rec := httptest.NewRecorder()
	h.UpdateItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_UpdateItem_InvalidID(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}

	h := NewCartHandler(new(MockCartService), zerolog.Nop())

	req := authedRequest(http.MethodPut, "/api/cart/not-a-uuid", `{"quantity": 3}`, user)
	req.SetPathValue("id", "not-a-uuid")

	rec := httptest.NewRecorder()
	h.UpdateItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	user := model.AuthUser{ID: uuid.New(), Role: model.RoleCustomer}

	mockService := new(MockCartService)
	mockService.On("Clear", mock.Anything, user.ID).Return(nil)

	h := NewCartHandler(mockService, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Clear(rec, authedRequest(http.MethodDelete, "/api/cart", "", user))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Cart cleared", resp.Message)
}
