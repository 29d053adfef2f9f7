package handler

import (
	"encoding/json"
	"net/http"

	"furniturehub/internal/middleware"
	"furniturehub/internal/model"
	"furniturehub/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	view, err := h.service.GetCart(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, view)
}

// addItemRequest carries an add-to-cart submission.
type addItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// AddItem handles POST /api/cart requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}
	if req.ProductID == uuid.Nil {
		writeError(w, model.ErrValidation("productId is required"), h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	count, err := h.service.AddItem(r.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Product added to cart", map[string]int{"itemCount": count})
}

// updateItemRequest carries a cart quantity change.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/{id} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}

	if err := h.service.UpdateItem(r.Context(), user.ID, itemID, req.Quantity); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Cart updated", nil)
}

// RemoveItem handles DELETE /api/cart/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.RemoveItem(r.Context(), user.ID, itemID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Item removed from cart", nil)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	if err := h.service.Clear(r.Context(), user.ID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Cart cleared", nil)
}
