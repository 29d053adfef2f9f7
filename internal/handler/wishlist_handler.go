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

// WishlistHandler handles wishlist HTTP requests.
type WishlistHandler struct {
	service service.WishlistService
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.WishlistService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

// List handles GET /api/wishlist requests.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	items, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if items == nil {
		items = []model.WishlistItem{}
	}
	writeData(w, http.StatusOK, items)
}

// addRequest carries a wishlist addition.
type addRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

// Add handles POST /api/wishlist requests.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}
	if req.ProductID == uuid.Nil {
		writeError(w, model.ErrValidation("productId is required"), h.logger)
		return
	}

	count, err := h.service.Add(r.Context(), user.ID, req.ProductID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusCreated, "Product added to wishlist", map[string]int{"itemCount": count})
}

// Remove handles DELETE /api/wishlist/{id} requests.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), user.ID, itemID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Item removed from wishlist", nil)
}

// Clear handles DELETE /api/wishlist requests.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	if err := h.service.Clear(r.Context(), user.ID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Wishlist cleared", nil)
}

// MoveToCart handles POST /api/wishlist/{id}/move-to-cart requests.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	itemID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.MoveToCart(r.Context(), user.ID, itemID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Item moved to cart", nil)
}

// Contains handles GET /api/wishlist/check/{productId} requests.
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	inWishlist, err := h.service.Contains(r.Context(), user.ID, productID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]bool{"inWishlist": inWishlist})
}
