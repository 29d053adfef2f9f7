package handler

import (
	"encoding/json"
	"net/http"

	"furniturehub/internal/middleware"
	"furniturehub/internal/model"
	"furniturehub/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /api/orders requests.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var input service.PlaceOrderInput
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, model.ErrValidation("Invalid request body"), h.logger)
			return
		}
	}

	order, err := h.service.Place(r.Context(), user.ID, input)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusCreated, "Order placed", order)
}

// ListMine handles GET /api/orders/my requests.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	orders, err := h.service.ListMine(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeData(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), user, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}

// Cancel handles PUT /api/orders/{id}/cancel requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.Cancel(r.Context(), user, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Order cancelled", order)
}

// List handles GET /api/orders requests (staff only).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)
	status := model.OrderStatus(r.URL.Query().Get("status"))

	orders, total, err := h.service.List(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writePage(w, orders, page, limit, total)
}

// updateStatusRequest carries a staff order status change.
type updateStatusRequest struct {
	Status         model.OrderStatus `json:"status"`
	TrackingNumber string            `json:"trackingNumber"`
}

// UpdateStatus handles PUT /api/orders/{id}/status requests (staff only).
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status, req.TrackingNumber)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Order status updated", order)
}
