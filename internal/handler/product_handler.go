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

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	filter := model.ProductFilter{
		Limit:  limit,
		Offset: offset,
	}

	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, model.ErrValidation("Invalid category format"), h.logger)
			return
		}
		filter.CategoryID = &id
	}
	if v := q.Get("status"); v != "" {
		filter.Status = model.ProductStatus(v)
	}
	if q.Get("featured") == "true" {
		filter.Featured = true
	}

	products, total, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}
	writePage(w, products, page, limit, total)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, product)
}

// Create handles POST /api/products requests (staff only).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}

	created, err := h.service.CreateProduct(r.Context(), &p)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusCreated, "Product created", created)
}

// Update handles PUT /api/products/{id} requests (staff only).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}
	p.ID = id

	updated, err := h.service.UpdateProduct(r.Context(), &p)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Product updated", updated)
}

// Delete handles DELETE /api/products/{id} requests (staff only).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Product deleted", nil)
}

// ratingRequest carries a product rating submission.
type ratingRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// AddRating handles POST /api/products/{id}/ratings requests.
func (h *ProductHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}

	product, created, err := h.service.AddRating(r.Context(), user.ID, id, req.Rating, req.Review)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	status := http.StatusOK
	message := "Rating updated"
	if created {
		status = http.StatusCreated
		message = "Rating added"
	}
	writeMessage(w, status, message, product)
}

// ListRatings handles GET /api/products/{id}/ratings requests.
func (h *ProductHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	ratings, average, err := h.service.ListRatings(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if ratings == nil {
		ratings = []model.Rating{}
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"ratings":       ratings,
		"averageRating": average,
	})
}
