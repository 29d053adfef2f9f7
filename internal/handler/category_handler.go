package handler

import (
	"encoding/json"
	"net/http"

	"furniturehub/internal/model"
	"furniturehub/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CatalogService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}
	writeData(w, http.StatusOK, categories)
}

// Create handles POST /api/categories requests (staff only).
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c model.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}

	created, err := h.service.CreateCategory(r.Context(), &c)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusCreated, "Category created", created)
}
