package handler

import (
	"encoding/json"
	"net/http"

	"furniturehub/internal/middleware"
	"furniturehub/internal/model"
	"furniturehub/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles account HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// Me handles GET /api/users/me requests.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	account, err := h.service.Get(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, account)
}

// UpdateProfile handles PUT /api/users/me requests.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var profile model.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, model.ErrValidation("Invalid request body"), h.logger)
		return
	}

	account, err := h.service.UpdateProfile(r.Context(), user.ID, profile)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Profile updated", account)
}

// OrderHistory handles GET /api/users/me/order-history requests.
func (h *UserHandler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	entries, err := h.service.OrderHistory(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if entries == nil {
		entries = []model.OrderHistoryEntry{}
	}
	writeData(w, http.StatusOK, entries)
}

// List handles GET /api/users requests (staff only).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	users, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if users == nil {
		users = []model.User{}
	}
	writePage(w, users, page, limit, total)
}
