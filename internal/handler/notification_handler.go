package handler

import (
	"net/http"

	"furniturehub/internal/middleware"
	"furniturehub/internal/model"
	"furniturehub/internal/service"

	"github.com/rs/zerolog"
)

// NotificationHandler handles notification HTTP requests.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/notifications requests.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	page, limit, offset := pageParams(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, total, err := h.service.List(r.Context(), user.ID, unreadOnly, limit, offset)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}
	writePage(w, notifications, page, limit, total)
}

// UnreadCount handles GET /api/notifications/unread-count requests.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	count, err := h.service.UnreadCount(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]int{"unreadCount": count})
}

// MarkRead handles POST /api/notifications/{id}/read requests.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.MarkRead(r.Context(), user.ID, id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Notification marked read", nil)
}

// MarkAllRead handles POST /api/notifications/read-all requests.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	if err := h.service.MarkAllRead(r.Context(), user.ID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "All notifications marked read", nil)
}
