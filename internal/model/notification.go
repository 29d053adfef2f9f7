package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationOrder        NotificationType = "order"
	NotificationProduct      NotificationType = "product"
	NotificationPromotion    NotificationType = "promotion"
	NotificationAnnouncement NotificationType = "announcement"
	NotificationReview       NotificationType = "review"
	NotificationStock        NotificationType = "stock"
	NotificationInfo         NotificationType = "info"
)

// Notification is an in-app message for a user. Delivery to external
// channels is out of scope; this is the stored record only.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"-"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"`
	Read      bool             `json:"read"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
