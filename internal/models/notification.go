package models

import "time"

// Notification types
const (
	NotificationTypePriceAlert = "price_alert"
	NotificationTypeGift       = "gift"
)

type Notification struct {
	ID             uint      `gorm:"primarykey" json:"-"`
	NotificationID string    `gorm:"uniqueIndex;not null" json:"notification_id"` // notif_<hex>
	UserID         uint      `gorm:"index;not null" json:"-"`
	PublicUserID   string    `gorm:"index;not null" json:"user_id"`
	Type           string    `gorm:"not null" json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `gorm:"default:false" json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
