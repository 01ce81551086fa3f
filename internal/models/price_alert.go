package models

import "time"

// Alert types
const (
	AlertTypeAbove = "above"
	AlertTypeBelow = "below"
)

// PriceAlert is a user-defined price threshold. Once Triggered flips to
// true the alert is never re-evaluated or re-fired. Pending alerts have no
// expiry and stay eligible indefinitely.
type PriceAlert struct {
	ID           uint       `gorm:"primarykey" json:"-"`
	AlertID      string     `gorm:"uniqueIndex;not null" json:"alert_id"` // alert_<hex>
	UserID       uint       `gorm:"index;not null" json:"-"`
	PublicUserID string     `gorm:"index;not null" json:"user_id"`
	Karat        int        `gorm:"not null" json:"karat"`
	TargetPrice  float64    `gorm:"not null" json:"target_price"`
	AlertType    string     `gorm:"not null" json:"alert_type"`
	Triggered    bool       `gorm:"index;default:false" json:"triggered"`
	CreatedAt    time.Time  `json:"created_at"`
	TriggeredAt  *time.Time `json:"triggered_at,omitempty"`
}
