package models

import "time"

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// Payment methods
const (
	PaymentMethodCard           = "card"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

type Order struct {
	ID              uint        `gorm:"primarykey" json:"-"`
	OrderID         string      `gorm:"uniqueIndex;not null" json:"order_id"` // order_<hex>
	UserID          uint        `gorm:"index;not null" json:"-"`
	PublicUserID    string      `gorm:"index;not null" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderRef" json:"items"`
	TotalQAR        float64     `gorm:"not null" json:"total_qar"`
	Status          string      `gorm:"not null;default:'pending'" json:"status"`
	PaymentMethod   string      `json:"payment_method,omitempty"`
	PaymentRef      string      `json:"-"` // external charge reference
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primarykey" json:"-"`
	OrderRef  uint    `gorm:"index;not null" json:"-"`
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	PriceQAR  float64 `json:"price_qar"`
}
