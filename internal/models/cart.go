package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primarykey" json:"-"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"-"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// CartItem is either a catalog product reference or a custom gold
// investment line (IsGoldInvestment) priced off the live karat price at the
// time it was added.
type CartItem struct {
	ID               uint     `gorm:"primarykey" json:"-"`
	CartID           uint     `gorm:"index;not null" json:"-"`
	ProductID        string   `gorm:"not null" json:"product_id"`
	Quantity         int      `gorm:"default:1" json:"quantity"`
	IsGoldInvestment bool     `gorm:"default:false" json:"is_gold_investment,omitempty"`
	Karat            int      `json:"karat,omitempty"`
	Grams            float64  `json:"grams,omitempty"`
	TotalPrice       float64  `json:"total_price,omitempty"`
	Title            string   `json:"title,omitempty"`
	ImageURL         string   `json:"image_url,omitempty"`
	Product          *Product `gorm:"-" json:"product,omitempty"`
}
