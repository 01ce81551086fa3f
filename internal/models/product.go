package models

import "time"

// Product types
const (
	ProductTypeJewelry       = "jewelry"
	ProductTypeGift          = "gift"
	ProductTypeInvestmentBar = "investment_bar"
	ProductTypeDesigner      = "designer"
)

type Product struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	ProductID    string    `gorm:"uniqueIndex;not null" json:"product_id"` // prod_<hex>
	Type         string    `gorm:"index;not null" json:"type"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	PriceQAR     float64   `gorm:"not null" json:"price_qar"`
	Karat        int       `json:"karat,omitempty"`
	WeightGrams  float64   `json:"weight_grams,omitempty"`
	ImageURL     string    `json:"image_url"`
	MerchantName string    `json:"merchant_name,omitempty"`
	DesignerName string    `json:"designer_name,omitempty"`
	Brand        string    `json:"brand,omitempty"`
	Stock        int       `gorm:"default:10" json:"stock"`
	Category     string    `gorm:"index" json:"category,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type Merchant struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	MerchantID string `gorm:"uniqueIndex;not null" json:"merchant_id"`
	Name       string `gorm:"not null" json:"name"`
	LogoURL    string `json:"logo_url"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
}

type Designer struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	DesignerID string `gorm:"uniqueIndex;not null" json:"designer_id"`
	Name       string `gorm:"not null" json:"name"`
	Brand      string `json:"brand"`
	Bio        string `json:"bio,omitempty"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
}
