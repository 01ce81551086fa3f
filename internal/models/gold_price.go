package models

import "time"

// SupportedKarats are the purity tiers the pricing pipeline derives.
var SupportedKarats = []int{24, 22, 21, 18}

// GoldPrice is the current derived price for one karat. Exactly one row
// exists per karat at any time; refreshes overwrite in place (upsert key =
// karat). ChangeAmount/ChangePercent are computed against the previously
// stored price at update time and never recomputed later.
type GoldPrice struct {
	Karat           int       `gorm:"primarykey;autoIncrement:false" json:"karat"`
	PricePerGramQAR float64   `gorm:"not null" json:"price_per_gram_qar"`
	ChangeAmount    float64   `json:"change_amount"`
	ChangePercent   float64   `json:"change_percent"`
	SourceUSDPerOz  float64   `json:"-"`
	UpdatedAt       time.Time `json:"updated_at"`
}
