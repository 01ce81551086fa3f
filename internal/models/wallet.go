package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's gold and cash balances. One wallet per user.
// Balances are mutated only through the wallet ledger service so the
// non-negative invariant on GoldGramsTotal holds.
type Wallet struct {
	ID             uint      `gorm:"primarykey" json:"-"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"-"`
	PublicUserID   string    `gorm:"index;not null" json:"user_id"`
	GoldGramsTotal float64   `gorm:"default:0" json:"gold_grams_total"`
	CashQAR        float64   `gorm:"default:0" json:"cash_qar"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Balances always start at zero
	w.GoldGramsTotal = 0
	w.CashQAR = 0
	return nil
}
