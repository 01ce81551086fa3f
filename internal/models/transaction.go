package models

import "time"

// Transaction types
const (
	TransactionTypeBuy           = "buy"
	TransactionTypeSell          = "sell"
	TransactionTypeVoucherRedeem = "voucher_redeem"
)

// Transaction statuses
const (
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is an immutable ledger record. Rows are append-only and are
// never updated after creation.
type Transaction struct {
	ID            uint      `gorm:"primarykey" json:"-"`
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transaction_id"` // tx_<hex>
	UserID        uint      `gorm:"index;not null" json:"-"`
	PublicUserID  string    `gorm:"index;not null" json:"user_id"`
	Type          string    `gorm:"not null" json:"type"`
	Grams         float64   `json:"grams"`
	PriceQAR      float64   `json:"price_qar"` // total consideration, not per gram
	Status        string    `gorm:"not null;default:'completed'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
