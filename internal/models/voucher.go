package models

import "time"

// Voucher statuses
const (
	VoucherStatusActive   = "active"
	VoucherStatusRedeemed = "redeemed"
)

// GiftVoucher is a prepaid cash gift. Redemption is single shot: the
// active→redeemed flip is a conditional update so the same code can never
// credit two wallets.
type GiftVoucher struct {
	ID             uint       `gorm:"primarykey" json:"-"`
	VoucherID      string     `gorm:"uniqueIndex;not null" json:"voucher_id"` // gift_<hex>
	VoucherCode    string     `gorm:"uniqueIndex;not null" json:"voucher_code"`
	SenderID       uint       `gorm:"index;not null" json:"-"`
	SenderName     string     `json:"sender_name"`
	RecipientName  string     `json:"recipient_name"`
	WhatsappNumber string     `json:"whatsapp_number"`
	AmountQAR      float64    `gorm:"not null" json:"amount_qar"`
	Message        string     `json:"message,omitempty"`
	Status         string     `gorm:"not null;default:'active'" json:"status"`
	RedeemedBy     *uint      `json:"-"`
	ExpiresAt      time.Time  `json:"expires_at"`
	CreatedAt      time.Time  `json:"created_at"`
	RedeemedAt     *time.Time `json:"redeemed_at,omitempty"`
}

// Expired reports whether the voucher can no longer be redeemed.
func (v *GiftVoucher) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
