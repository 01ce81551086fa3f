package models

import "time"

// ShariaAcceptance records whether a user has accepted the sharia-compliance
// terms. One row per user, overwritten on re-submission.
type ShariaAcceptance struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"-"`
	Accepted   bool      `json:"accepted"`
	AcceptedAt time.Time `json:"accepted_at"`
}
