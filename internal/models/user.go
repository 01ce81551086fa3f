package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID       string `gorm:"uniqueIndex;not null" json:"user_id"` // public id, user_<hex>
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'user'" json:"role"`
	Picture      string `json:"picture,omitempty"`
	TokenVersion int    `gorm:"default:1" json:"-"`
}

// PasswordReset is a pending password-reset token. Tokens are single use
// and expire after ExpiresAt.
type PasswordReset struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"index;not null"`
	Token     string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
