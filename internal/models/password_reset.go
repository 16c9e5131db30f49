package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a single-use password reset token.
type PasswordReset struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index"`
	Token     string `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// Usable reports whether the token can still reset a password.
func (r *PasswordReset) Usable(now time.Time) bool {
	return r.UsedAt == nil && now.Before(r.ExpiresAt)
}
