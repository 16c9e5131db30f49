package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	Role         string `gorm:"not null;default:'customer'"`
	CurrentPoint int    `gorm:"not null;default:0"` // spendable balance
	TotalPoint   int    `gorm:"not null;default:0"` // lifetime earned, never decreases
	Status       string `gorm:"default:'active'"`
	LastLoginAt  time.Time
	TokenVersion int `gorm:"default:1"`
}

// CreateUserInput is the payload accepted at registration.
type CreateUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	Role      string `json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Every account starts at zero points regardless of input.
	u.CurrentPoint = 0
	u.TotalPoint = 0
	return nil
}

// IsSeller reports whether the account can issue vouchers and scan customers.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}
