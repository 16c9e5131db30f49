package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Voucher types
const (
	VoucherTypeDollar     = "dollar"
	VoucherTypePercentage = "percentage"
)

type Voucher struct {
	gorm.Model
	SellerID       uint    `gorm:"not null;index"`
	SellerName     string  `gorm:"not null"`
	Type           string  `gorm:"not null"`
	Amount         float64 // dollar vouchers
	Percentage     float64 // percentage vouchers
	PointsRequired int     `gorm:"not null;default:0"`
	Description    string
	ImageURL       string
	// Customer IDs that have redeemed this voucher. Redemption is tracked
	// by membership only; the voucher itself survives until the seller
	// cancels it.
	UsedBy pq.StringArray `gorm:"type:text[]"`
}

// UsedByCustomer reports whether the customer already redeemed this voucher.
func (v *Voucher) UsedByCustomer(customerID string) bool {
	for _, id := range v.UsedBy {
		if id == customerID {
			return true
		}
	}
	return false
}

// CreateVoucherInput is the payload accepted from sellers.
type CreateVoucherInput struct {
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	Percentage     float64 `json:"percentage"`
	PointsRequired int     `json:"points_required"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
}

// VoucherView is the customer-facing projection of a voucher.
type VoucherView struct {
	ID             uint      `json:"id"`
	SellerID       uint      `json:"seller_id"`
	SellerName     string    `json:"seller_name"`
	Type           string    `json:"type"`
	Amount         float64   `json:"amount,omitempty"`
	Percentage     float64   `json:"percentage,omitempty"`
	PointsRequired int       `json:"points_required"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	AlreadyUsed    bool      `json:"already_used"`
	CreatedAt      time.Time `json:"created_at"`
}
