package models

import "time"

// Transaction types
const (
	TransactionTypePoints  = "points"
	TransactionTypeVoucher = "voucher"
)

// Transaction is the immutable audit record created once per completed
// redemption. Rows are never updated or deleted; they back both the customer
// spend history and the seller revenue history.
type Transaction struct {
	ID            uint   `gorm:"primarykey"`
	Reference     string `gorm:"uniqueIndex;not null"` // external reference ID
	Type          string `gorm:"not null;index"`
	CustomerID    uint   `gorm:"not null;index"`
	CustomerName  string `gorm:"not null"`
	SellerID      uint   `gorm:"not null;index"`
	SellerName    string `gorm:"not null"`
	AmountPaid    float64
	PointsAwarded int

	// Voucher transactions only.
	VoucherID          *uint
	VoucherType        string
	VoucherAmount      float64
	VoucherPercentage  float64
	VoucherDescription string

	CreatedAt time.Time
}
