package voucher

import (
	"nushoplah/internal/models"
	"nushoplah/internal/utils"
)

// Discount describes the price reduction a voucher grants.
type Discount struct {
	Type       string
	Amount     float64 // dollar vouchers
	Percentage float64 // percentage vouchers
}

// Payable computes the discounted amount the customer still owes.
// The result floors at zero: a voucher never makes the seller owe the
// customer money.
func Payable(originalPrice float64, d Discount) float64 {
	var payable float64
	switch d.Type {
	case models.VoucherTypePercentage:
		payable = utils.Round2(originalPrice * (100 - d.Percentage) / 100)
	default:
		payable = utils.Round2(originalPrice - d.Amount)
	}
	if payable < 0 {
		return 0
	}
	return payable
}
