package transaction

import (
	"fmt"
	"time"

	"nushoplah/internal/models"
	"nushoplah/internal/utils"

	"github.com/google/uuid"
)

// NewPointsTransaction assembles the audit record for a points-earning scan.
// pointsAwarded is the spendable-balance delta, which can differ from the
// lifetime delta when the two balances sit in different tiers.
func NewPointsTransaction(customer, seller *models.User, amountPaid float64, pointsAwarded int) *models.Transaction {
	return &models.Transaction{
		Reference:     newReference("PT"),
		Type:          models.TransactionTypePoints,
		CustomerID:    customer.ID,
		CustomerName:  customer.FirstName,
		SellerID:      seller.ID,
		SellerName:    seller.FirstName,
		AmountPaid:    utils.Round2(amountPaid),
		PointsAwarded: pointsAwarded,
		CreatedAt:     time.Now(),
	}
}

// NewVoucherTransaction assembles the audit record for a voucher redemption.
// Voucher transactions never award points.
func NewVoucherTransaction(customer, seller *models.User, v *models.Voucher, payable float64) *models.Transaction {
	voucherID := v.ID
	return &models.Transaction{
		Reference:          newReference("VT"),
		Type:               models.TransactionTypeVoucher,
		CustomerID:         customer.ID,
		CustomerName:       customer.FirstName,
		SellerID:           seller.ID,
		SellerName:         seller.FirstName,
		AmountPaid:         payable,
		PointsAwarded:      0,
		VoucherID:          &voucherID,
		VoucherType:        v.Type,
		VoucherAmount:      v.Amount,
		VoucherPercentage:  v.Percentage,
		VoucherDescription: v.Description,
		CreatedAt:          time.Now(),
	}
}

func newReference(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
