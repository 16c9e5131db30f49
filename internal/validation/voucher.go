package validation

import (
	"errors"

	"nushoplah/internal/models"
)

// ValidateVoucherInput checks a seller's voucher creation request.
func ValidateVoucherInput(input *models.CreateVoucherInput) error {
	switch input.Type {
	case models.VoucherTypeDollar:
		if input.Amount <= 0 {
			return errors.New("dollar voucher amount must be positive")
		}
	case models.VoucherTypePercentage:
		if input.Percentage <= 0 || input.Percentage > 100 {
			return errors.New("percentage must be in (0, 100]")
		}
	default:
		return errors.New("voucher type must be dollar or percentage")
	}
	if input.PointsRequired < 0 {
		return errors.New("points required cannot be negative")
	}
	return nil
}
