package voucher

import "errors"

// Service errors
var (
	ErrVoucherNotFound = errors.New("voucher not found")
	ErrNotIssuer       = errors.New("voucher belongs to a different seller")
	ErrAlreadyUsed     = errors.New("voucher already redeemed by this customer")
)
