package scan

import (
	"encoding/json"

	domainErrors "nushoplah/internal/errors"
	"nushoplah/internal/models"
)

// Result is the outcome of classifying a scanned payload. Exactly one of
// Identity or Voucher is set.
type Result struct {
	Identity *models.IdentityPayload
	Voucher  *models.VoucherPayload
}

// IsVoucher reports whether the scan was a voucher redemption request.
func (r *Result) IsVoucher() bool {
	return r.Voucher != nil
}

// Probe structs use pointer fields so absent keys are distinguishable from
// zero values; a missing load-bearing field means the QR did not come from
// one of our screens.
type identityProbe struct {
	UID          *uint    `json:"uid"`
	FirstName    *string  `json:"firstName"`
	CurrentPoint *int     `json:"currentPoint"`
	TotalPoint   *int     `json:"totalPoint"`
	AmountPaid   *float64 `json:"amountPaid"`
}

type voucherProbe struct {
	VoucherID  *uint `json:"voucherId"`
	CustomerID *uint `json:"customerId"`
	SellerID   *uint `json:"sellerId"`
}

// Classify parses a raw scanned string and decides whether it is a
// customer-identity payload or a voucher-redemption payload.
//
// A voucher payload whose embedded sellerId differs from the scanning
// seller is rejected outright: vouchers are scoped to the issuing seller
// and are never honored elsewhere. Classification is pure; the caller
// surfaces the outcome as a redemption prompt or an error alert before any
// remote call happens.
func Classify(raw string, scanningSellerID uint) (*Result, error) {
	var discriminator struct {
		IsVoucher bool `json:"isVoucher"`
	}
	if err := json.Unmarshal([]byte(raw), &discriminator); err != nil {
		return nil, domainErrors.ErrMalformedPayload
	}

	if discriminator.IsVoucher {
		return classifyVoucher(raw, scanningSellerID)
	}
	return classifyIdentity(raw)
}

func classifyVoucher(raw string, scanningSellerID uint) (*Result, error) {
	var probe voucherProbe
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, domainErrors.ErrMalformedPayload
	}
	if probe.VoucherID == nil || probe.CustomerID == nil || probe.SellerID == nil {
		return nil, domainErrors.ErrMalformedPayload
	}
	if *probe.SellerID != scanningSellerID {
		return nil, domainErrors.ErrForeignVoucher
	}

	var payload models.VoucherPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, domainErrors.ErrMalformedPayload
	}
	return &Result{Voucher: &payload}, nil
}

func classifyIdentity(raw string) (*Result, error) {
	var probe identityProbe
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, domainErrors.ErrMalformedPayload
	}
	// Reject absent fields here rather than letting them propagate as
	// zeroes into the points calculation.
	if probe.UID == nil || probe.FirstName == nil || probe.CurrentPoint == nil || probe.TotalPoint == nil {
		return nil, domainErrors.ErrMalformedPayload
	}

	var payload models.IdentityPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, domainErrors.ErrMalformedPayload
	}
	return &Result{Identity: &payload}, nil
}
