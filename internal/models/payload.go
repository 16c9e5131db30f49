package models

// Scanned QR payloads. The wire format is the JSON document the mobile app
// renders into a QR code; field names are fixed by the clients already in
// the field and must not change. `isVoucher` discriminates the two shapes.

// IdentityPayload is shown on a customer's own identity screen and scanned
// by a seller to award points for a purchase.
type IdentityPayload struct {
	UID          uint    `json:"uid"`
	FirstName    string  `json:"firstName"`
	CurrentPoint int     `json:"currentPoint"`
	TotalPoint   int     `json:"totalPoint"`
	AmountPaid   float64 `json:"amountPaid"`
	IsVoucher    bool    `json:"isVoucher"`
}

// VoucherPayload is generated when a customer elects to redeem a specific
// voucher and scanned by the issuing seller.
type VoucherPayload struct {
	VoucherID          uint    `json:"voucherId"`
	VoucherType        string  `json:"voucherType"`
	VoucherAmount      float64 `json:"voucherAmount,omitempty"`
	VoucherPercentage  float64 `json:"voucherPercentage,omitempty"`
	PointsRequired     int     `json:"pointsRequired"`
	VoucherDescription string  `json:"voucherDescription"`
	CustomerID         uint    `json:"customerId"`
	CustomerName       string  `json:"customerName"`
	SellerID           uint    `json:"sellerId"`
	IsVoucher          bool    `json:"isVoucher"`
}
