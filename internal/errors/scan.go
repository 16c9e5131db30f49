package errors

var (
	ErrMalformedPayload = &DomainError{
		Code:    "MALFORMED_PAYLOAD",
		Message: "scanned payload is unparseable or ill-shaped",
	}
	ErrForeignVoucher = &DomainError{
		Code:    "FOREIGN_VOUCHER",
		Message: "voucher belongs to a different seller",
	}
)
