package errors

var (
	ErrNegativePoints = &DomainError{
		Code:    "NEGATIVE_POINTS",
		Message: "point balance would become negative",
	}
	ErrInsufficientPoints = &DomainError{
		Code:    "INSUFFICIENT_POINTS",
		Message: "not enough points for this voucher",
	}
)
