// Package errors defines domain error values shared across services.
// Each error carries a stable machine-readable code surfaced in API
// responses alongside the human-readable message.
package errors

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
