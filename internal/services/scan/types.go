package scan

import "nushoplah/internal/models"

// Step names of the redemption write sequence, in execution order.
const (
	StepBalanceRead      = "balance_read"
	StepVoucherRead      = "voucher_read"
	StepBalanceWrite     = "balance_write"
	StepPointsDeduction  = "points_deduction"
	StepTransactionWrite = "transaction_write"
	StepVoucherUsage     = "voucher_usage_update"
)

// StepResult reports the outcome of one persistence step.
type StepResult struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok", "failed" or "skipped"
	Error  string `json:"error,omitempty"`
}

// Redemption is the outcome of a completed (or aborted) redemption flow.
type Redemption struct {
	Transaction *models.Transaction `json:"transaction,omitempty"`
	Steps       []StepResult        `json:"steps"`

	// Points flow only.
	PreviousCurrentPoint int `json:"previous_current_point,omitempty"`
	NewCurrentPoint      int `json:"new_current_point,omitempty"`
	NewTotalPoint        int `json:"new_total_point,omitempty"`

	// Voucher flow only.
	Payable float64 `json:"payable,omitempty"`
}

// Config tunes orchestrator behavior.
type Config struct {
	// RequireSufficientPoints rejects voucher redemptions that would drive
	// the customer's spendable balance negative. The historical flow never
	// checked this, so the guard defaults to off; redemptions that go
	// negative are logged instead.
	RequireSufficientPoints bool
}
