package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Rows only advance pending → processing → {paid | failed};
// failed rows may re-enter processing on an explicit retry.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
)

// Payroll is one disbursement unit, unique per (employee, period).
type Payroll struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Period          string // "YYYY-MM"
	TotalHours      decimal.Decimal
	TotalAmountUSD  decimal.Decimal
	TotalAmountXRP  *decimal.Decimal // nil until priced
	ExchangeRate    *decimal.Decimal // nil until priced
	Status          Status
	TransactionHash *string
	PaidAt          *time.Time
	FailureReason   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName  *string
	WalletAddress *string
}

// WorkSummary aggregates approved work minutes per employee over a period.
type WorkSummary struct {
	EmployeeID       string
	TotalWorkMinutes int
}
