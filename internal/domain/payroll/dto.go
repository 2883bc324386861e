package payroll

import (
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL DTOs
// ========================================

type CalculateRequest struct {
	Period      string   `json:"period"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period is required",
		})
	} else if _, ok := validator.IsValidPeriod(r.Period); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CalculationResponse struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	TotalHours     decimal.Decimal `json:"total_hours"`
	TotalAmountUSD decimal.Decimal `json:"total_amount_usd"`
}

// CreateRequest persists payroll rows from a fresh calculation of the period.
type CreateRequest struct {
	Period      string   `json:"period"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *CreateRequest) Validate() error {
	c := CalculateRequest{Period: r.Period, EmployeeIDs: r.EmployeeIDs}
	return c.Validate()
}

// CreateItemResult reports the outcome of one row in a create batch. A row
// whose (employee, period) payroll already exists fails alone; the batch
// continues.
type CreateItemResult struct {
	EmployeeID string  `json:"employee_id"`
	PayrollID  *string `json:"payroll_id,omitempty"`
	Success    bool    `json:"success"`
	Error      *string `json:"error,omitempty"`
}

type CreateResponse struct {
	Results []CreateItemResult `json:"results"`
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
}

type PriceRequest struct {
	Period       string          `json:"period"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"` // USD per XRP
}

func (r *PriceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period is required",
		})
	} else if _, ok := validator.IsValidPeriod(r.Period); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be in YYYY-MM format",
		})
	}

	if !r.ExchangeRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "exchange_rate",
			Message: "exchange_rate must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DisburseRequest struct {
	Period string `json:"period"`
}

func (r *DisburseRequest) Validate() error {
	c := CalculateRequest{Period: r.Period}
	return c.Validate()
}

// DisburseItemResult reports the terminal outcome of one payroll row.
type DisburseItemResult struct {
	PayrollID       string  `json:"payroll_id"`
	EmployeeID      string  `json:"employee_id"`
	Status          string  `json:"status"`
	TransactionHash *string `json:"transaction_hash,omitempty"`
	Error           *string `json:"error,omitempty"`
}

type DisburseResponse struct {
	Results []DisburseItemResult `json:"results"`
	Paid    int                  `json:"paid"`
	Failed  int                  `json:"failed"`
}

type RetryRequest struct {
	Period     string   `json:"period"`
	PayrollIDs []string `json:"payroll_ids,omitempty"`
}

func (r *RetryRequest) Validate() error {
	c := CalculateRequest{Period: r.Period}
	return c.Validate()
}

// PollResponse reports the settlement state of a period's rows. Done is false
// after the attempt ceiling while rows remain processing: the batch is still
// in flight, not failed.
type PollResponse struct {
	Done       bool  `json:"done"`
	Paid       int   `json:"paid"`
	Failed     int   `json:"failed"`
	Processing int   `json:"processing"`
	Pending    int   `json:"pending"`
	Attempts   int   `json:"attempts"`
	Total      int64 `json:"total"`
}

type ListFilter struct {
	Period     *string
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type PayrollResponse struct {
	ID              string           `json:"id"`
	EmployeeID      string           `json:"employee_id"`
	EmployeeName    string           `json:"employee_name"`
	Period          string           `json:"period"`
	TotalHours      decimal.Decimal  `json:"total_hours"`
	TotalAmountUSD  decimal.Decimal  `json:"total_amount_usd"`
	TotalAmountXRP  *decimal.Decimal `json:"total_amount_xrp,omitempty"`
	ExchangeRate    *decimal.Decimal `json:"exchange_rate,omitempty"`
	Status          string           `json:"status"`
	TransactionHash *string          `json:"transaction_hash,omitempty"`
	PaidAt          *string          `json:"paid_at,omitempty"`
	FailureReason   *string          `json:"failure_reason,omitempty"`
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}
