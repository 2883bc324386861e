package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository defines data access methods for payroll rows.
// All methods include companyID to prevent cross-company data access.
type PayrollRepository interface {
	// Create inserts a payroll row. The (employee_id, period) unique
	// constraint makes a re-run calculation surface ErrPayrollAlreadyExists
	// instead of double-paying.
	Create(ctx context.Context, p Payroll) (Payroll, error)

	// GetByID retrieves a payroll row with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Payroll, error)

	// ListByPeriod retrieves a period's rows, optionally filtered by status,
	// joined with employee name and wallet address
	ListByPeriod(ctx context.Context, period string, companyID string, statuses ...Status) ([]Payroll, error)

	// List retrieves rows with filters and pagination
	List(ctx context.Context, filter ListFilter, companyID string) ([]Payroll, int64, error)

	// UpdatePricing sets the XRP amount and exchange rate of a pending row
	UpdatePricing(ctx context.Context, id string, companyID string, amountXRP decimal.Decimal, rate decimal.Decimal) error

	// UpdateStatus advances a row's status with its terminal metadata
	UpdateStatus(ctx context.Context, id string, companyID string, status Status, txHash *string, failureReason *string, paidAt *time.Time) error

	// GetApprovedWorkMinutes aggregates APPROVED attendance minutes per
	// employee between two dates (inclusive). Unapproved work is never paid.
	GetApprovedWorkMinutes(ctx context.Context, companyID string, startDate string, endDate string, employeeIDs []string) ([]WorkSummary, error)
}
