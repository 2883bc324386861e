package payroll

import (
	"context"
)

// PayrollService defines business logic for payroll calculation and
// crypto-ledger disbursement.
type PayrollService interface {
	// Calculate sums approved work minutes per employee over a period into
	// hours and a USD amount, without persisting anything
	Calculate(ctx context.Context, req CalculateRequest) ([]CalculationResponse, error)

	// Create persists payroll rows from a fresh calculation, failing per item
	// on duplicate (employee, period)
	Create(ctx context.Context, req CreateRequest) (CreateResponse, error)

	// Price sets the XRP amount on a period's pending rows from an exchange rate
	Price(ctx context.Context, req PriceRequest) ([]PayrollResponse, error)

	// Disburse submits one ledger payment per pending priced row, in bounded
	// chunks, leaving every touched row in a terminal status
	Disburse(ctx context.Context, req DisburseRequest) (DisburseResponse, error)

	// Poll re-queries a period's rows until all are terminal or the attempt
	// ceiling elapses; exhaustion reports still-processing, never failure
	Poll(ctx context.Context, period string) (PollResponse, error)

	// RetryFailed re-enters failed rows into the disbursement path. Retries
	// are an explicit caller action, never automatic.
	RetryFailed(ctx context.Context, req RetryRequest) (DisburseResponse, error)

	// List retrieves payroll rows with filters
	List(ctx context.Context, filter ListFilter) (ListPayrollResponse, error)

	// Get retrieves a single payroll row by id
	Get(ctx context.Context, id string) (PayrollResponse, error)
}
