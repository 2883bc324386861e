package employee

import (
	"context"
)

// EmployeeService defines the small employee surface the payroll core needs.
type EmployeeService interface {
	// RegisterWallet validates and stores an employee's ledger wallet address
	RegisterWallet(ctx context.Context, req RegisterWalletRequest) (EmployeeResponse, error)

	// Get retrieves a single employee
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// ListActive retrieves the company's active employees
	ListActive(ctx context.Context) ([]EmployeeResponse, error)
}
