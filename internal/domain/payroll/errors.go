package payroll

import "errors"

var (
	ErrPayrollNotFound      = errors.New("payroll not found")
	ErrPayrollAlreadyExists = errors.New("payroll already exists for this employee and period")
	ErrNotPriced            = errors.New("payroll has no XRP amount, price the period first")
	ErrNotFailed            = errors.New("only failed payrolls can be retried")
	ErrNothingToDisburse    = errors.New("no pending payrolls for this period")
	ErrInsufficientFunds    = errors.New("operating wallet balance is below the required amount")
)
