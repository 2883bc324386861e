package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidWallet    = errors.New("wallet address is not a valid ledger address")
)
