package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentRequest is one outbound ledger payment.
type PaymentRequest struct {
	ToAddress string
	AmountXRP decimal.Decimal
	Memo      string
}

// SubmitResult reports the outcome of a payment submission. Accepted means the
// ledger took the transaction; it is not confirmation. Callers must verify the
// transaction before treating the payment as settled.
type SubmitResult struct {
	Accepted     bool
	TxHash       string
	EngineResult string
}

// VerifyResult reports the confirmation state of a submitted transaction.
type VerifyResult struct {
	Verified bool
	Status   string
}

// LedgerGateway is the external crypto-ledger payment collaborator.
type LedgerGateway interface {
	ValidateAddress(address string) bool
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
	SendPayment(ctx context.Context, req PaymentRequest) (SubmitResult, error)
	VerifyTransaction(ctx context.Context, hash string) (VerifyResult, error)
}
