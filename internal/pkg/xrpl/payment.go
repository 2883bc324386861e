package xrpl

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shiftledger/shiftledger-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// On the wire amounts are drops, 1 XRP = 1,000,000 drops.
var dropsPerXRP = decimal.NewFromInt(1_000_000)

type accountInfoResult struct {
	AccountData struct {
		Account string `json:"Account"`
		Balance string `json:"Balance"` // drops
	} `json:"account_data"`
	Validated bool `json:"validated"`
}

// GetBalance returns the XRP balance of address from the last validated ledger.
func (c *Client) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	params := map[string]interface{}{
		"account":      address,
		"ledger_index": "validated",
	}

	var result accountInfoResult
	if err := c.call(ctx, "account_info", params, &result); err != nil {
		return decimal.Zero, err
	}

	drops, err := decimal.NewFromString(result.AccountData.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance %q: %w", result.AccountData.Balance, err)
	}

	return drops.Div(dropsPerXRP), nil
}

type submitResult struct {
	EngineResult        string `json:"engine_result"`
	EngineResultMessage string `json:"engine_result_message"`
	Accepted            bool   `json:"accepted"`
	TxJSON              struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}

// SendPayment signs and submits one Payment transaction from the operating
// wallet. A tes engine result means the node accepted the transaction; it is
// provisional until the ledger validates it, so callers verify before marking
// anything paid.
func (c *Client) SendPayment(ctx context.Context, req payroll.PaymentRequest) (payroll.SubmitResult, error) {
	txJSON := map[string]interface{}{
		"TransactionType": "Payment",
		"Account":         c.account,
		"Destination":     req.ToAddress,
		"Amount":          req.AmountXRP.Mul(dropsPerXRP).Round(0).String(),
	}
	if req.Memo != "" {
		txJSON["Memos"] = []map[string]interface{}{
			{
				"Memo": map[string]interface{}{
					"MemoData": strings.ToUpper(hex.EncodeToString([]byte(req.Memo))),
				},
			},
		}
	}

	params := map[string]interface{}{
		"secret":  c.secret,
		"tx_json": txJSON,
	}

	var result submitResult
	if err := c.call(ctx, "submit", params, &result); err != nil {
		return payroll.SubmitResult{}, err
	}

	accepted := result.Accepted || strings.HasPrefix(result.EngineResult, "tes")
	if !accepted {
		return payroll.SubmitResult{
			Accepted:     false,
			TxHash:       result.TxJSON.Hash,
			EngineResult: result.EngineResult,
		}, nil
	}

	return payroll.SubmitResult{
		Accepted:     true,
		TxHash:       result.TxJSON.Hash,
		EngineResult: result.EngineResult,
	}, nil
}

type txResult struct {
	Validated bool `json:"validated"`
	Meta      struct {
		TransactionResult string `json:"TransactionResult"`
	} `json:"meta"`
}

// VerifyTransaction looks up a submitted transaction. Verified only when the
// ledger validated it with a tesSUCCESS result; anything else reports the
// observed status and leaves the decision to the caller.
func (c *Client) VerifyTransaction(ctx context.Context, hash string) (payroll.VerifyResult, error) {
	params := map[string]interface{}{
		"transaction": hash,
		"binary":      false,
	}

	var result txResult
	if err := c.call(ctx, "tx", params, &result); err != nil {
		return payroll.VerifyResult{}, err
	}

	status := result.Meta.TransactionResult
	if !result.Validated {
		if status == "" {
			status = "pending"
		}
		return payroll.VerifyResult{Verified: false, Status: status}, nil
	}

	return payroll.VerifyResult{
		Verified: status == "tesSUCCESS",
		Status:   status,
	}, nil
}
