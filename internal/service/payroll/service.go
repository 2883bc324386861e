package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jonboulle/clockwork"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/employee"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Config tunes the disbursement orchestrator. Zero values fall back to the
// defaults applied in NewPayrollService.
type Config struct {
	// SourceAddress is the company hot wallet payments are sent from.
	SourceAddress string

	// ChunkSize bounds how many payments are submitted back to back before
	// pausing, to avoid flooding the ledger node.
	ChunkSize  int
	ChunkPause time.Duration

	// PollAttempts bounds settlement polling; PollInterval is the wait
	// between attempts.
	PollAttempts int
	PollInterval time.Duration
}

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	gateway      payroll.LedgerGateway
	clock        clockwork.Clock
	cfg          Config
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	gateway payroll.LedgerGateway,
	clock clockwork.Clock,
	cfg Config,
) payroll.PayrollService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10
	}
	if cfg.ChunkPause <= 0 {
		cfg.ChunkPause = 1 * time.Second
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = 40
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}

	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		gateway:      gateway,
		clock:        clock,
		cfg:          cfg,
	}
}

// Helper to get identity claims from JWT context
func claimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// periodBounds expands "YYYY-MM" into the first and last calendar day of the
// month, both inclusive.
func periodBounds(period string) (string, string, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return "", "", fmt.Errorf("invalid period %q: %w", period, err)
	}
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) ([]payroll.CalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.calculate(ctx, companyID, req.Period, req.EmployeeIDs)
}

func (s *PayrollServiceImpl) calculate(ctx context.Context, companyID, period string, employeeIDs []string) ([]payroll.CalculationResponse, error) {
	startDate, endDate, err := periodBounds(period)
	if err != nil {
		return nil, err
	}

	summaries, err := s.payrollRepo.GetApprovedWorkMinutes(ctx, companyID, startDate, endDate, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate approved work minutes: %w", err)
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	sixty := decimal.NewFromInt(60)
	results := make([]payroll.CalculationResponse, 0, len(summaries))
	for _, sum := range summaries {
		emp, ok := byID[sum.EmployeeID]
		if !ok {
			// Approved minutes from a deactivated employee stay unpaid.
			continue
		}

		hours := decimal.NewFromInt(int64(sum.TotalWorkMinutes)).Div(sixty).Round(4)
		results = append(results, payroll.CalculationResponse{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.FullName,
			TotalHours:     hours,
			TotalAmountUSD: hours.Mul(emp.HourlyRateUSD).Round(2),
		})
	}

	return results, nil
}

// Create implements payroll.PayrollService. Rows are inserted one by one so a
// duplicate (employee, period) fails alone without blocking the rest.
func (s *PayrollServiceImpl) Create(ctx context.Context, req payroll.CreateRequest) (payroll.CreateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CreateResponse{}, err
	}

	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.CreateResponse{}, err
	}

	calcs, err := s.calculate(ctx, companyID, req.Period, req.EmployeeIDs)
	if err != nil {
		return payroll.CreateResponse{}, err
	}

	resp := payroll.CreateResponse{
		Results: make([]payroll.CreateItemResult, 0, len(calcs)),
	}
	for _, calc := range calcs {
		item := payroll.CreateItemResult{EmployeeID: calc.EmployeeID}

		created, err := s.payrollRepo.Create(ctx, payroll.Payroll{
			EmployeeID:     calc.EmployeeID,
			CompanyID:      companyID,
			Period:         req.Period,
			TotalHours:     calc.TotalHours,
			TotalAmountUSD: calc.TotalAmountUSD,
			Status:         payroll.StatusPending,
		})
		if err != nil {
			msg := err.Error()
			item.Error = &msg
			resp.Failed++
		} else {
			item.PayrollID = &created.ID
			item.Success = true
			resp.Created++
		}

		resp.Results = append(resp.Results, item)
	}

	return resp, nil
}

// Price implements payroll.PayrollService.
func (s *PayrollServiceImpl) Price(ctx context.Context, req payroll.PriceRequest) ([]payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.payrollRepo.ListByPeriod(ctx, req.Period, companyID, payroll.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}

	results := make([]payroll.PayrollResponse, 0, len(rows))
	for _, row := range rows {
		amountXRP := row.TotalAmountUSD.Div(req.ExchangeRate).Round(6)
		if err := s.payrollRepo.UpdatePricing(ctx, row.ID, companyID, amountXRP, req.ExchangeRate); err != nil {
			return nil, fmt.Errorf("failed to price payroll %s: %w", row.ID, err)
		}
		row.TotalAmountXRP = &amountXRP
		rate := req.ExchangeRate
		row.ExchangeRate = &rate
		results = append(results, toPayrollResponse(row))
	}

	return results, nil
}

// Disburse implements payroll.PayrollService. The hot wallet balance is
// checked against the full batch total before anything is submitted; an
// underfunded wallet aborts the whole batch untouched.
func (s *PayrollServiceImpl) Disburse(ctx context.Context, req payroll.DisburseRequest) (payroll.DisburseResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DisburseResponse{}, err
	}

	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.DisburseResponse{}, err
	}

	rows, err := s.payrollRepo.ListByPeriod(ctx, req.Period, companyID, payroll.StatusPending)
	if err != nil {
		return payroll.DisburseResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}
	if len(rows) == 0 {
		return payroll.DisburseResponse{}, payroll.ErrNothingToDisburse
	}

	total := decimal.Zero
	for _, row := range rows {
		if row.TotalAmountXRP == nil {
			return payroll.DisburseResponse{}, payroll.ErrNotPriced
		}
		total = total.Add(*row.TotalAmountXRP)
	}

	balance, err := s.gateway.GetBalance(ctx, s.cfg.SourceAddress)
	if err != nil {
		return payroll.DisburseResponse{}, fmt.Errorf("failed to get wallet balance: %w", err)
	}
	if balance.LessThan(total) {
		return payroll.DisburseResponse{}, payroll.ErrInsufficientFunds
	}

	return s.disburseRows(ctx, companyID, rows), nil
}

// disburseRows submits one payment per row in chunks, pausing between chunks.
// Each row ends paid, failed, or processing when the ledger has accepted the
// payment but not yet validated it.
func (s *PayrollServiceImpl) disburseRows(ctx context.Context, companyID string, rows []payroll.Payroll) payroll.DisburseResponse {
	resp := payroll.DisburseResponse{
		Results: make([]payroll.DisburseItemResult, 0, len(rows)),
	}

	for i, row := range rows {
		if i > 0 && i%s.cfg.ChunkSize == 0 {
			s.clock.Sleep(s.cfg.ChunkPause)
		}
		resp.Results = append(resp.Results, s.disburseOne(ctx, companyID, row, &resp))
	}

	return resp
}

func (s *PayrollServiceImpl) disburseOne(ctx context.Context, companyID string, row payroll.Payroll, resp *payroll.DisburseResponse) payroll.DisburseItemResult {
	item := payroll.DisburseItemResult{
		PayrollID:  row.ID,
		EmployeeID: row.EmployeeID,
	}

	fail := func(reason string) payroll.DisburseItemResult {
		if err := s.payrollRepo.UpdateStatus(ctx, row.ID, companyID, payroll.StatusFailed, row.TransactionHash, &reason, nil); err != nil {
			reason = fmt.Sprintf("%s (status update failed: %v)", reason, err)
		}
		item.Status = string(payroll.StatusFailed)
		item.Error = &reason
		resp.Failed++
		return item
	}

	if row.WalletAddress == nil || *row.WalletAddress == "" {
		return fail("no wallet address")
	}
	if row.TotalAmountXRP == nil {
		return fail("amount not priced")
	}

	if err := s.payrollRepo.UpdateStatus(ctx, row.ID, companyID, payroll.StatusProcessing, nil, nil, nil); err != nil {
		return fail(fmt.Sprintf("failed to mark processing: %v", err))
	}

	submit, err := s.gateway.SendPayment(ctx, payroll.PaymentRequest{
		ToAddress: *row.WalletAddress,
		AmountXRP: *row.TotalAmountXRP,
		Memo:      fmt.Sprintf("payroll %s", row.Period),
	})
	if err != nil {
		return fail(fmt.Sprintf("payment submission failed: %v", err))
	}
	if !submit.Accepted {
		return fail(fmt.Sprintf("payment rejected by ledger: %s", submit.EngineResult))
	}

	row.TransactionHash = &submit.TxHash

	verify, err := s.gateway.VerifyTransaction(ctx, submit.TxHash)
	switch {
	case err != nil || verify.Status == "pending":
		// Accepted but not yet validated. The row stays processing with its
		// hash recorded; Poll settles it later.
		if uerr := s.payrollRepo.UpdateStatus(ctx, row.ID, companyID, payroll.StatusProcessing, &submit.TxHash, nil, nil); uerr != nil {
			return fail(fmt.Sprintf("failed to record transaction hash: %v", uerr))
		}
		item.Status = string(payroll.StatusProcessing)
		item.TransactionHash = &submit.TxHash
		return item
	case verify.Verified:
		now := s.clock.Now()
		if uerr := s.payrollRepo.UpdateStatus(ctx, row.ID, companyID, payroll.StatusPaid, &submit.TxHash, nil, &now); uerr != nil {
			return fail(fmt.Sprintf("failed to mark paid: %v", uerr))
		}
		item.Status = string(payroll.StatusPaid)
		item.TransactionHash = &submit.TxHash
		resp.Paid++
		return item
	default:
		return fail(fmt.Sprintf("transaction failed on ledger: %s", verify.Status))
	}
}

// Poll implements payroll.PayrollService. Exhausting the attempt ceiling with
// rows still processing reports Done=false; the batch is in flight, not failed.
func (s *PayrollServiceImpl) Poll(ctx context.Context, period string) (payroll.PollResponse, error) {
	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.PollResponse{}, err
	}

	var resp payroll.PollResponse
	for attempt := 1; attempt <= s.cfg.PollAttempts; attempt++ {
		resp.Attempts = attempt

		processing, err := s.payrollRepo.ListByPeriod(ctx, period, companyID, payroll.StatusProcessing)
		if err != nil {
			return payroll.PollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
		}

		for _, row := range processing {
			if row.TransactionHash == nil {
				continue
			}
			verify, err := s.gateway.VerifyTransaction(ctx, *row.TransactionHash)
			if err != nil || verify.Status == "pending" {
				continue
			}
			if verify.Verified {
				now := s.clock.Now()
				if uerr := s.payrollRepo.UpdateStatus(ctx, row.ID, companyID, payroll.StatusPaid, row.TransactionHash, nil, &now); uerr != nil {
					return payroll.PollResponse{}, fmt.Errorf("failed to mark paid: %w", uerr)
				}
			} else {
				reason := fmt.Sprintf("transaction failed on ledger: %s", verify.Status)
				if uerr := s.payrollRepo.UpdateStatus(ctx, row.ID, companyID, payroll.StatusFailed, row.TransactionHash, &reason, nil); uerr != nil {
					return payroll.PollResponse{}, fmt.Errorf("failed to mark failed: %w", uerr)
				}
			}
		}

		done, err := s.tallyPeriod(ctx, period, companyID, &resp)
		if err != nil {
			return payroll.PollResponse{}, err
		}
		if done {
			resp.Done = true
			return resp, nil
		}

		if attempt < s.cfg.PollAttempts {
			s.clock.Sleep(s.cfg.PollInterval)
		}
	}

	// Still processing after the ceiling. Not a failure.
	return resp, nil
}

func (s *PayrollServiceImpl) tallyPeriod(ctx context.Context, period, companyID string, resp *payroll.PollResponse) (bool, error) {
	rows, err := s.payrollRepo.ListByPeriod(ctx, period, companyID)
	if err != nil {
		return false, fmt.Errorf("failed to list payrolls: %w", err)
	}

	resp.Paid, resp.Failed, resp.Processing, resp.Pending = 0, 0, 0, 0
	resp.Total = int64(len(rows))
	for _, row := range rows {
		switch row.Status {
		case payroll.StatusPaid:
			resp.Paid++
		case payroll.StatusFailed:
			resp.Failed++
		case payroll.StatusProcessing:
			resp.Processing++
		default:
			resp.Pending++
		}
	}

	return resp.Processing == 0, nil
}

// RetryFailed implements payroll.PayrollService.
func (s *PayrollServiceImpl) RetryFailed(ctx context.Context, req payroll.RetryRequest) (payroll.DisburseResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DisburseResponse{}, err
	}

	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.DisburseResponse{}, err
	}

	rows, err := s.payrollRepo.ListByPeriod(ctx, req.Period, companyID, payroll.StatusFailed)
	if err != nil {
		return payroll.DisburseResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	if len(req.PayrollIDs) > 0 {
		wanted := make(map[string]bool, len(req.PayrollIDs))
		for _, id := range req.PayrollIDs {
			wanted[id] = true
		}
		filtered := rows[:0]
		for _, row := range rows {
			if wanted[row.ID] {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	if len(rows) == 0 {
		return payroll.DisburseResponse{}, payroll.ErrNotFailed
	}

	// Clear the previous failure before re-entering the payment path.
	for i := range rows {
		rows[i].TransactionHash = nil
		rows[i].FailureReason = nil
	}

	return s.disburseRows(ctx, companyID, rows), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.ListFilter) (payroll.ListPayrollResponse, error) {
	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	rows, total, err := s.payrollRepo.List(ctx, filter, companyID)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	resp := payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Payrolls:   make([]payroll.PayrollResponse, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Payrolls = append(resp.Payrolls, toPayrollResponse(row))
	}

	return resp, nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	row, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toPayrollResponse(row), nil
}

func toPayrollResponse(row payroll.Payroll) payroll.PayrollResponse {
	resp := payroll.PayrollResponse{
		ID:              row.ID,
		EmployeeID:      row.EmployeeID,
		Period:          row.Period,
		TotalHours:      row.TotalHours,
		TotalAmountUSD:  row.TotalAmountUSD,
		TotalAmountXRP:  row.TotalAmountXRP,
		ExchangeRate:    row.ExchangeRate,
		Status:          string(row.Status),
		TransactionHash: row.TransactionHash,
		FailureReason:   row.FailureReason,
	}
	if row.EmployeeName != nil {
		resp.EmployeeName = *row.EmployeeName
	}
	if row.PaidAt != nil {
		at := row.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &at
	}

	return resp
}
