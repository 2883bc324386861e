package payroll

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jonboulle/clockwork"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/employee"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "company-1"
	testPeriod    = "2026-08"
	hotWallet     = "rHotWalletAddressForTests12345"
)

type fakePayrollRepo struct {
	rows      []payroll.Payroll
	summaries []payroll.WorkSummary
	seq       int
}

func (f *fakePayrollRepo) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	for _, row := range f.rows {
		if row.EmployeeID == p.EmployeeID && row.Period == p.Period {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
	}
	f.seq++
	p.ID = fmt.Sprintf("pay-%d", f.seq)
	f.rows = append(f.rows, p)
	return p, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string, companyID string) (payroll.Payroll, error) {
	for _, row := range f.rows {
		if row.ID == id && row.CompanyID == companyID {
			return row, nil
		}
	}
	return payroll.Payroll{}, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) ListByPeriod(ctx context.Context, period string, companyID string, statuses ...payroll.Status) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, row := range f.rows {
		if row.Period != period || row.CompanyID != companyID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if row.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.ListFilter, companyID string) ([]payroll.Payroll, int64, error) {
	var out []payroll.Payroll
	for _, row := range f.rows {
		if row.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) UpdatePricing(ctx context.Context, id string, companyID string, amountXRP decimal.Decimal, rate decimal.Decimal) error {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].CompanyID == companyID {
			f.rows[i].TotalAmountXRP = &amountXRP
			f.rows[i].ExchangeRate = &rate
			return nil
		}
	}
	return payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) UpdateStatus(ctx context.Context, id string, companyID string, status payroll.Status, txHash *string, failureReason *string, paidAt *time.Time) error {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].CompanyID == companyID {
			f.rows[i].Status = status
			f.rows[i].TransactionHash = txHash
			f.rows[i].FailureReason = failureReason
			f.rows[i].PaidAt = paidAt
			return nil
		}
	}
	return payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) GetApprovedWorkMinutes(ctx context.Context, companyID string, startDate string, endDate string, employeeIDs []string) ([]payroll.WorkSummary, error) {
	if len(employeeIDs) == 0 {
		return f.summaries, nil
	}
	var out []payroll.WorkSummary
	for _, s := range f.summaries {
		for _, id := range employeeIDs {
			if s.EmployeeID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id && emp.CompanyID == companyID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID && emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) UpdateWalletAddress(ctx context.Context, id string, companyID string, address string) error {
	for i := range f.employees {
		if f.employees[i].ID == id && f.employees[i].CompanyID == companyID {
			f.employees[i].WalletAddress = &address
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

type fakeGateway struct {
	balance   decimal.Decimal
	rejectAll bool
	verify    payroll.VerifyResult
	sent      []payroll.PaymentRequest
	seq       int
}

func (g *fakeGateway) ValidateAddress(address string) bool {
	return strings.HasPrefix(address, "r")
}

func (g *fakeGateway) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	return g.balance, nil
}

func (g *fakeGateway) SendPayment(ctx context.Context, req payroll.PaymentRequest) (payroll.SubmitResult, error) {
	g.seq++
	g.sent = append(g.sent, req)
	if g.rejectAll {
		return payroll.SubmitResult{Accepted: false, EngineResult: "tecUNFUNDED_PAYMENT"}, nil
	}
	return payroll.SubmitResult{
		Accepted:     true,
		TxHash:       fmt.Sprintf("TX-%d", g.seq),
		EngineResult: "tesSUCCESS",
	}, nil
}

func (g *fakeGateway) VerifyTransaction(ctx context.Context, hash string) (payroll.VerifyResult, error) {
	return g.verify, nil
}

func payrollCtx(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"user_id":    "user-admin",
		"role":       "admin",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func strPtr(s string) *string { return &s }

type payrollFixture struct {
	repo    *fakePayrollRepo
	emps    *fakeEmployeeRepo
	gateway *fakeGateway
	svc     payroll.PayrollService
}

func newPayrollFixture() *payrollFixture {
	f := &payrollFixture{
		repo: &fakePayrollRepo{},
		emps: &fakeEmployeeRepo{},
		gateway: &fakeGateway{
			balance: decimal.NewFromInt(100000),
			verify:  payroll.VerifyResult{Verified: true, Status: "tesSUCCESS"},
		},
	}
	f.svc = NewPayrollService(f.repo, f.emps, f.gateway, clockwork.NewRealClock(), Config{
		SourceAddress: hotWallet,
		ChunkSize:     2,
		ChunkPause:    time.Millisecond,
		PollAttempts:  3,
		PollInterval:  time.Millisecond,
	})
	return f
}

func (f *payrollFixture) addEmployee(id, name string, rate int64, wallet *string) {
	f.emps.employees = append(f.emps.employees, employee.Employee{
		ID:            id,
		CompanyID:     testCompanyID,
		FullName:      name,
		HourlyRateUSD: decimal.NewFromInt(rate),
		WalletAddress: wallet,
		IsActive:      true,
	})
}

func (f *payrollFixture) seedRow(employeeID string, status payroll.Status, amountUSD int64, priced bool, wallet *string) payroll.Payroll {
	f.repo.seq++
	row := payroll.Payroll{
		ID:             fmt.Sprintf("pay-%d", f.repo.seq),
		EmployeeID:     employeeID,
		CompanyID:      testCompanyID,
		Period:         testPeriod,
		TotalHours:     decimal.NewFromInt(amountUSD / 20),
		TotalAmountUSD: decimal.NewFromInt(amountUSD),
		Status:         status,
		WalletAddress:  wallet,
	}
	if priced {
		xrp := decimal.NewFromInt(amountUSD).Div(decimal.NewFromInt(2))
		rate := decimal.NewFromInt(2)
		row.TotalAmountXRP = &xrp
		row.ExchangeRate = &rate
	}
	f.repo.rows = append(f.repo.rows, row)
	return row
}

// Test 510 approved minutes at $20/h come out as 8.5h and $170
func TestPayrollService_Calculate(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.addEmployee("employee-1", "Ada", 20, strPtr("rAdaWallet"))
	f.repo.summaries = []payroll.WorkSummary{{EmployeeID: "employee-1", TotalWorkMinutes: 510}}

	results, err := f.svc.Calculate(ctx, payroll.CalculateRequest{Period: testPeriod})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.True(t, results[0].TotalHours.Equal(decimal.RequireFromString("8.5")), "hours = %s", results[0].TotalHours)
	assert.True(t, results[0].TotalAmountUSD.Equal(decimal.NewFromInt(170)), "usd = %s", results[0].TotalAmountUSD)
}

func TestPayrollService_Calculate_InvalidPeriod(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)

	_, err := f.svc.Calculate(ctx, payroll.CalculateRequest{Period: "08-2026"})
	assert.Error(t, err)
}

// Test a duplicate (employee, period) fails alone without blocking the batch
func TestPayrollService_Create_DuplicateIsolated(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.addEmployee("employee-1", "Ada", 20, nil)
	f.addEmployee("employee-2", "Ben", 25, nil)
	f.repo.summaries = []payroll.WorkSummary{
		{EmployeeID: "employee-1", TotalWorkMinutes: 600},
		{EmployeeID: "employee-2", TotalWorkMinutes: 480},
	}
	f.seedRow("employee-1", payroll.StatusPending, 200, false, nil)

	resp, err := f.svc.Create(ctx, payroll.CreateRequest{Period: testPeriod})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.False(t, resp.Results[0].Success)
	assert.True(t, resp.Results[1].Success)
}

// Test pricing converts pending USD amounts at the given rate
func TestPayrollService_Price(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.seedRow("employee-1", payroll.StatusPending, 170, false, nil)

	results, err := f.svc.Price(ctx, payroll.PriceRequest{Period: testPeriod, ExchangeRate: decimal.NewFromInt(2)})
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.NotNil(t, results[0].TotalAmountXRP)
	assert.True(t, results[0].TotalAmountXRP.Equal(decimal.NewFromInt(85)))
	require.NotNil(t, f.repo.rows[0].TotalAmountXRP)
}

// Test disbursement: a row without a wallet fails terminally, the rest settle
func TestPayrollService_Disburse_MissingWallet(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.seedRow("employee-1", payroll.StatusPending, 100, true, strPtr("rAdaWallet"))
	f.seedRow("employee-2", payroll.StatusPending, 100, true, nil)
	f.seedRow("employee-3", payroll.StatusPending, 100, true, strPtr("rCamWallet"))

	resp, err := f.svc.Disburse(ctx, payroll.DisburseRequest{Period: testPeriod})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Paid)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "failed", resp.Results[1].Status)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, "no wallet address", *resp.Results[1].Error)

	// Only two payments ever reached the ledger
	assert.Len(t, f.gateway.sent, 2)
	assert.Equal(t, payroll.StatusPaid, f.repo.rows[0].Status)
	assert.Equal(t, payroll.StatusFailed, f.repo.rows[1].Status)
	assert.Equal(t, payroll.StatusPaid, f.repo.rows[2].Status)
	assert.NotNil(t, f.repo.rows[0].PaidAt)
}

// Test an underfunded hot wallet aborts the batch before any submission
func TestPayrollService_Disburse_InsufficientFunds(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.gateway.balance = decimal.NewFromInt(10)
	f.seedRow("employee-1", payroll.StatusPending, 100, true, strPtr("rAdaWallet"))

	_, err := f.svc.Disburse(ctx, payroll.DisburseRequest{Period: testPeriod})
	assert.ErrorIs(t, err, payroll.ErrInsufficientFunds)

	assert.Empty(t, f.gateway.sent)
	assert.Equal(t, payroll.StatusPending, f.repo.rows[0].Status)
}

// Test disbursing unpriced rows is rejected up front
func TestPayrollService_Disburse_NotPriced(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.seedRow("employee-1", payroll.StatusPending, 100, false, strPtr("rAdaWallet"))

	_, err := f.svc.Disburse(ctx, payroll.DisburseRequest{Period: testPeriod})
	assert.ErrorIs(t, err, payroll.ErrNotPriced)
}

func TestPayrollService_Disburse_Empty(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)

	_, err := f.svc.Disburse(ctx, payroll.DisburseRequest{Period: testPeriod})
	assert.ErrorIs(t, err, payroll.ErrNothingToDisburse)
}

// Test a ledger rejection marks the row failed with the engine result
func TestPayrollService_Disburse_LedgerRejection(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.gateway.rejectAll = true
	f.seedRow("employee-1", payroll.StatusPending, 100, true, strPtr("rAdaWallet"))

	resp, err := f.svc.Disburse(ctx, payroll.DisburseRequest{Period: testPeriod})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Paid)
	assert.Equal(t, 1, resp.Failed)
	require.NotNil(t, resp.Results[0].Error)
	assert.Contains(t, *resp.Results[0].Error, "tecUNFUNDED_PAYMENT")
}

// Test exhausting the polling ceiling reports still-processing, not failure
func TestPayrollService_Poll_AttemptCeiling(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.gateway.verify = payroll.VerifyResult{Verified: false, Status: "pending"}

	row := f.seedRow("employee-1", payroll.StatusProcessing, 100, true, strPtr("rAdaWallet"))
	f.repo.rows[0].TransactionHash = strPtr("TX-" + row.ID)

	resp, err := f.svc.Poll(ctx, testPeriod)
	require.NoError(t, err)

	assert.False(t, resp.Done)
	assert.Equal(t, 3, resp.Attempts)
	assert.Equal(t, 1, resp.Processing)
	assert.Equal(t, payroll.StatusProcessing, f.repo.rows[0].Status)
}

// Test polling settles processing rows once the ledger validates them
func TestPayrollService_Poll_Settles(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)

	f.seedRow("employee-1", payroll.StatusProcessing, 100, true, strPtr("rAdaWallet"))
	f.repo.rows[0].TransactionHash = strPtr("TX-1")
	f.seedRow("employee-2", payroll.StatusPaid, 100, true, strPtr("rBenWallet"))

	resp, err := f.svc.Poll(ctx, testPeriod)
	require.NoError(t, err)

	assert.True(t, resp.Done)
	assert.Equal(t, 1, resp.Attempts)
	assert.Equal(t, 2, resp.Paid)
	assert.Equal(t, 0, resp.Processing)
	assert.Equal(t, payroll.StatusPaid, f.repo.rows[0].Status)
}

// Test retry touches only failed rows and is never automatic
func TestPayrollService_RetryFailed(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	failed := f.seedRow("employee-1", payroll.StatusFailed, 100, true, strPtr("rAdaWallet"))
	f.seedRow("employee-2", payroll.StatusPaid, 100, true, strPtr("rBenWallet"))

	resp, err := f.svc.RetryFailed(ctx, payroll.RetryRequest{Period: testPeriod})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Paid)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, failed.ID, resp.Results[0].PayrollID)
	assert.Equal(t, payroll.StatusPaid, f.repo.rows[0].Status)
	assert.Len(t, f.gateway.sent, 1)
}

func TestPayrollService_RetryFailed_NothingFailed(t *testing.T) {
	f := newPayrollFixture()
	ctx := payrollCtx(t)
	f.seedRow("employee-1", payroll.StatusPaid, 100, true, strPtr("rAdaWallet"))

	_, err := f.svc.RetryFailed(ctx, payroll.RetryRequest{Period: testPeriod})
	assert.ErrorIs(t, err, payroll.ErrNotFailed)
}
