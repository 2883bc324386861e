package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/payroll"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			employee_id, company_id, period, total_hours, total_amount_usd, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.EmployeeID,
		p.CompanyID,
		p.Period,
		p.TotalHours,
		p.TotalAmountUSD,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return p, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.company_id, p.period,
			   p.total_hours, p.total_amount_usd, p.total_amount_xrp, p.exchange_rate,
			   p.status, p.transaction_hash, p.paid_at, p.failure_reason,
			   p.created_at, p.updated_at,
			   e.full_name, e.wallet_address
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
		  AND p.company_id = $2
	`

	var p payroll.Payroll
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.Period,
		&p.TotalHours, &p.TotalAmountUSD, &p.TotalAmountXRP, &p.ExchangeRate,
		&p.Status, &p.TransactionHash, &p.PaidAt, &p.FailureReason,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.WalletAddress,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

// ListByPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) ListByPeriod(ctx context.Context, period string, companyID string, statuses ...payroll.Status) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "p.period = $1 AND p.company_id = $2"
	args := []interface{}{period, companyID}
	if len(statuses) > 0 {
		baseWhere += " AND p.status = ANY($3)"
		values := make([]string, 0, len(statuses))
		for _, st := range statuses {
			values = append(values, string(st))
		}
		args = append(args, values)
	}

	query := `
		SELECT p.id, p.employee_id, p.company_id, p.period,
			   p.total_hours, p.total_amount_usd, p.total_amount_xrp, p.exchange_rate,
			   p.status, p.transaction_hash, p.paid_at, p.failure_reason,
			   p.created_at, p.updated_at,
			   e.full_name, e.wallet_address
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE ` + baseWhere + `
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	return scanPayrolls(rows)
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.ListFilter, companyID string) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "p.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Period != nil && *filter.Period != "" {
		baseWhere += fmt.Sprintf(" AND p.period = $%d", argIdx)
		args = append(args, *filter.Period)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM payrolls p
		WHERE ` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.company_id, p.period,
			   p.total_hours, p.total_amount_usd, p.total_amount_xrp, p.exchange_rate,
			   p.status, p.transaction_hash, p.paid_at, p.failure_reason,
			   p.created_at, p.updated_at,
			   e.full_name, e.wallet_address
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	payrolls, err := scanPayrolls(rows)
	if err != nil {
		return nil, 0, err
	}

	return payrolls, total, nil
}

// UpdatePricing implements payroll.PayrollRepository.
func (r *payrollRepository) UpdatePricing(ctx context.Context, id string, companyID string, amountXRP decimal.Decimal, rate decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET total_amount_xrp = $1,
			exchange_rate = $2,
			updated_at = NOW()
		WHERE id = $3
		  AND company_id = $4
		  AND status = $5
	`

	tag, err := q.Exec(ctx, query, amountXRP, rate, id, companyID, payroll.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to price payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// UpdateStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payroll.Status, txHash *string, failureReason *string, paidAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET status = $1,
			transaction_hash = $2,
			failure_reason = $3,
			paid_at = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND company_id = $6
	`

	tag, err := q.Exec(ctx, query, status, txHash, failureReason, paidAt, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// GetApprovedWorkMinutes implements payroll.PayrollRepository. Only APPROVED
// attendance days count toward pay.
func (r *payrollRepository) GetApprovedWorkMinutes(ctx context.Context, companyID string, startDate string, endDate string, employeeIDs []string) ([]payroll.WorkSummary, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := `
		a.company_id = $1
		AND a.date >= $2
		AND a.date <= $3
		AND a.approval_status = 'APPROVED'
	`
	args := []interface{}{companyID, startDate, endDate}
	if len(employeeIDs) > 0 {
		baseWhere += " AND a.employee_id = ANY($4)"
		args = append(args, employeeIDs)
	}

	query := `
		SELECT a.employee_id, COALESCE(SUM(a.total_work_minutes), 0)
		FROM attendance_records a
		WHERE ` + baseWhere + `
		GROUP BY a.employee_id
		ORDER BY a.employee_id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate approved work minutes: %w", err)
	}
	defer rows.Close()

	var summaries []payroll.WorkSummary
	for rows.Next() {
		var s payroll.WorkSummary
		if err := rows.Scan(&s.EmployeeID, &s.TotalWorkMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan work summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read work summaries: %w", err)
	}

	return summaries, nil
}

func scanPayrolls(rows pgx.Rows) ([]payroll.Payroll, error) {
	var payrolls []payroll.Payroll
	for rows.Next() {
		var p payroll.Payroll
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.CompanyID, &p.Period,
			&p.TotalHours, &p.TotalAmountUSD, &p.TotalAmountXRP, &p.ExchangeRate,
			&p.Status, &p.TransactionHash, &p.PaidAt, &p.FailureReason,
			&p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName, &p.WalletAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payrolls: %w", err)
	}

	return payrolls, nil
}
