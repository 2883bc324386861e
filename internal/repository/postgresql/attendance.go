package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/attendance"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/database"
)

type attendanceRecordRepository struct {
	db *database.DB
}

func NewAttendanceRecordRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRecordRepository{db: db}
}

// Create implements attendance.RecordRepository.
func (r *attendanceRecordRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, date, check_in_ts, check_out_ts,
			total_work_minutes, status, approval_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.CompanyID,
		record.Date,
		record.CheckInTs,
		record.CheckOutTs,
		record.TotalWorkMinutes,
		record.Status,
		record.ApprovalStatus,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDayAlreadyExists
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.RecordRepository.
func (r *attendanceRecordRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.company_id, a.date,
			   a.check_in_ts, a.check_out_ts, a.total_work_minutes,
			   a.status, a.approval_status, a.approved_by, a.approved_at,
			   a.rejection_reason, a.created_at, a.updated_at,
			   e.full_name
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
		  AND a.company_id = $2
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
		&rec.CheckInTs, &rec.CheckOutTs, &rec.TotalWorkMinutes,
		&rec.Status, &rec.ApprovalStatus, &rec.ApprovedBy, &rec.ApprovedAt,
		&rec.RejectionReason, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *attendanceRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string, companyID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date,
			   check_in_ts, check_out_ts, total_work_minutes,
			   status, approval_status, approved_by, approved_at,
			   rejection_reason, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		  AND company_id = $3
		LIMIT 1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
		&rec.CheckInTs, &rec.CheckOutTs, &rec.TotalWorkMinutes,
		&rec.Status, &rec.ApprovalStatus, &rec.ApprovedBy, &rec.ApprovedAt,
		&rec.RejectionReason, &rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.RecordRepository.
func (r *attendanceRecordRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in_ts = $1,
			check_out_ts = $2,
			total_work_minutes = $3,
			status = $4,
			approval_status = $5,
			approved_by = $6,
			approved_at = $7,
			rejection_reason = $8,
			updated_at = NOW()
		WHERE id = $9
		  AND company_id = $10
	`

	tag, err := q.Exec(ctx, query,
		record.CheckInTs,
		record.CheckOutTs,
		record.TotalWorkMinutes,
		record.Status,
		record.ApprovalStatus,
		record.ApprovedBy,
		record.ApprovedAt,
		record.RejectionReason,
		record.ID,
		record.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// List implements attendance.RecordRepository.
func (r *attendanceRecordRepository) List(ctx context.Context, filter attendance.ListFilter, companyID string) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.ApprovalStatus != nil && *filter.ApprovalStatus != "" {
		baseWhere += fmt.Sprintf(" AND a.approval_status = $%d", argIdx)
		args = append(args, *filter.ApprovalStatus)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records a
		WHERE ` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.company_id, a.date,
			   a.check_in_ts, a.check_out_ts, a.total_work_minutes,
			   a.status, a.approval_status, a.approved_by, a.approved_at,
			   a.rejection_reason, a.created_at, a.updated_at,
			   e.full_name
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
			&rec.CheckInTs, &rec.CheckOutTs, &rec.TotalWorkMinutes,
			&rec.Status, &rec.ApprovalStatus, &rec.ApprovedBy, &rec.ApprovedAt,
			&rec.RejectionReason, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, total, nil
}
