package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/timer"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) timer.CorrectionRepository {
	return &correctionRepository{db: db}
}

// Create implements timer.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, correction timer.Correction) (timer.Correction, error) {
	q := GetQuerier(ctx, r.db)

	if correction.ID == "" {
		correction.ID = uuid.New().String()
	}

	query := `
		INSERT INTO timer_corrections (
			id, timer_event_id, attendance_record_id, company_id, actor_id,
			action, field, before_value, after_value, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		correction.ID,
		correction.TimerEventID,
		correction.AttendanceRecordID,
		correction.CompanyID,
		correction.ActorID,
		correction.Action,
		correction.Field,
		correction.BeforeValue,
		correction.AfterValue,
		correction.Reason,
		correction.Status,
	).Scan(&correction.CreatedAt)

	if err != nil {
		return timer.Correction{}, fmt.Errorf("failed to create correction: %w", err)
	}

	return correction, nil
}

// ListByRecord implements timer.CorrectionRepository.
func (r *correctionRepository) ListByRecord(ctx context.Context, recordID string, companyID string) ([]timer.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, timer_event_id, attendance_record_id, company_id, actor_id,
			   action, field, before_value, after_value, reason, status, created_at
		FROM timer_corrections
		WHERE attendance_record_id = $1
		  AND company_id = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, recordID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	var corrections []timer.Correction
	for rows.Next() {
		var c timer.Correction
		err := rows.Scan(
			&c.ID, &c.TimerEventID, &c.AttendanceRecordID, &c.CompanyID, &c.ActorID,
			&c.Action, &c.Field, &c.BeforeValue, &c.AfterValue, &c.Reason, &c.Status, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corrections: %w", err)
	}

	return corrections, nil
}

// CountCancelEnds implements timer.CorrectionRepository. The audit row's
// created_at date is authoritative so the daily ceiling cannot be dodged by
// cancelling checkouts on older attendance days.
func (r *correctionRepository) CountCancelEnds(ctx context.Context, employeeID string, date string, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM timer_corrections c
		JOIN attendance_records a ON a.id = c.attendance_record_id
		WHERE a.employee_id = $1
		  AND c.company_id = $2
		  AND c.action = $3
		  AND c.created_at::date = $4::date
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, companyID, timer.CorrectionCancelEnd, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count checkout cancellations: %w", err)
	}

	return count, nil
}
