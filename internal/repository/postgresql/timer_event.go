package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/timer"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/database"
)

type timerEventRepository struct {
	db *database.DB
}

func NewTimerEventRepository(db *database.DB) timer.EventRepository {
	return &timerEventRepository{db: db}
}

// Create implements timer.EventRepository.
func (r *timerEventRepository) Create(ctx context.Context, event timer.Event) (timer.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timer_events (
			attendance_record_id, employee_id, company_id, event_type, ts, end_ts, memo
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		event.AttendanceRecordID,
		event.EmployeeID,
		event.CompanyID,
		event.Type,
		event.Ts,
		event.EndTs,
		event.Memo,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return timer.Event{}, fmt.Errorf("failed to create timer event: %w", err)
	}

	return event, nil
}

// GetByID implements timer.EventRepository.
func (r *timerEventRepository) GetByID(ctx context.Context, id string, companyID string) (timer.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_record_id, employee_id, company_id,
			   event_type, ts, end_ts, memo, created_at, updated_at
		FROM timer_events
		WHERE id = $1
		  AND company_id = $2
	`

	var ev timer.Event
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&ev.ID, &ev.AttendanceRecordID, &ev.EmployeeID, &ev.CompanyID,
		&ev.Type, &ev.Ts, &ev.EndTs, &ev.Memo, &ev.CreatedAt, &ev.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return timer.Event{}, timer.ErrEventNotFound
		}
		return timer.Event{}, fmt.Errorf("failed to get timer event: %w", err)
	}

	return ev, nil
}

// ListByRecord implements timer.EventRepository.
func (r *timerEventRepository) ListByRecord(ctx context.Context, recordID string, companyID string) ([]timer.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_record_id, employee_id, company_id,
			   event_type, ts, end_ts, memo, created_at, updated_at
		FROM timer_events
		WHERE attendance_record_id = $1
		  AND company_id = $2
		ORDER BY ts ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, recordID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timer events: %w", err)
	}
	defer rows.Close()

	var events []timer.Event
	for rows.Next() {
		var ev timer.Event
		err := rows.Scan(
			&ev.ID, &ev.AttendanceRecordID, &ev.EmployeeID, &ev.CompanyID,
			&ev.Type, &ev.Ts, &ev.EndTs, &ev.Memo, &ev.CreatedAt, &ev.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timer event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timer events: %w", err)
	}

	return events, nil
}

// GetLastByRecord implements timer.EventRepository.
func (r *timerEventRepository) GetLastByRecord(ctx context.Context, recordID string, companyID string) (*timer.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_record_id, employee_id, company_id,
			   event_type, ts, end_ts, memo, created_at, updated_at
		FROM timer_events
		WHERE attendance_record_id = $1
		  AND company_id = $2
		ORDER BY ts DESC, created_at DESC
		LIMIT 1
	`

	var ev timer.Event
	err := q.QueryRow(ctx, query, recordID, companyID).Scan(
		&ev.ID, &ev.AttendanceRecordID, &ev.EmployeeID, &ev.CompanyID,
		&ev.Type, &ev.Ts, &ev.EndTs, &ev.Memo, &ev.CreatedAt, &ev.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last timer event: %w", err)
	}

	return &ev, nil
}

// Update implements timer.EventRepository.
func (r *timerEventRepository) Update(ctx context.Context, event timer.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timer_events
		SET event_type = $1,
			ts = $2,
			end_ts = $3,
			memo = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		event.Type,
		event.Ts,
		event.EndTs,
		event.Memo,
		event.ID,
		event.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update timer event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timer.ErrEventNotFound
	}

	return nil
}

// Delete implements timer.EventRepository.
func (r *timerEventRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM timer_events
		WHERE id = $1
		  AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete timer event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timer.ErrEventNotFound
	}

	return nil
}
