package timer

import (
	"context"
)

// EventRepository defines data access methods for timer events.
// All methods include companyID to prevent cross-company data access.
type EventRepository interface {
	// Create appends a new event
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves an event with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Event, error)

	// ListByRecord retrieves all events of one attendance day ordered by ts
	ListByRecord(ctx context.Context, recordID string, companyID string) ([]Event, error)

	// GetLastByRecord retrieves the most recent event of one attendance day,
	// nil when the day has no events yet
	GetLastByRecord(ctx context.Context, recordID string, companyID string) (*Event, error)

	// Update rewrites ts, type, end_ts and memo of an existing event
	Update(ctx context.Context, event Event) error

	// Delete removes a single event; other events keep their stored fields
	Delete(ctx context.Context, id string, companyID string) error
}

// CorrectionRepository is the append-only audit trail for event mutations.
type CorrectionRepository interface {
	Create(ctx context.Context, correction Correction) (Correction, error)

	ListByRecord(ctx context.Context, recordID string, companyID string) ([]Correction, error)

	// CountCancelEnds counts CANCEL_END rows for one employee on one calendar
	// day. Used to enforce the per-day cancellation ceiling; the counter resets
	// at midnight because it is keyed by date.
	CountCancelEnds(ctx context.Context, employeeID string, date string, companyID string) (int, error)
}
